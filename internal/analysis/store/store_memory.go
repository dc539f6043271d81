package store

import (
	"context"
	"sync"

	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// InMemoryResultStore implements ResultStore with whole-set replacement
// semantics over a mutex-guarded map.
type InMemoryResultStore struct {
	mu      sync.RWMutex
	results map[id.ExperimentID]RunResults
}

// NewInMemoryResultStore creates an empty store.
func NewInMemoryResultStore() *InMemoryResultStore {
	return &InMemoryResultStore{results: make(map[id.ExperimentID]RunResults)}
}

// ReplaceRunResults swaps the experiment's derived rows wholesale.
func (s *InMemoryResultStore) ReplaceRunResults(_ context.Context, results RunResults) error {
	if results.ExperimentID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "experiment id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[results.ExperimentID] = results
	return nil
}

// GetRunResults returns the experiment's current derived rows.
func (s *InMemoryResultStore) GetRunResults(_ context.Context, experimentID id.ExperimentID) (RunResults, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results, ok := s.results[experimentID]
	if !ok {
		return RunResults{}, dErrors.Newf(dErrors.CodeNotFound,
			"no analysis results for experiment %s", experimentID)
	}
	return results, nil
}
