// Package runlog records the lifecycle of analysis runs for the
// surrounding system: started/completed/failed events carrying processing
// statistics and per-entity warnings. Events are transport-agnostic so
// sinks can fan out.
package runlog

import (
	"context"
	"sync"
	"time"

	id "inplab/pkg/domain"
)

// Action classifies a run event.
type Action string

const (
	ActionRunStarted   Action = "analysis_run_started"
	ActionRunCompleted Action = "analysis_run_completed"
	ActionRunFailed    Action = "analysis_run_failed"
)

// Event is one run-lifecycle record.
type Event struct {
	Timestamp    time.Time
	RunID        id.RunID
	ExperimentID id.ExperimentID
	Action       Action
	// Reason carries the abort cause on failed runs.
	Reason string
	// Processing statistics, populated on completion.
	ReadingsCreated    int
	TransitionsCreated int
	WellsTracked       int
	Warnings           []string
}

// Store persists run events.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context, experimentID id.ExperimentID) ([]Event, error)
}

// InMemoryStore keeps run events per experiment. The surrounding system
// owns durable storage; this is the in-process sink the engine ships with.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.ExperimentID][]Event
}

// NewInMemoryStore creates an empty in-memory event store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.ExperimentID][]Event)}
}

// Append stores an event.
func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ExperimentID] = append(s.events[event.ExperimentID], event)
	return nil
}

// List returns the events recorded for an experiment in append order.
func (s *InMemoryStore) List(_ context.Context, experimentID id.ExperimentID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := s.events[experimentID]
	out := make([]Event, len(events))
	copy(out, events)
	return out, nil
}

// Worker consumes run events from a channel and persists them. It keeps
// background processing testable without wiring queue implementations.
type Worker struct {
	store Store
	inbox <-chan Event
}

// NewWorker wires a store to an inbox channel.
func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

// Run drains the inbox until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}
