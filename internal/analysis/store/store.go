// Package store defines the persistence port the analysis engine writes
// through. The surrounding system supplies the durable implementation;
// the in-memory store here serves tests and embedded use.
package store

import (
	"context"

	"inplab/internal/domain"
	id "inplab/pkg/domain"
)

// RunResults is the replacement set one analysis run produces for an
// experiment. Re-analysis replaces the whole set; nothing is patched
// incrementally.
type RunResults struct {
	ExperimentID    id.ExperimentID
	RunID           id.RunID
	Wells           []domain.Well
	Readings        []domain.TemperatureReading
	Transitions     []domain.WellPhaseTransition
	FreezingResults []domain.FreezingResult
	Concentrations  []domain.InpConcentration
}

// ResultStore persists replacement sets keyed by experiment.
type ResultStore interface {
	// ReplaceRunResults atomically swaps the experiment's derived rows for
	// the given set. Prior transitions, results, and concentrations are
	// discarded, not merged.
	ReplaceRunResults(ctx context.Context, results RunResults) error

	// GetRunResults returns the experiment's current derived rows.
	GetRunResults(ctx context.Context, experimentID id.ExperimentID) (RunResults, error)
}
