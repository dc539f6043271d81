package analysis

import (
	"time"

	"inplab/internal/aggregation"
	"inplab/internal/analysis/store"
	"inplab/internal/results"
	id "inplab/pkg/domain"
)

// Status is the terminal state of an analysis run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Warning is one isolated per-entity problem that did not abort the run.
type Warning struct {
	// Scope names the entity kind: "well" or "region".
	Scope string
	// Ref identifies the entity (well ID or region name).
	Ref string
	// Message is the underlying error text.
	Message string
}

// RunSummary is the user-visible outcome of one run: its status plus the
// per-entity warnings, never a silent partial result presented as complete.
type RunSummary struct {
	RunID              id.RunID
	ExperimentID       id.ExperimentID
	Status             Status
	Duration           time.Duration
	ReadingsCreated    int
	TransitionsCreated int
	WellsTracked       int
	RegionsComputed    int
	Warnings           []Warning
}

// Output bundles the replacement sets with the run summary and the
// reporting views derived alongside them.
type Output struct {
	Results       store.RunResults
	Summary       RunSummary
	WellSummaries []results.WellSummary
	Curves        []aggregation.RegionCurve
}
