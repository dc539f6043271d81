package analysis

import (
	"inplab/internal/detection"
	"inplab/internal/domain"
	id "inplab/pkg/domain"
)

// Input is everything one analysis run consumes, as delivered by the
// ingestion collaborator: the experiment's resolved tray configuration,
// probe definitions, the pre-sorted raw sample stream, the per-well
// frozen/liquid observation stream, and the region definitions.
//
// Classifier optionally overrides the observation table: when set,
// Observations are ignored and the supplied function is queried instead.
type Input struct {
	ExperimentID  id.ExperimentID
	Configuration domain.TrayConfiguration
	Probes        []domain.TemperatureProbe
	ProbeSamples  []domain.ProbeSample
	Observations  []domain.WellObservation
	Classifier    detection.Classifier
	Regions       []domain.RegionSpec
}
