package domain

import (
	"time"

	id "inplab/pkg/domain"
)

// WellPhaseTransition records one accepted liquid<->frozen flip for a well,
// referencing the temperature reading in effect at its timestamp.
// Invariants (enforced by the detector, asserted in tests): per well,
// timestamps strictly increase; NewState of transition n equals
// PreviousState of transition n+1; a transition never repeats the current
// state.
//
// Anomalous marks a frozen->liquid flip observed after the ramp's coldest
// point: a data-quality anomaly that is recorded but excluded from
// freezing-temperature computation.
type WellPhaseTransition struct {
	ID            id.TransitionID
	WellID        id.WellID
	ReadingID     id.ReadingID
	Timestamp     time.Time
	PreviousState id.Phase
	NewState      id.Phase
	Anomalous     bool
}

// FreezingResult collapses a well's transition history to its terminal
// outcome: the temperature at which it froze (nil if it never froze during
// the ramp) and whether it ended frozen. RegionID is the region the well
// belonged to at analysis time, nil-UUID when no rectangle contains it.
type FreezingResult struct {
	WellID              id.WellID
	RegionID            id.RegionID
	FreezingTemperature *float64
	IsFrozen            bool
}

// InpConcentration is one point on a region's nucleation-site-density
// curve: the cumulative density at one sampled temperature, with the
// propagated Poisson counting error. Error is nil when no well in the
// region was frozen at the temperature (k=0 leaves the uncertainty
// undefined rather than dividing by zero).
type InpConcentration struct {
	ID                 id.ConcentrationID
	RegionID           id.RegionID
	TemperatureCelsius float64
	NmValue            float64
	Error              *float64
}
