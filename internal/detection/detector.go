// Package detection turns each well's raw frozen/liquid signal into an
// ordered sequence of accepted phase transitions. Each well's detector is
// an independent value with no cross-well state, so wells can be processed
// in parallel.
package detection

import (
	"fmt"

	"github.com/google/uuid"

	"inplab/internal/domain"
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// transitionNamespace seeds deterministic transition identifiers.
var transitionNamespace = uuid.MustParse("9b2f1cb1-60a3-4d0e-a2be-6d5b1f3f8c22")

// DefaultDebounceCount is the number of consecutive matching observations
// required before a state change is accepted.
const DefaultDebounceCount = 2

// Detector runs the per-well two-state machine with debounce.
type Detector struct {
	debounce int
}

// New returns a detector requiring debounceCount consecutive matching
// observations per accepted transition. Counts below 1 are invalid: a
// count of 1 means every flip is accepted unfiltered.
func New(debounceCount int) (*Detector, error) {
	if debounceCount < 1 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput,
			"debounce count must be >= 1, got %d", debounceCount)
	}
	return &Detector{debounce: debounceCount}, nil
}

// DetectWell walks the aligned reading timeline for one well and emits its
// accepted transitions in timestamp order.
//
// State starts at Liquid. A differing observation becomes a candidate; the
// candidate must repeat for the configured debounce count before the
// transition is accepted, timestamped at the first sample of the stable
// run. Single-sample flicker therefore never surfaces.
//
// A frozen->liquid transition accepted after the ramp's coldest reading is
// physically implausible within one ramp: it is emitted with
// Anomalous=true so it is recorded but excluded from freezing-temperature
// computation downstream.
func (d *Detector) DetectWell(
	well domain.Well,
	readings []domain.TemperatureReading,
	classify Classifier,
) []domain.WellPhaseTransition {
	if len(readings) == 0 {
		return nil
	}

	coldest := readings[0]
	for _, r := range readings[1:] {
		if r.MeanTemperature < coldest.MeanTemperature {
			coldest = r
		}
	}

	var transitions []domain.WellPhaseTransition
	current := id.PhaseLiquid

	var (
		candidate      id.Phase
		candidateRun   int
		candidateStart domain.TemperatureReading
	)

	for _, reading := range readings {
		frozen, ok := classify(well.ID, reading.Timestamp)
		if !ok {
			continue // no observation at this reading; debounce run survives gaps
		}
		observed := id.PhaseLiquid
		if frozen {
			observed = id.PhaseFrozen
		}

		if observed == current {
			candidateRun = 0
			continue
		}
		if candidateRun == 0 || observed != candidate {
			candidate = observed
			candidateRun = 1
			candidateStart = reading
		} else {
			candidateRun++
		}
		if candidateRun < d.debounce {
			continue
		}

		anomalous := current == id.PhaseFrozen && observed == id.PhaseLiquid &&
			candidateStart.Timestamp.After(coldest.Timestamp)
		transitions = append(transitions, domain.WellPhaseTransition{
			ID:            deriveTransitionID(well.ID, candidateStart, observed),
			WellID:        well.ID,
			ReadingID:     candidateStart.ID,
			Timestamp:     candidateStart.Timestamp,
			PreviousState: current,
			NewState:      observed,
			Anomalous:     anomalous,
		})
		current = observed
		candidateRun = 0
	}

	return transitions
}

func deriveTransitionID(wellID id.WellID, reading domain.TemperatureReading, newState id.Phase) id.TransitionID {
	name := fmt.Sprintf("%s/%d/%d", wellID, reading.Timestamp.UnixNano(), newState)
	return id.TransitionID(uuid.NewSHA1(transitionNamespace, []byte(name)))
}
