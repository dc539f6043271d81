// Package results collapses per-well transition histories into terminal
// freezing outcomes. Pure reductions over already-validated slices; the
// only failure mode upstream components leave possible is a dangling
// reading reference, which is reported per well.
package results

import (
	"time"

	"inplab/internal/domain"
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// RegionLookup resolves the region containing a tray-local position, if
// any. Supplied by the aggregation layer so results carry the region the
// well belonged to at analysis time.
type RegionLookup func(traySequence, row, col int) (id.RegionID, bool)

// Reduce produces one FreezingResult per well. The freezing temperature is
// the mean corrected probe temperature of the reading in effect at the
// well's first non-anomalous liquid->frozen transition; wells with no such
// transition are recorded as never frozen with a nil temperature.
func Reduce(
	wells []domain.Well,
	transitionsByWell map[id.WellID][]domain.WellPhaseTransition,
	readingByID map[id.ReadingID]domain.TemperatureReading,
	regionFor RegionLookup,
) ([]domain.FreezingResult, error) {
	out := make([]domain.FreezingResult, 0, len(wells))
	for _, w := range wells {
		var regionID id.RegionID
		if regionFor != nil {
			if rid, ok := regionFor(w.TraySequence, w.Row, w.Col); ok {
				regionID = rid
			}
		}

		result := domain.FreezingResult{WellID: w.ID, RegionID: regionID}
		for _, t := range transitionsByWell[w.ID] {
			if t.Anomalous || t.PreviousState != id.PhaseLiquid || t.NewState != id.PhaseFrozen {
				continue
			}
			reading, ok := readingByID[t.ReadingID]
			if !ok {
				return nil, dErrors.Newf(dErrors.CodeNotFound,
					"well %s: transition at %s references unknown reading %s",
					w.ID, t.Timestamp.Format(time.RFC3339Nano), t.ReadingID)
			}
			temp := reading.MeanTemperature
			result.FreezingTemperature = &temp
			result.IsFrozen = true
			break
		}
		out = append(out, result)
	}
	return out, nil
}

// WellSummary is the per-well reporting view the surrounding system renders:
// coordinate, first phase change, terminal state and the number of accepted
// transitions (anomalous ones included — they are data).
type WellSummary struct {
	WellID               id.WellID
	TraySequence         int
	Coordinate           string
	FirstPhaseChangeTime *time.Time
	FinalState           id.Phase
	TotalPhaseChanges    int
}

// Summarize builds the reporting view from the accepted transitions.
// Transition slices arrive timestamp-ordered from the detector.
func Summarize(wells []domain.Well, transitionsByWell map[id.WellID][]domain.WellPhaseTransition) []WellSummary {
	out := make([]WellSummary, 0, len(wells))
	for _, w := range wells {
		s := WellSummary{
			WellID:       w.ID,
			TraySequence: w.TraySequence,
			Coordinate:   w.Coordinate().String(),
			FinalState:   id.PhaseLiquid,
		}
		transitions := transitionsByWell[w.ID]
		s.TotalPhaseChanges = len(transitions)
		for _, t := range transitions {
			if t.PreviousState == id.PhaseLiquid && t.NewState == id.PhaseFrozen {
				ts := t.Timestamp
				s.FirstPhaseChangeTime = &ts
				break
			}
		}
		if len(transitions) > 0 {
			s.FinalState = transitions[len(transitions)-1].NewState
		}
		out = append(out, s)
	}
	return out
}
