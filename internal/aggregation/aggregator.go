// Package aggregation groups wells into their regions and computes each
// region's fraction-frozen curve over the experiment's reading timeline.
package aggregation

import (
	"time"

	"inplab/internal/domain"
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// FractionPoint is the frozen fraction of one region at one sampled
// reading.
type FractionPoint struct {
	ReadingID          id.ReadingID
	Timestamp          time.Time
	TemperatureCelsius float64
	FrozenCount        int
	TotalWells         int
	FractionFrozen     float64
}

// RegionCurve is a region's full fraction-frozen series.
type RegionCurve struct {
	Region domain.Region
	Wells  []domain.Well
	Points []FractionPoint
}

// Aggregator resolves region membership once and serves curve computation
// per region. Rectangles within one tray are validated disjoint at
// creation; aggregation assumes disjointness and assigns each well to the
// first region containing it.
type Aggregator struct {
	regions []domain.Region
	members map[id.RegionID][]domain.Well
}

// New indexes well membership for every region.
func New(regions []domain.Region, wells []domain.Well) *Aggregator {
	a := &Aggregator{
		regions: regions,
		members: make(map[id.RegionID][]domain.Well, len(regions)),
	}
	for _, w := range wells {
		for _, r := range regions {
			if r.Contains(w.TraySequence, w.Row, w.Col) {
				a.members[r.ID] = append(a.members[r.ID], w)
				break
			}
		}
	}
	return a
}

// RegionFor returns the region containing a tray-local position, for
// result attribution.
func (a *Aggregator) RegionFor(traySequence, row, col int) (id.RegionID, bool) {
	for _, r := range a.regions {
		if r.Contains(traySequence, row, col) {
			return r.ID, true
		}
	}
	return id.RegionID{}, false
}

// Members returns the wells belonging to a region.
func (a *Aggregator) Members(regionID id.RegionID) []domain.Well {
	return a.members[regionID]
}

// Aggregate computes fraction_frozen(region, t) at every reading timestamp.
// A well counts as frozen at t when its last accepted transition at or
// before t left it frozen; anomalous thaws are accepted transitions and
// move the curve back down — they are data, and the non-decreasing
// property is only guaranteed in their absence.
//
// Errors: CodeAggregation when the region holds no wells; callers skip the
// region and continue with its siblings.
func (a *Aggregator) Aggregate(
	region domain.Region,
	readings []domain.TemperatureReading,
	transitionsByWell map[id.WellID][]domain.WellPhaseTransition,
) (RegionCurve, error) {
	wells := a.members[region.ID]
	if len(wells) == 0 {
		return RegionCurve{}, dErrors.Newf(dErrors.CodeAggregation,
			"region %q has no wells after clipping to the tray grid", region.Name)
	}

	// Per-well cursor into its timestamp-ordered transition list.
	cursors := make([]int, len(wells))
	states := make([]id.Phase, len(wells))

	curve := RegionCurve{
		Region: region,
		Wells:  wells,
		Points: make([]FractionPoint, 0, len(readings)),
	}
	for _, reading := range readings {
		frozen := 0
		for i, w := range wells {
			transitions := transitionsByWell[w.ID]
			for cursors[i] < len(transitions) && !transitions[cursors[i]].Timestamp.After(reading.Timestamp) {
				states[i] = transitions[cursors[i]].NewState
				cursors[i]++
			}
			if states[i] == id.PhaseFrozen {
				frozen++
			}
		}
		curve.Points = append(curve.Points, FractionPoint{
			ReadingID:          reading.ID,
			Timestamp:          reading.Timestamp,
			TemperatureCelsius: reading.MeanTemperature,
			FrozenCount:        frozen,
			TotalWells:         len(wells),
			FractionFrozen:     float64(frozen) / float64(len(wells)),
		})
	}
	return curve, nil
}
