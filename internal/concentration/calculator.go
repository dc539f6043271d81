// Package concentration converts fraction-frozen curves into cumulative
// ice-nucleation-site-density curves with propagated counting uncertainty,
// using the standard droplet-freezing model nm(T) = -ln(1-f)/V.
package concentration

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"inplab/internal/aggregation"
	"inplab/internal/domain"
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// concentrationNamespace seeds deterministic row identifiers.
var concentrationNamespace = uuid.MustParse("3f6a9c7d-14e2-49bb-8f14-d8e0b5a2c477")

// Calculate produces one InpConcentration row per sampled temperature of
// the region's curve. When background is non-nil, the background region's
// density at the same sampled point is subtracted and the result floored
// at zero before the dilution factor scales the output.
//
// Numeric edge cases follow policy, not errors: f=0 yields density 0 with
// undefined (nil) error; f=1 is treated as the supremum and evaluated at
// the (n-0.5)/n fraction, the largest density the well count can resolve.
//
// Errors: CodeConcentration only for a structurally empty curve (n=0).
func Calculate(curve aggregation.RegionCurve, background *aggregation.RegionCurve) ([]domain.InpConcentration, error) {
	region := curve.Region
	out := make([]domain.InpConcentration, 0, len(curve.Points))

	for i, p := range curve.Points {
		if p.TotalWells == 0 {
			return nil, dErrors.Newf(dErrors.CodeConcentration,
				"region %q has no droplets at sample %d", region.Name, i)
		}

		nm := siteDensity(p, region.WellVolumeLitres)

		var errValue *float64
		if p.FrozenCount > 0 {
			e := nm * math.Sqrt(1.0/float64(p.FrozenCount)-1.0/float64(p.TotalWells))
			e *= region.DilutionFactor
			errValue = &e
		}

		if background != nil && i < len(background.Points) {
			bg := background.Points[i]
			if bg.TotalWells > 0 {
				nm -= siteDensity(bg, background.Region.WellVolumeLitres)
				if nm < 0 {
					nm = 0
				}
			}
		}
		nm *= region.DilutionFactor

		out = append(out, domain.InpConcentration{
			ID:                 deriveConcentrationID(region.ID, p.ReadingID),
			RegionID:           region.ID,
			TemperatureCelsius: p.TemperatureCelsius,
			NmValue:            nm,
			Error:              errValue,
		})
	}
	return out, nil
}

// siteDensity evaluates -ln(1-f)/V with the f=1 supremum policy.
func siteDensity(p aggregation.FractionPoint, volume float64) float64 {
	f := p.FractionFrozen
	if p.FrozenCount == p.TotalWells && p.FrozenCount > 0 {
		// All wells frozen: the true fraction is only known to exceed what
		// n droplets can resolve. Evaluate at the half-count fraction for
		// the maximum finite density instead of +Inf.
		f = (float64(p.TotalWells) - 0.5) / float64(p.TotalWells)
	}
	if f <= 0 {
		return 0
	}
	return -math.Log(1-f) / volume
}

func deriveConcentrationID(regionID id.RegionID, readingID id.ReadingID) id.ConcentrationID {
	name := fmt.Sprintf("%s/%s", regionID, readingID)
	return id.ConcentrationID(uuid.NewSHA1(concentrationNamespace, []byte(name)))
}
