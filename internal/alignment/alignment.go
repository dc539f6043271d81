// Package alignment merges per-probe temperature samples into the single
// ordered time series the rest of the pipeline runs against.
package alignment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"inplab/internal/domain"
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// readingNamespace seeds deterministic reading identifiers so re-running
// alignment on unchanged input reproduces the same series.
var readingNamespace = uuid.MustParse("c0a8e3c4-2f7b-4b6a-b1e9-4f0d2a66c1d3")

// Align merges pre-sorted raw samples into one TemperatureReading per
// distinct timestamp, applying each probe's correction factor. The source
// stream is expected pre-sorted; Align rejects rather than reorders.
//
// Errors (all CodeAlignment, fatal for the run):
//   - a sample referencing a probe column no configured probe occupies
//   - timestamps running backwards in the source stream
//   - one probe reporting two different raw values for one timestamp
func Align(experimentID id.ExperimentID, probes []domain.TemperatureProbe, samples []domain.ProbeSample) ([]domain.TemperatureReading, error) {
	byColumn := make(map[int]domain.TemperatureProbe, len(probes))
	for _, p := range probes {
		if _, dup := byColumn[p.ColumnIndex]; dup {
			return nil, dErrors.Newf(dErrors.CodeAlignment,
				"two probes configured for column index %d", p.ColumnIndex)
		}
		byColumn[p.ColumnIndex] = p
	}

	var readings []domain.TemperatureReading
	var current *domain.TemperatureReading
	var rawSeen map[int]float64 // raw values per probe at the current timestamp

	for _, s := range samples {
		probe, ok := byColumn[s.ProbeIndex]
		if !ok {
			return nil, dErrors.Newf(dErrors.CodeAlignment,
				"sample at %s references unconfigured probe column %d",
				s.Timestamp.Format(time.RFC3339Nano), s.ProbeIndex)
		}

		switch {
		case current == nil || s.Timestamp.After(current.Timestamp):
			if current != nil {
				finalize(current)
				readings = append(readings, *current)
			}
			current = &domain.TemperatureReading{
				ID:        deriveReadingID(experimentID, s.Timestamp),
				Timestamp: s.Timestamp,
				Probes:    make(map[int]float64, len(probes)),
			}
			rawSeen = make(map[int]float64, len(probes))
		case s.Timestamp.Equal(current.Timestamp):
			// Another probe on the same reading; fall through.
		default:
			return nil, dErrors.Newf(dErrors.CodeAlignment,
				"timestamps not monotonic: %s follows %s",
				s.Timestamp.Format(time.RFC3339Nano), current.Timestamp.Format(time.RFC3339Nano))
		}

		if prev, seen := rawSeen[s.ProbeIndex]; seen {
			if prev != s.RawValue {
				return nil, dErrors.Newf(dErrors.CodeAlignment,
					"probe column %d reports conflicting values %g and %g at %s",
					s.ProbeIndex, prev, s.RawValue, s.Timestamp.Format(time.RFC3339Nano))
			}
			continue // identical duplicate, collapse silently
		}
		rawSeen[s.ProbeIndex] = s.RawValue
		current.Probes[s.ProbeIndex] = probe.Correct(s.RawValue)
	}
	if current != nil {
		finalize(current)
		readings = append(readings, *current)
	}

	return readings, nil
}

// finalize computes the reading's mean corrected temperature over whichever
// probes reported.
func finalize(r *domain.TemperatureReading) {
	if len(r.Probes) == 0 {
		return
	}
	values := make([]float64, 0, len(r.Probes))
	for _, v := range r.Probes {
		values = append(values, v)
	}
	r.MeanTemperature = stat.Mean(values, nil)
}

func deriveReadingID(experimentID id.ExperimentID, ts time.Time) id.ReadingID {
	name := fmt.Sprintf("%s/%d", experimentID, ts.UnixNano())
	return id.ReadingID(uuid.NewSHA1(readingNamespace, []byte(name)))
}
