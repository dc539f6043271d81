package domain

import (
	"time"

	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// TemperatureProbe locates one probe within the raw reading stream and
// carries the linear correction applied to its raw values.
type TemperatureProbe struct {
	ID               id.ProbeID
	ColumnIndex      int
	CorrectionFactor float64
}

// NewTemperatureProbe validates the column index and correction factor.
// A zero correction factor would silently erase the probe's signal, so it
// is rejected alongside negatives.
func NewTemperatureProbe(probeID id.ProbeID, columnIndex int, correctionFactor float64) (TemperatureProbe, error) {
	if columnIndex < 0 {
		return TemperatureProbe{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"probe column index must be non-negative, got %d", columnIndex)
	}
	if correctionFactor <= 0 {
		return TemperatureProbe{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"probe correction factor must be positive, got %g", correctionFactor)
	}
	return TemperatureProbe{ID: probeID, ColumnIndex: columnIndex, CorrectionFactor: correctionFactor}, nil
}

// Correct applies the probe's linear correction to a raw value.
func (p TemperatureProbe) Correct(raw float64) float64 {
	return raw * p.CorrectionFactor
}

// ProbeSample is one raw ingest row: a single probe's uncorrected value at
// a timestamp. The ingestion collaborator delivers these pre-sorted by
// timestamp.
type ProbeSample struct {
	ProbeIndex int
	RawValue   float64
	Timestamp  time.Time
}

// TemperatureReading is one aligned point on the experiment's shared
// timeline: every configured probe's corrected value at one timestamp.
// Probes that reported nothing at the timestamp are absent from the map.
type TemperatureReading struct {
	ID        id.ReadingID
	Timestamp time.Time
	// Probes maps probe column index to corrected temperature.
	Probes map[int]float64
	// MeanTemperature is the mean of all corrected probe values present,
	// the probe-count-independent temperature used for freezing results
	// and concentration curves.
	MeanTemperature float64
}

// WellObservation is one raw ingest row of the externally supplied
// frozen/liquid classification for a well, aligned to the reading
// timeline.
type WellObservation struct {
	WellID    id.WellID
	Timestamp time.Time
	Frozen    bool
}
