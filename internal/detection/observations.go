package detection

import (
	"time"

	"inplab/internal/domain"
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// Classifier supplies the frozen/liquid signal for a well at a reading
// timestamp. The second return reports whether the classifier has an
// observation there at all; readings without one are skipped. The detection
// method behind the signal (optical, proxy-temperature or otherwise) is the
// caller's concern.
type Classifier func(wellID id.WellID, ts time.Time) (frozen bool, ok bool)

type obsKey struct {
	well id.WellID
	ts   int64
}

// ObservationTable is the default Classifier: a lookup table built from the
// ingested per-well observation rows.
type ObservationTable struct {
	observations map[obsKey]bool
}

// BuildObservations indexes raw observation rows, validating each against
// the known wells and the aligned reading timeline. Structurally invalid
// rows poison only the well they reference: the per-well errors are
// returned alongside the table and the service excludes those wells while
// the rest continue.
func BuildObservations(
	observations []domain.WellObservation,
	knownWell func(id.WellID) bool,
	readings []domain.TemperatureReading,
) (*ObservationTable, map[id.WellID]error) {
	knownTimes := make(map[int64]bool, len(readings))
	for _, r := range readings {
		knownTimes[r.Timestamp.UnixNano()] = true
	}

	table := &ObservationTable{observations: make(map[obsKey]bool, len(observations))}
	wellErrs := make(map[id.WellID]error)

	for _, o := range observations {
		if _, poisoned := wellErrs[o.WellID]; poisoned {
			continue
		}
		if !knownWell(o.WellID) {
			wellErrs[o.WellID] = dErrors.Newf(dErrors.CodeDetection,
				"observation references unknown well %s", o.WellID)
			continue
		}
		if !knownTimes[o.Timestamp.UnixNano()] {
			wellErrs[o.WellID] = dErrors.Newf(dErrors.CodeDetection,
				"well %s: observation at %s not aligned to any temperature reading",
				o.WellID, o.Timestamp.Format(time.RFC3339Nano))
			continue
		}
		table.observations[obsKey{well: o.WellID, ts: o.Timestamp.UnixNano()}] = o.Frozen
	}

	return table, wellErrs
}

// Classify implements Classifier.
func (t *ObservationTable) Classify(wellID id.WellID, ts time.Time) (bool, bool) {
	frozen, ok := t.observations[obsKey{well: wellID, ts: ts.UnixNano()}]
	return frozen, ok
}
