package domain

import dErrors "inplab/pkg/domain-errors"

// Phase is the binary state of a well droplet during a cooling ramp.
// Invariant: only the two values below are legal; transitions that repeat
// the current phase are rejected by the detector.
//
// The integer values match the source recordings (liquid=0, frozen=1).
type Phase int

const (
	PhaseLiquid Phase = 0
	PhaseFrozen Phase = 1
)

// ParsePhase constructs a Phase from an external integer signal.
//
// Usage: call at ingestion boundaries; internal code passes Phase values
// directly.
func ParsePhase(v int) (Phase, error) {
	switch Phase(v) {
	case PhaseLiquid, PhaseFrozen:
		return Phase(v), nil
	default:
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "invalid phase value %d", v)
	}
}

// IsValid checks the phase is one of the two supported states.
func (p Phase) IsValid() bool {
	return p == PhaseLiquid || p == PhaseFrozen
}

// String returns the human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLiquid:
		return "liquid"
	case PhaseFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}
