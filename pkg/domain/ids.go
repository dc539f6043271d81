// Package domain holds the identifier and value types shared across the
// analysis engine. Entity structs live with the components that own them;
// only the vocabulary every layer speaks lives here.
package domain

import (
	"github.com/google/uuid"

	dErrors "inplab/pkg/domain-errors"
)

// ExperimentID identifies one freezing-assay experiment and scopes every
// analysis run.
type ExperimentID uuid.UUID

// TrayID identifies a physical tray template.
type TrayID uuid.UUID

// WellID identifies one logical well within an analysis run.
type WellID uuid.UUID

// RegionID identifies a named rectangle of wells on a tray.
type RegionID uuid.UUID

// ProbeID identifies a temperature probe within an experiment.
type ProbeID uuid.UUID

// ReadingID identifies one aligned temperature reading.
type ReadingID uuid.UUID

// TreatmentID identifies the treatment a region is tied to. The treatment
// itself is owned by the surrounding system; the engine only carries the
// reference through.
type TreatmentID uuid.UUID

// TransitionID identifies one recorded well phase transition.
type TransitionID uuid.UUID

// ConcentrationID identifies one point on a region's concentration curve.
type ConcentrationID uuid.UUID

// RunID identifies one execution of the analysis pipeline.
type RunID uuid.UUID

// parseUUID enforces the shared parsing invariant: identifiers arriving
// from outside must be valid, non-nil UUIDs.
func parseUUID(kind, s string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s id %q", kind, s)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id must not be the nil uuid", kind)
	}
	return parsed, nil
}

// ParseExperimentID parses an externally supplied experiment identifier.
func ParseExperimentID(s string) (ExperimentID, error) {
	parsed, err := parseUUID("experiment", s)
	return ExperimentID(parsed), err
}

// ParseTrayID parses an externally supplied tray identifier.
func ParseTrayID(s string) (TrayID, error) {
	parsed, err := parseUUID("tray", s)
	return TrayID(parsed), err
}

// ParseWellID parses an externally supplied well identifier.
func ParseWellID(s string) (WellID, error) {
	parsed, err := parseUUID("well", s)
	return WellID(parsed), err
}

// ParseRegionID parses an externally supplied region identifier.
func ParseRegionID(s string) (RegionID, error) {
	parsed, err := parseUUID("region", s)
	return RegionID(parsed), err
}

// ParseProbeID parses an externally supplied probe identifier.
func ParseProbeID(s string) (ProbeID, error) {
	parsed, err := parseUUID("probe", s)
	return ProbeID(parsed), err
}

// ParseTreatmentID parses an externally supplied treatment identifier.
func ParseTreatmentID(s string) (TreatmentID, error) {
	parsed, err := parseUUID("treatment", s)
	return TreatmentID(parsed), err
}

// NewExperimentID returns a fresh random ExperimentID.
func NewExperimentID() ExperimentID { return ExperimentID(uuid.New()) }

// NewTrayID returns a fresh random TrayID.
func NewTrayID() TrayID { return TrayID(uuid.New()) }

// NewWellID returns a fresh random WellID.
func NewWellID() WellID { return WellID(uuid.New()) }

// NewRegionID returns a fresh random RegionID.
func NewRegionID() RegionID { return RegionID(uuid.New()) }

// NewProbeID returns a fresh random ProbeID.
func NewProbeID() ProbeID { return ProbeID(uuid.New()) }

// NewReadingID returns a fresh random ReadingID.
func NewReadingID() ReadingID { return ReadingID(uuid.New()) }

// NewTransitionID returns a fresh random TransitionID.
func NewTransitionID() TransitionID { return TransitionID(uuid.New()) }

// NewConcentrationID returns a fresh random ConcentrationID.
func NewConcentrationID() ConcentrationID { return ConcentrationID(uuid.New()) }

// NewRunID returns a fresh random RunID.
func NewRunID() RunID { return RunID(uuid.New()) }

func (id ExperimentID) String() string { return uuid.UUID(id).String() }
func (id TrayID) String() string       { return uuid.UUID(id).String() }
func (id WellID) String() string       { return uuid.UUID(id).String() }
func (id RegionID) String() string     { return uuid.UUID(id).String() }
func (id ProbeID) String() string      { return uuid.UUID(id).String() }
func (id ReadingID) String() string    { return uuid.UUID(id).String() }
func (id TreatmentID) String() string  { return uuid.UUID(id).String() }
func (id TransitionID) String() string { return uuid.UUID(id).String() }
func (id RunID) String() string        { return uuid.UUID(id).String() }

// IsNil reports whether the identifier is the zero UUID.
func (id ExperimentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// IsNil reports whether the identifier is the zero UUID.
func (id TrayID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// IsNil reports whether the identifier is the zero UUID.
func (id WellID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// IsNil reports whether the identifier is the zero UUID.
func (id RegionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// IsNil reports whether the identifier is the zero UUID.
func (id ReadingID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
