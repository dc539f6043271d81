// Package domain defines the entities the analysis pipeline consumes and
// produces. Tray templates and configurations are authored independently of
// any experiment and shared read-only; everything derived during a run
// (wells, transitions, results, concentrations) is recomputed wholesale on
// every run and carries no independent lifecycle.
package domain

import (
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// Tray is a physical tray template: a QtyYAxis×QtyXAxis grid of wells.
// WellRelativeDiameter is a rendering hint for the surrounding UI and plays
// no part in analysis.
type Tray struct {
	ID                   id.TrayID
	Name                 string
	QtyXAxis             int
	QtyYAxis             int
	WellRelativeDiameter float64
}

// NewTray validates grid dimensions.
func NewTray(trayID id.TrayID, name string, qtyX, qtyY int, wellRelativeDiameter float64) (Tray, error) {
	if qtyX < 1 || qtyY < 1 {
		return Tray{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"tray %q dimensions must be positive, got %dx%d", name, qtyX, qtyY)
	}
	return Tray{
		ID:                   trayID,
		Name:                 name,
		QtyXAxis:             qtyX,
		QtyYAxis:             qtyY,
		WellRelativeDiameter: wellRelativeDiameter,
	}, nil
}

// Rows returns the raw row count (Y axis).
func (t Tray) Rows() int { return t.QtyYAxis }

// Cols returns the raw column count (X axis).
func (t Tray) Cols() int { return t.QtyXAxis }

// TrayAssignment places one tray into a configuration at a sequence index
// with a rotation.
type TrayAssignment struct {
	Tray     Tray
	Sequence int
	Rotation id.Rotation
}

// TrayConfiguration is a named, immutable template of ordered, rotated tray
// assignments. Many experiments may reference one configuration;
// ExperimentDefault marks the template used when an experiment specifies
// none explicitly.
type TrayConfiguration struct {
	Name              string
	ExperimentDefault bool
	Assignments       []TrayAssignment
}

// NewTrayConfiguration validates that sequence indices are unique within
// the configuration and that every rotation is a supported quarter turn.
func NewTrayConfiguration(name string, experimentDefault bool, assignments []TrayAssignment) (TrayConfiguration, error) {
	if len(assignments) == 0 {
		return TrayConfiguration{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"tray configuration %q has no tray assignments", name)
	}
	seen := make(map[int]bool, len(assignments))
	for _, a := range assignments {
		if seen[a.Sequence] {
			return TrayConfiguration{}, dErrors.Newf(dErrors.CodeConflict,
				"tray configuration %q: duplicate sequence %d", name, a.Sequence)
		}
		seen[a.Sequence] = true
		if !a.Rotation.IsValid() {
			return TrayConfiguration{}, dErrors.Newf(dErrors.CodeGeometry,
				"tray configuration %q: unsupported rotation %d on sequence %d", name, a.Rotation, a.Sequence)
		}
	}
	return TrayConfiguration{
		Name:              name,
		ExperimentDefault: experimentDefault,
		Assignments:       assignments,
	}, nil
}
