package domain

import (
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// Region is an experiment- and tray-scoped rectangle of wells tied to a
// treatment and dilution. Coordinates are 0-based and inclusive, expressed
// in the tray's rotated frame. IsBackgroundKey marks a control region whose
// own signal is subtracted from its siblings on the same tray.
type Region struct {
	ID               id.RegionID
	Name             string
	TraySequence     int
	RowMin           int
	ColMin           int
	RowMax           int
	ColMax           int
	TreatmentID      id.TreatmentID
	DilutionFactor   float64
	IsBackgroundKey  bool
	WellVolumeLitres float64
}

// RegionSpec carries the caller-supplied rectangle before validation.
type RegionSpec struct {
	Name             string
	TraySequence     int
	RowMin           int
	ColMin           int
	RowMax           int
	ColMax           int
	TreatmentID      id.TreatmentID
	DilutionFactor   float64
	IsBackgroundKey  bool
	WellVolumeLitres float64
}

// NewRegion validates a rectangle against the rotated grid extents of the
// tray it is scoped to. maxRows/maxCols are the tray's dimensions in the
// same frame the rectangle is expressed in.
func NewRegion(regionID id.RegionID, spec RegionSpec, maxRows, maxCols int) (Region, error) {
	if spec.RowMin > spec.RowMax || spec.ColMin > spec.ColMax {
		return Region{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"region %q: inverted rectangle (%d,%d)-(%d,%d)",
			spec.Name, spec.RowMin, spec.ColMin, spec.RowMax, spec.ColMax)
	}
	if spec.RowMin < 0 || spec.ColMin < 0 || spec.RowMax >= maxRows || spec.ColMax >= maxCols {
		return Region{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"region %q: rectangle (%d,%d)-(%d,%d) outside %dx%d tray grid",
			spec.Name, spec.RowMin, spec.ColMin, spec.RowMax, spec.ColMax, maxRows, maxCols)
	}
	if spec.DilutionFactor < 1 {
		return Region{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"region %q: dilution factor must be >= 1, got %g", spec.Name, spec.DilutionFactor)
	}
	if spec.WellVolumeLitres <= 0 {
		return Region{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"region %q: well volume must be positive, got %g", spec.Name, spec.WellVolumeLitres)
	}
	return Region{
		ID:               regionID,
		Name:             spec.Name,
		TraySequence:     spec.TraySequence,
		RowMin:           spec.RowMin,
		ColMin:           spec.ColMin,
		RowMax:           spec.RowMax,
		ColMax:           spec.ColMax,
		TreatmentID:      spec.TreatmentID,
		DilutionFactor:   spec.DilutionFactor,
		IsBackgroundKey:  spec.IsBackgroundKey,
		WellVolumeLitres: spec.WellVolumeLitres,
	}, nil
}

// Contains reports whether a tray-local (row, col) on the region's tray
// falls inside the rectangle.
func (r Region) Contains(traySequence, row, col int) bool {
	return traySequence == r.TraySequence &&
		row >= r.RowMin && row <= r.RowMax &&
		col >= r.ColMin && col <= r.ColMax
}
