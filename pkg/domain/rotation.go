package domain

import dErrors "inplab/pkg/domain-errors"

// Rotation is the clockwise rotation applied to a tray before it is placed
// into the shared logical coordinate space.
// Invariant: only quarter turns are supported.
type Rotation int

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

// validRotations is the single source of truth for supported rotations.
var validRotations = map[Rotation]bool{
	Rotation0:   true,
	Rotation90:  true,
	Rotation180: true,
	Rotation270: true,
}

// ParseRotation constructs a Rotation from external degrees input.
//
// Errors: returns CodeGeometry for anything outside {0, 90, 180, 270} —
// a bad rotation invalidates the whole tray layout.
func ParseRotation(degrees int) (Rotation, error) {
	r := Rotation(degrees)
	if !r.IsValid() {
		return 0, dErrors.Newf(dErrors.CodeGeometry, "unsupported rotation %d degrees", degrees)
	}
	return r, nil
}

// IsValid checks the rotation is a supported quarter turn.
func (r Rotation) IsValid() bool {
	return validRotations[r]
}

// Apply maps a raw (row, col) grid position into the rotated frame of a
// tray with the given dimensions. maxRow/maxCol are the raw grid extents
// (rows, cols), not the rotated ones.
//
//	0°:   (r, c) -> (r, c)
//	90°:  (r, c) -> (c, maxRow-1-r)
//	180°: (r, c) -> (maxRow-1-r, maxCol-1-c)
//	270°: inverse of 90°, (r, c) -> (maxCol-1-c, r)
func (r Rotation) Apply(row, col, rows, cols int) (int, int) {
	switch r {
	case Rotation90:
		return col, rows - 1 - row
	case Rotation180:
		return rows - 1 - row, cols - 1 - col
	case Rotation270:
		return cols - 1 - col, row
	default:
		return row, col
	}
}

// Dims returns the rotated grid extents for a raw rows×cols tray. Quarter
// turns swap the axes.
func (r Rotation) Dims(rows, cols int) (int, int) {
	if r == Rotation90 || r == Rotation270 {
		return cols, rows
	}
	return rows, cols
}
