package domain

import (
	id "inplab/pkg/domain"
)

// Well is one droplet position. Row/Col are the tray-local coordinates in
// the tray's rotated frame (the frame regions are defined in); LogicalRow/
// LogicalCol locate the well in the shared multi-tray coordinate space.
// Wells are purely structural — measurement state lives in transitions and
// results.
type Well struct {
	ID           id.WellID
	TrayID       id.TrayID
	TraySequence int
	Row          int
	Col          int
	LogicalRow   int
	LogicalCol   int
}

// Coordinate returns the human-readable tray-local position ("A1" style,
// 1-based).
func (w Well) Coordinate() id.WellCoordinate {
	return id.WellCoordinate{Row: w.Row + 1, Col: w.Col + 1}
}
