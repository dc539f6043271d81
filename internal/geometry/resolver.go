// Package geometry resolves a tray configuration's ordered, rotated tray
// assignments into a single logical coordinate space of wells.
package geometry

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"inplab/internal/domain"
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

// wellNamespace seeds deterministic well identifiers. Re-resolving the same
// configuration for the same experiment must yield identical wells so that
// repeated analysis runs replace rather than duplicate.
var wellNamespace = uuid.MustParse("5d1e6e2e-8a49-4c6e-9d11-7c1de3a5b9f0")

// Layout is the resolved well space of one experiment: every well of every
// assigned tray, rotated and placed side by side in sequence order.
type Layout struct {
	Wells []domain.Well

	// Rows and Cols are the extents of the shared logical space.
	Rows int
	Cols int

	byLocal map[localKey]int
	byID    map[id.WellID]int
	dims    map[int][2]int // sequence -> rotated (rows, cols)
}

type localKey struct {
	seq, row, col int
}

// Resolve validates the configuration's rotations, applies them, and lays
// the tray grids out left to right in ascending sequence order. Wells are
// identified deterministically from (experiment, sequence, rotated row,
// rotated col).
//
// Errors: CodeGeometry for an unsupported rotation or when two trays
// occupy the same logical cell (possible only with colliding sequences).
func Resolve(experimentID id.ExperimentID, cfg domain.TrayConfiguration) (*Layout, error) {
	assignments := make([]domain.TrayAssignment, len(cfg.Assignments))
	copy(assignments, cfg.Assignments)
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].Sequence < assignments[j].Sequence })

	layout := &Layout{
		byLocal: make(map[localKey]int),
		byID:    make(map[id.WellID]int),
		dims:    make(map[int][2]int),
	}
	occupied := make(map[localKey]int) // logical cell -> sequence that claimed it

	// The column offset belongs to the sequence slot, not the assignment:
	// two assignments colliding on one sequence land on the same offset and
	// surface as an overlap instead of silently shifting right.
	offsets := make(map[int]int)
	colOffset := 0
	lastSeq := 0
	for i, a := range assignments {
		if i == 0 || a.Sequence != lastSeq {
			offsets[a.Sequence] = colOffset
			_, cols := a.Rotation.Dims(a.Tray.Rows(), a.Tray.Cols())
			colOffset += cols
		}
		lastSeq = a.Sequence
	}

	for _, a := range assignments {
		if !a.Rotation.IsValid() {
			return nil, dErrors.Newf(dErrors.CodeGeometry,
				"tray sequence %d: unsupported rotation %d", a.Sequence, a.Rotation)
		}
		rows, cols := a.Rotation.Dims(a.Tray.Rows(), a.Tray.Cols())
		layout.dims[a.Sequence] = [2]int{rows, cols}
		colOffset := offsets[a.Sequence]

		for rawRow := 0; rawRow < a.Tray.Rows(); rawRow++ {
			for rawCol := 0; rawCol < a.Tray.Cols(); rawCol++ {
				row, col := a.Rotation.Apply(rawRow, rawCol, a.Tray.Rows(), a.Tray.Cols())
				logical := localKey{seq: 0, row: row, col: colOffset + col}
				if prev, taken := occupied[logical]; taken {
					return nil, dErrors.Newf(dErrors.CodeGeometry,
						"tray sequences %d and %d overlap at logical cell (%d,%d)",
						prev, a.Sequence, logical.row, logical.col)
				}
				occupied[logical] = a.Sequence

				well := domain.Well{
					ID:           deriveWellID(experimentID, a.Sequence, row, col),
					TrayID:       a.Tray.ID,
					TraySequence: a.Sequence,
					Row:          row,
					Col:          col,
					LogicalRow:   row,
					LogicalCol:   colOffset + col,
				}
				layout.byLocal[localKey{seq: a.Sequence, row: row, col: col}] = len(layout.Wells)
				layout.byID[well.ID] = len(layout.Wells)
				layout.Wells = append(layout.Wells, well)

				if well.LogicalRow+1 > layout.Rows {
					layout.Rows = well.LogicalRow + 1
				}
				if well.LogicalCol+1 > layout.Cols {
					layout.Cols = well.LogicalCol + 1
				}
			}
		}
	}

	// Wells are appended in raw-grid walk order; downstream fan-out and
	// output ordering depend on a stable rotated-frame ordering instead.
	sort.Slice(layout.Wells, func(i, j int) bool {
		wi, wj := layout.Wells[i], layout.Wells[j]
		if wi.TraySequence != wj.TraySequence {
			return wi.TraySequence < wj.TraySequence
		}
		if wi.Row != wj.Row {
			return wi.Row < wj.Row
		}
		return wi.Col < wj.Col
	})
	for idx, w := range layout.Wells {
		layout.byLocal[localKey{seq: w.TraySequence, row: w.Row, col: w.Col}] = idx
		layout.byID[w.ID] = idx
	}

	return layout, nil
}

// ResolveRaw maps a tray sequence and raw (pre-rotation) grid position to
// the logical well identity, applying the assignment's rotation.
//
// Errors: CodeNotFound when the sequence or position is outside the
// configuration.
func (l *Layout) ResolveRaw(cfg domain.TrayConfiguration, traySequence, rawRow, rawCol int) (id.WellID, error) {
	for _, a := range cfg.Assignments {
		if a.Sequence != traySequence {
			continue
		}
		if rawRow < 0 || rawRow >= a.Tray.Rows() || rawCol < 0 || rawCol >= a.Tray.Cols() {
			return id.WellID{}, dErrors.Newf(dErrors.CodeNotFound,
				"raw position (%d,%d) outside %dx%d tray at sequence %d",
				rawRow, rawCol, a.Tray.Rows(), a.Tray.Cols(), traySequence)
		}
		row, col := a.Rotation.Apply(rawRow, rawCol, a.Tray.Rows(), a.Tray.Cols())
		w, ok := l.WellAt(traySequence, row, col)
		if !ok {
			return id.WellID{}, dErrors.Newf(dErrors.CodeNotFound,
				"no well at sequence %d position (%d,%d)", traySequence, row, col)
		}
		return w.ID, nil
	}
	return id.WellID{}, dErrors.Newf(dErrors.CodeNotFound, "no tray at sequence %d", traySequence)
}

// WellAt returns the well at a tray-local rotated-frame position.
func (l *Layout) WellAt(traySequence, row, col int) (domain.Well, bool) {
	idx, ok := l.byLocal[localKey{seq: traySequence, row: row, col: col}]
	if !ok {
		return domain.Well{}, false
	}
	return l.Wells[idx], true
}

// Well returns the well with the given identifier.
func (l *Layout) Well(wellID id.WellID) (domain.Well, bool) {
	idx, ok := l.byID[wellID]
	if !ok {
		return domain.Well{}, false
	}
	return l.Wells[idx], true
}

// TrayDims returns the rotated grid extents of the tray at a sequence.
func (l *Layout) TrayDims(traySequence int) (rows, cols int, ok bool) {
	d, ok := l.dims[traySequence]
	if !ok {
		return 0, 0, false
	}
	return d[0], d[1], true
}

func deriveWellID(experimentID id.ExperimentID, seq, row, col int) id.WellID {
	name := fmt.Sprintf("%s/%d/%d/%d", experimentID, seq, row, col)
	return id.WellID(uuid.NewSHA1(wellNamespace, []byte(name)))
}
