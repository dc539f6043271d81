package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"inplab/internal/domain"
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

type ResolverSuite struct {
	suite.Suite
	experimentID id.ExperimentID
	tray         domain.Tray
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.experimentID = id.NewExperimentID()
	tray, err := domain.NewTray(id.NewTrayID(), "P1", 12, 8, 0.9)
	s.Require().NoError(err)
	s.tray = tray
}

func (s *ResolverSuite) config(assignments ...domain.TrayAssignment) domain.TrayConfiguration {
	cfg, err := domain.NewTrayConfiguration("test", true, assignments)
	s.Require().NoError(err)
	return cfg
}

// ==== Rotation placement ====

func (s *ResolverSuite) TestResolveRotated() {
	cfg := s.config(domain.TrayAssignment{Tray: s.tray, Sequence: 1, Rotation: id.Rotation90})

	layout, err := Resolve(s.experimentID, cfg)
	s.Require().NoError(err)

	s.Len(layout.Wells, 96)
	rows, cols, ok := layout.TrayDims(1)
	s.Require().True(ok)
	s.Equal(12, rows, "quarter turn swaps the 8x12 grid to 12x8")
	s.Equal(8, cols)

	s.Run("raw top-left lands top-right", func() {
		wellID, err := layout.ResolveRaw(cfg, 1, 0, 0)
		s.Require().NoError(err)
		w, ok := layout.Well(wellID)
		s.Require().True(ok)
		s.Equal(0, w.Row)
		s.Equal(7, w.Col)
	})

	s.Run("raw bottom-right lands bottom-left", func() {
		wellID, err := layout.ResolveRaw(cfg, 1, 7, 11)
		s.Require().NoError(err)
		w, ok := layout.Well(wellID)
		s.Require().True(ok)
		s.Equal(11, w.Row)
		s.Equal(0, w.Col)
	})
}

// ==== Multi-tray layout ====

func (s *ResolverSuite) TestResolveTwoTrays() {
	cfg := s.config(
		domain.TrayAssignment{Tray: s.tray, Sequence: 1, Rotation: id.Rotation0},
		domain.TrayAssignment{Tray: s.tray, Sequence: 2, Rotation: id.Rotation0},
	)

	layout, err := Resolve(s.experimentID, cfg)
	s.Require().NoError(err)

	s.Len(layout.Wells, 192)
	s.Equal(8, layout.Rows)
	s.Equal(24, layout.Cols, "second tray placed to the right of the first")

	first, ok := layout.WellAt(1, 0, 0)
	s.Require().True(ok)
	s.Equal(0, first.LogicalCol)

	second, ok := layout.WellAt(2, 0, 0)
	s.Require().True(ok)
	s.Equal(12, second.LogicalCol)
	s.NotEqual(first.ID, second.ID)
}

func (s *ResolverSuite) TestResolveSequenceOrderIndependent() {
	a := s.config(
		domain.TrayAssignment{Tray: s.tray, Sequence: 1, Rotation: id.Rotation0},
		domain.TrayAssignment{Tray: s.tray, Sequence: 2, Rotation: id.Rotation0},
	)
	b := s.config(
		domain.TrayAssignment{Tray: s.tray, Sequence: 2, Rotation: id.Rotation0},
		domain.TrayAssignment{Tray: s.tray, Sequence: 1, Rotation: id.Rotation0},
	)

	la, err := Resolve(s.experimentID, a)
	s.Require().NoError(err)
	lb, err := Resolve(s.experimentID, b)
	s.Require().NoError(err)

	s.Equal(la.Wells, lb.Wells, "assignment slice order must not matter, only sequence")
}

// ==== Determinism ====

func (s *ResolverSuite) TestResolveDeterministic() {
	cfg := s.config(domain.TrayAssignment{Tray: s.tray, Sequence: 1, Rotation: id.Rotation180})

	first, err := Resolve(s.experimentID, cfg)
	s.Require().NoError(err)
	second, err := Resolve(s.experimentID, cfg)
	s.Require().NoError(err)

	s.Equal(first.Wells, second.Wells)

	other, err := Resolve(id.NewExperimentID(), cfg)
	s.Require().NoError(err)
	s.NotEqual(first.Wells[0].ID, other.Wells[0].ID,
		"well identity is scoped to the experiment")
}

// ==== Overlap rejection ====

func (s *ResolverSuite) TestResolveOverlap() {
	// Colliding sequences bypass NewTrayConfiguration validation only when
	// the configuration is assembled by hand; Resolve must still reject.
	cfg := domain.TrayConfiguration{
		Name: "handmade",
		Assignments: []domain.TrayAssignment{
			{Tray: s.tray, Sequence: 1, Rotation: id.Rotation0},
			{Tray: s.tray, Sequence: 1, Rotation: id.Rotation0},
		},
	}

	_, err := Resolve(s.experimentID, cfg)
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeGeometry))
}

func (s *ResolverSuite) TestResolveInvalidRotation() {
	cfg := domain.TrayConfiguration{
		Name: "handmade",
		Assignments: []domain.TrayAssignment{
			{Tray: s.tray, Sequence: 1, Rotation: id.Rotation(45)},
		},
	}

	_, err := Resolve(s.experimentID, cfg)
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeGeometry))
}

// ==== Raw stream lookup ====

func Test_ResolveRaw_Unknown(t *testing.T) {
	experimentID := id.NewExperimentID()
	tray, err := domain.NewTray(id.NewTrayID(), "P1", 4, 4, 0.9)
	require.NoError(t, err)
	cfg, err := domain.NewTrayConfiguration("test", false, []domain.TrayAssignment{
		{Tray: tray, Sequence: 1, Rotation: id.Rotation0},
	})
	require.NoError(t, err)

	layout, err := Resolve(experimentID, cfg)
	require.NoError(t, err)

	_, err = layout.ResolveRaw(cfg, 2, 0, 0)
	require.Error(t, err)
	require.True(t, dErrors.Is(err, dErrors.CodeNotFound))

	_, err = layout.ResolveRaw(cfg, 1, 4, 0)
	require.Error(t, err)
	require.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}
