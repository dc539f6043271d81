package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"inplab/internal/domain"
	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

type InMemoryResultStoreSuite struct {
	suite.Suite
	store *InMemoryResultStore
	ctx   context.Context
}

func TestInMemoryResultStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryResultStoreSuite))
}

func (s *InMemoryResultStoreSuite) SetupTest() {
	s.store = NewInMemoryResultStore()
	s.ctx = context.Background()
}

func (s *InMemoryResultStoreSuite) TestReplaceRunResults() {
	experimentID := id.NewExperimentID()

	s.Run("missing experiment id rejected", func() {
		err := s.store.ReplaceRunResults(s.ctx, RunResults{})
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	s.Run("round trip", func() {
		results := RunResults{
			ExperimentID: experimentID,
			RunID:        id.NewRunID(),
			Wells:        []domain.Well{{ID: id.NewWellID(), TraySequence: 1}},
		}
		s.Require().NoError(s.store.ReplaceRunResults(s.ctx, results))

		got, err := s.store.GetRunResults(s.ctx, experimentID)
		s.Require().NoError(err)
		s.Equal(results, got)
	})

	s.Run("replacement discards the previous set", func() {
		first := RunResults{
			ExperimentID: experimentID,
			RunID:        id.NewRunID(),
			Transitions: []domain.WellPhaseTransition{
				{ID: id.NewTransitionID(), WellID: id.NewWellID()},
			},
		}
		s.Require().NoError(s.store.ReplaceRunResults(s.ctx, first))

		second := RunResults{ExperimentID: experimentID, RunID: id.NewRunID()}
		s.Require().NoError(s.store.ReplaceRunResults(s.ctx, second))

		got, err := s.store.GetRunResults(s.ctx, experimentID)
		s.Require().NoError(err)
		s.Equal(second.RunID, got.RunID)
		s.Empty(got.Transitions, "prior transitions are gone, not merged")
	})
}

func (s *InMemoryResultStoreSuite) TestGetRunResultsNotFound() {
	_, err := s.store.GetRunResults(s.ctx, id.NewExperimentID())
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}
