package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "inplab/pkg/domain"
	dErrors "inplab/pkg/domain-errors"
)

func mustTray(t *testing.T, name string, qtyX, qtyY int) Tray {
	t.Helper()
	tray, err := NewTray(id.NewTrayID(), name, qtyX, qtyY, 0.9)
	require.NoError(t, err)
	return tray
}

func Test_NewTray(t *testing.T) {
	tray := mustTray(t, "P1", 12, 8)
	assert.Equal(t, 8, tray.Rows())
	assert.Equal(t, 12, tray.Cols())

	_, err := NewTray(id.NewTrayID(), "bad", 0, 8, 0.9)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))

	_, err = NewTray(id.NewTrayID(), "bad", 12, -1, 0.9)
	require.Error(t, err)
}

func Test_NewTrayConfiguration(t *testing.T) {
	tray := mustTray(t, "P1", 12, 8)

	t.Run("valid two-tray configuration", func(t *testing.T) {
		cfg, err := NewTrayConfiguration("standard", true, []TrayAssignment{
			{Tray: tray, Sequence: 1, Rotation: id.Rotation90},
			{Tray: tray, Sequence: 2, Rotation: id.Rotation270},
		})
		require.NoError(t, err)
		assert.Len(t, cfg.Assignments, 2)
		assert.True(t, cfg.ExperimentDefault)
	})

	t.Run("empty configuration rejected", func(t *testing.T) {
		_, err := NewTrayConfiguration("empty", false, nil)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	t.Run("duplicate sequence rejected", func(t *testing.T) {
		_, err := NewTrayConfiguration("dup", false, []TrayAssignment{
			{Tray: tray, Sequence: 1, Rotation: id.Rotation0},
			{Tray: tray, Sequence: 1, Rotation: id.Rotation180},
		})
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
	})

	t.Run("unsupported rotation rejected", func(t *testing.T) {
		_, err := NewTrayConfiguration("tilted", false, []TrayAssignment{
			{Tray: tray, Sequence: 1, Rotation: id.Rotation(45)},
		})
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeGeometry))
	})
}

func Test_NewTemperatureProbe(t *testing.T) {
	probe, err := NewTemperatureProbe(id.NewProbeID(), 3, 1.02)
	require.NoError(t, err)
	assert.InDelta(t, -15.3, probe.Correct(-15.0), 1e-9)

	_, err = NewTemperatureProbe(id.NewProbeID(), -1, 1.0)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))

	_, err = NewTemperatureProbe(id.NewProbeID(), 0, 0)
	require.Error(t, err)
}

func Test_NewRegion(t *testing.T) {
	spec := RegionSpec{
		Name:             "sample-a",
		TraySequence:     1,
		RowMin:           0,
		ColMin:           0,
		RowMax:           3,
		ColMax:           3,
		DilutionFactor:   10,
		WellVolumeLitres: 5e-5,
	}

	t.Run("valid rectangle", func(t *testing.T) {
		region, err := NewRegion(id.NewRegionID(), spec, 8, 12)
		require.NoError(t, err)
		assert.True(t, region.Contains(1, 2, 2))
		assert.False(t, region.Contains(1, 4, 2))
		assert.False(t, region.Contains(2, 2, 2))
	})

	t.Run("inverted rectangle rejected", func(t *testing.T) {
		bad := spec
		bad.RowMin, bad.RowMax = 3, 0
		_, err := NewRegion(id.NewRegionID(), bad, 8, 12)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	t.Run("rectangle outside rotated grid rejected", func(t *testing.T) {
		bad := spec
		bad.ColMax = 12
		_, err := NewRegion(id.NewRegionID(), bad, 8, 12)
		require.Error(t, err)
	})

	t.Run("dilution below 1 rejected", func(t *testing.T) {
		bad := spec
		bad.DilutionFactor = 0.5
		_, err := NewRegion(id.NewRegionID(), bad, 8, 12)
		require.Error(t, err)
	})

	t.Run("non-positive well volume rejected", func(t *testing.T) {
		bad := spec
		bad.WellVolumeLitres = 0
		_, err := NewRegion(id.NewRegionID(), bad, 8, 12)
		require.Error(t, err)
	})
}

func Test_Well_Coordinate(t *testing.T) {
	w := Well{Row: 0, Col: 0}
	assert.Equal(t, "A1", w.Coordinate().String())

	w = Well{Row: 7, Col: 11}
	assert.Equal(t, "H12", w.Coordinate().String())
}
