package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "inplab/pkg/domain-errors"
)

func Test_ParseRotation(t *testing.T) {
	for _, degrees := range []int{0, 90, 180, 270} {
		r, err := ParseRotation(degrees)
		require.NoError(t, err)
		assert.True(t, r.IsValid())
	}

	for _, degrees := range []int{45, -90, 360, 1} {
		_, err := ParseRotation(degrees)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeGeometry))
	}
}

// An 8x12 tray rotated a quarter turn clockwise: the raw top-left corner
// lands in the top-right of the rotated 12x8 grid.
func Test_Rotation_Apply(t *testing.T) {
	const rows, cols = 8, 12

	t.Run("identity", func(t *testing.T) {
		row, col := Rotation0.Apply(3, 5, rows, cols)
		assert.Equal(t, 3, row)
		assert.Equal(t, 5, col)
	})

	t.Run("90 degrees", func(t *testing.T) {
		row, col := Rotation90.Apply(0, 0, rows, cols)
		assert.Equal(t, 0, row)
		assert.Equal(t, 7, col)

		row, col = Rotation90.Apply(7, 11, rows, cols)
		assert.Equal(t, 11, row)
		assert.Equal(t, 0, col)
	})

	t.Run("180 degrees", func(t *testing.T) {
		row, col := Rotation180.Apply(0, 0, rows, cols)
		assert.Equal(t, 7, row)
		assert.Equal(t, 11, col)
	})

	t.Run("270 degrees inverts 90", func(t *testing.T) {
		for rawRow := 0; rawRow < rows; rawRow++ {
			for rawCol := 0; rawCol < cols; rawCol++ {
				r90, c90 := Rotation90.Apply(rawRow, rawCol, rows, cols)
				rotRows, rotCols := Rotation90.Dims(rows, cols)
				back, backCol := Rotation270.Apply(r90, c90, rotRows, rotCols)
				assert.Equal(t, rawRow, back)
				assert.Equal(t, rawCol, backCol)
			}
		}
	})
}

func Test_Rotation_Dims(t *testing.T) {
	rows, cols := Rotation0.Dims(8, 12)
	assert.Equal(t, 8, rows)
	assert.Equal(t, 12, cols)

	rows, cols = Rotation90.Dims(8, 12)
	assert.Equal(t, 12, rows)
	assert.Equal(t, 8, cols)

	rows, cols = Rotation180.Dims(8, 12)
	assert.Equal(t, 8, rows)
	assert.Equal(t, 12, cols)

	rows, cols = Rotation270.Dims(8, 12)
	assert.Equal(t, 12, rows)
	assert.Equal(t, 8, cols)
}
