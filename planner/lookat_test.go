package planner

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertOrthonormal(t *testing.T, m Transform) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1, r3.Norm(m.Row(i)), 1e-9, "row %d not unit length", i)
	}
	assert.InDelta(t, 0, r3.Dot(m.Row(0), m.Row(1)), 1e-9)
	assert.InDelta(t, 0, r3.Dot(m.Row(0), m.Row(2)), 1e-9)
	assert.InDelta(t, 0, r3.Dot(m.Row(1), m.Row(2)), 1e-9)
}

func TestLookAtBasis(t *testing.T) {
	tests := []struct {
		name        string
		pos, target r3.Vec
	}{
		{"along z", r3.Vec{Z: 5}, r3.Vec{}},
		{"along x", r3.Vec{X: -3}, r3.Vec{}},
		{"diagonal", r3.Vec{X: 4, Y: 2, Z: -7}, r3.Vec{X: 1, Y: 1, Z: 1}},
		{"below target", r3.Vec{X: 0.5, Y: -3, Z: 0.5}, r3.Vec{Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := LookAt(tt.pos, tt.target, worldUp)
			require.NoError(t, err)

			assertOrthonormal(t, m)
			assert.Equal(t, tt.pos, m.Position())
			assert.Equal(t, [4]float64{0, 0, 0, 1}, m[3])

			// Backward row points from target to camera.
			back := r3.Unit(r3.Sub(tt.pos, tt.target))
			assert.InDelta(t, back.X, m.Row(2).X, 1e-9)
			assert.InDelta(t, back.Y, m.Row(2).Y, 1e-9)
			assert.InDelta(t, back.Z, m.Row(2).Z, 1e-9)

			// Right-handed: right x up = backward.
			cross := r3.Cross(m.Row(0), m.Row(1))
			assert.InDelta(t, m.Row(2).X, cross.X, 1e-9)
			assert.InDelta(t, m.Row(2).Y, cross.Y, 1e-9)
			assert.InDelta(t, m.Row(2).Z, cross.Z, 1e-9)

			// Up row never flips below the horizon with a +Y hint.
			assert.GreaterOrEqual(t, m.Row(1).Y, 0.0)
		})
	}
}

func TestLookAtKeepsHorizonLevel(t *testing.T) {
	// Camera and target at the same height: gaze must be level.
	m, err := LookAt(r3.Vec{X: 3, Y: 1.5, Z: 4}, r3.Vec{Y: 1.5}, worldUp)
	require.NoError(t, err)
	assert.InDelta(t, 0, m.Row(2).Y, 1e-12)
	assert.InDelta(t, 1, m.Row(1).Y, 1e-12)
}

func TestLookAtDegenerate(t *testing.T) {
	t.Run("position equals target", func(t *testing.T) {
		_, err := LookAt(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 1, Y: 2, Z: 3}, worldUp)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDegenerateOrientation))
	})

	t.Run("up parallel to view", func(t *testing.T) {
		_, err := LookAt(r3.Vec{Y: 10}, r3.Vec{}, worldUp)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDegenerateOrientation))
	})

	t.Run("near-coincident position", func(t *testing.T) {
		_, err := LookAt(r3.Vec{X: math.Nextafter(1, 2) - 1}, r3.Vec{}, worldUp)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDegenerateOrientation))
	})
}
