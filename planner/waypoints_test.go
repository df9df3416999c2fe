package planner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestGridWaypoints(t *testing.T) {
	cfg := GridConfig{
		Center: r3.Vec{X: 1, Y: 0, Z: -2},
		Size:   r3.Vec{X: 20, Y: 4, Z: 14},
		Height: 2.5,
		CountX: 6,
		CountZ: 5,
		Inset:  2,
	}

	points, err := GridWaypoints(cfg)
	require.NoError(t, err)
	require.Len(t, points, 30)

	minX := cfg.Center.X - cfg.Size.X/2 + cfg.Inset
	maxX := cfg.Center.X + cfg.Size.X/2 - cfg.Inset
	minZ := cfg.Center.Z - cfg.Size.Z/2 + cfg.Inset
	maxZ := cfg.Center.Z + cfg.Size.Z/2 - cfg.Inset

	for i, p := range points {
		assert.Equal(t, cfg.Height, p.Y, "point %d", i)
		assert.GreaterOrEqual(t, p.X, minX-1e-9, "point %d", i)
		assert.LessOrEqual(t, p.X, maxX+1e-9, "point %d", i)
		assert.GreaterOrEqual(t, p.Z, minZ-1e-9, "point %d", i)
		assert.LessOrEqual(t, p.Z, maxZ+1e-9, "point %d", i)
	}

	// Row-major: the first CountZ points share the first X coordinate,
	// corners land on the inset bounds.
	for i := 1; i < cfg.CountZ; i++ {
		assert.Equal(t, points[0].X, points[i].X, "first row not constant in x")
	}
	assert.InDelta(t, minX, points[0].X, 1e-12)
	assert.InDelta(t, minZ, points[0].Z, 1e-12)
	assert.InDelta(t, maxZ, points[cfg.CountZ-1].Z, 1e-12)
	assert.InDelta(t, maxX, points[len(points)-1].X, 1e-12)
	assert.InDelta(t, maxZ, points[len(points)-1].Z, 1e-12)
}

func TestGridWaypointsSinglePoint(t *testing.T) {
	points, err := GridWaypoints(GridConfig{
		Center: r3.Vec{X: 5, Z: 5},
		Size:   r3.Vec{X: 10, Z: 10},
		Height: 1,
		CountX: 1,
		CountZ: 1,
		Inset:  2,
	})
	require.NoError(t, err)
	require.Len(t, points, 1)

	// A 1x1 grid collapses to the inset minimum corner.
	assert.Equal(t, r3.Vec{X: 2, Y: 1, Z: 2}, points[0])
}

func TestGridWaypointsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  GridConfig
	}{
		{"zero count x", GridConfig{CountX: 0, CountZ: 5}},
		{"zero count z", GridConfig{CountX: 5, CountZ: 0}},
		{"negative inset", GridConfig{CountX: 2, CountZ: 2, Inset: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GridWaypoints(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
		})
	}
}
