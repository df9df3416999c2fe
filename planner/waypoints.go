package planner

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultInset is how far the waypoint lattice stays away from the
// scene's horizontal bounds, in world units.
const DefaultInset = 2.0

// GridConfig parameterizes a lawn-mower waypoint lattice over the
// scene footprint at a fixed height. Positions only; callers that
// need oriented frames run LookAt per waypoint themselves.
type GridConfig struct {
	Center r3.Vec
	Size   r3.Vec
	Height float64
	CountX int
	CountZ int
	Inset  float64
}

// GridWaypoints samples CountX x CountZ positions row-major (X rows,
// Z within a row) on a regular lattice inset from the scene's X/Z
// bounds.
func GridWaypoints(cfg GridConfig) ([]r3.Vec, error) {
	if cfg.CountX < 1 || cfg.CountZ < 1 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidParameter, cfg.CountX, cfg.CountZ)
	}
	if cfg.Inset < 0 {
		return nil, fmt.Errorf("%w: inset %v", ErrInvalidParameter, cfg.Inset)
	}

	minX := cfg.Center.X - cfg.Size.X/2 + cfg.Inset
	maxX := cfg.Center.X + cfg.Size.X/2 - cfg.Inset
	minZ := cfg.Center.Z - cfg.Size.Z/2 + cfg.Inset
	maxZ := cfg.Center.Z + cfg.Size.Z/2 - cfg.Inset

	xs := linspace(minX, maxX, cfg.CountX)
	zs := linspace(minZ, maxZ, cfg.CountZ)

	points := make([]r3.Vec, 0, cfg.CountX*cfg.CountZ)
	for _, x := range xs {
		for _, z := range zs {
			points = append(points, r3.Vec{X: x, Y: cfg.Height, Z: z})
		}
	}
	return points, nil
}

func linspace(start, stop float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
