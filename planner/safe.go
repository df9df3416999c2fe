package planner

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"splatpath/scene"
)

// SafeConfig parameterizes an obstacle-avoiding route between two
// world positions through the occupancy lattice.
type SafeConfig struct {
	Start     r3.Vec
	End       r3.Vec
	Occupancy scene.Occupancy
	CellSize  float64
	FOV       float64

	// Target is the fixed point every frame looks toward (at the
	// camera's own height). The zero value keeps the historical
	// behavior of staring at the world origin; pass the scene center
	// for an orbit-consistent orientation.
	Target r3.Vec

	// Search forwards options (e.g. MaxExpansions) to FindPath.
	Search []SearchOption
}

// SafeRoute quantizes start and end with the voxelizer's convention,
// routes between them with FindPath, and lifts the voxel path back to
// oriented world-space frames. A failed search propagates as is; no
// partial path comes back.
func SafeRoute(cfg SafeConfig) (Path, error) {
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidParameter, cfg.CellSize)
	}
	if cfg.FOV <= 0 {
		return nil, fmt.Errorf("%w: fov %v", ErrInvalidParameter, cfg.FOV)
	}

	start := scene.Quantize(cfg.Start, cfg.CellSize)
	goal := scene.Quantize(cfg.End, cfg.CellSize)

	voxels, err := FindPath(start, goal, cfg.Occupancy, cfg.Search...)
	if err != nil {
		return nil, err
	}

	path := make(Path, 0, len(voxels))
	for _, v := range voxels {
		pos := v.World(cfg.CellSize)
		target := r3.Vec{X: cfg.Target.X, Y: pos.Y, Z: cfg.Target.Z}

		m, err := LookAt(pos, target, worldUp)
		if err != nil {
			return nil, err
		}
		path = append(path, CameraFrame{CameraToWorld: m, FOV: cfg.FOV})
	}
	return path, nil
}
