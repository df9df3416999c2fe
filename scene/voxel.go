package scene

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidCellSize is returned for a non-positive voxel cell size.
var ErrInvalidCellSize = errors.New("scene: cell size must be positive")

// Voxel identifies one cell of the planning lattice.
type Voxel struct {
	X int
	Y int
	Z int
}

// Occupancy is the set of voxels considered blocked for pathfinding.
// It is write-once: built from a cloud, then queried by membership
// only. Share it across searches freely as long as nobody writes.
type Occupancy map[Voxel]struct{}

// Occupied reports whether the voxel is blocked.
func (o Occupancy) Occupied(v Voxel) bool {
	_, ok := o[v]
	return ok
}

// Quantize maps a world position to its lattice cell at the given cell
// size. Two points land in the same voxel iff they share a cell, which
// requires floor (not truncation) so negatives behave.
func Quantize(p r3.Vec, cell float64) Voxel {
	return Voxel{
		X: int(math.Floor(p.X / cell)),
		Y: int(math.Floor(p.Y / cell)),
		Z: int(math.Floor(p.Z / cell)),
	}
}

// World returns the world position of the voxel's lattice corner.
func (v Voxel) World(cell float64) r3.Vec {
	return r3.Vec{
		X: float64(v.X) * cell,
		Y: float64(v.Y) * cell,
		Z: float64(v.Z) * cell,
	}
}

// Voxelize quantizes every point of the cloud into an occupancy set.
// Duplicates collapse; a coarser cell size trades fidelity for search
// tractability. An empty cloud yields an empty set.
func Voxelize(c Cloud, cell float64) (Occupancy, error) {
	if cell <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidCellSize, cell)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	occ := make(Occupancy, c.Len())
	for i := range c.X {
		v := Quantize(r3.Vec{X: c.X[i], Y: c.Y[i], Z: c.Z[i]}, cell)
		occ[v] = struct{}{}
	}
	return occ, nil
}
