package scene

import (
	"math"
	"math/rand"
)

// SyntheticRoom builds a deterministic point cloud of a rectangular
// room with a ring of columns: floor, four walls, and obstacles dense
// enough to voxelize into a useful occupancy set. The same seed always
// yields the same cloud, so demos and tests are reproducible without
// shipping a scan.
func SyntheticRoom(seed int64) Cloud {
	r := rand.New(rand.NewSource(seed))
	var c Cloud

	const (
		width  = 20.0 // x extent
		depth  = 16.0 // z extent
		height = 4.0
		step   = 0.25
	)

	add := func(x, y, z float64) {
		c.X = append(c.X, x)
		c.Y = append(c.Y, y)
		c.Z = append(c.Z, z)
	}

	// Floor, lightly jittered so it does not voxelize into a perfect
	// lattice plane.
	for x := -width / 2; x <= width/2; x += step {
		for z := -depth / 2; z <= depth/2; z += step {
			add(x, r.Float64()*0.05, z)
		}
	}

	// Walls.
	for y := 0.0; y <= height; y += step {
		for x := -width / 2; x <= width/2; x += step {
			add(x, y, -depth/2)
			add(x, y, depth/2)
		}
		for z := -depth / 2; z <= depth/2; z += step {
			add(-width/2, y, z)
			add(width/2, y, z)
		}
	}

	// A ring of columns between the center and the walls, laid out the
	// same way every run.
	const columns = 6
	for i := 0; i < columns; i++ {
		angle := float64(i) / columns * 2 * math.Pi
		cx := math.Cos(angle) * width * 0.3
		cz := math.Sin(angle) * depth * 0.3
		radius := 0.4 + 0.2*math.Sin(float64(seed)+float64(i))

		for y := 0.0; y <= height; y += step {
			for k := 0; k < 16; k++ {
				theta := float64(k) / 16 * 2 * math.Pi
				add(cx+math.Cos(theta)*radius, y, cz+math.Sin(theta)*radius)
			}
		}
	}

	return c
}
