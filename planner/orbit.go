package planner

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Orbit defaults. The radius factor and floor fraction are inherited
// tuning values, configurable rather than law.
const (
	DefaultOrbitRadiusFactor = 0.05
	DefaultRadiusFloorFrac   = 1e-3
	DefaultFOV               = 60.0
)

// OrbitConfig parameterizes a multi-loop circular sweep around a
// center point at the center's own height.
type OrbitConfig struct {
	Center r3.Vec
	Radius float64
	// HeightOffset raises (or lowers) the orbit plane relative to the
	// center's height. The camera still looks at the center itself.
	HeightOffset  float64
	FOV           float64
	FramesPerLoop int
	Loops         int
	// SlowFactor stretches the sweep: total frames =
	// FramesPerLoop * Loops * SlowFactor, so at a fixed playback rate
	// the camera moves that much slower.
	SlowFactor float64
}

// OrbitRadius derives an orbit radius from the scene size: factor
// times the larger horizontal extent, floored at a small fraction of
// the scene diagonal so a tiny scene still gets a non-degenerate
// circle. A scene with no X or Z extent has no meaningful orbit and
// fails with ErrZeroExtent.
func OrbitRadius(size r3.Vec, factor float64) (float64, error) {
	if factor <= 0 {
		return 0, fmt.Errorf("%w: radius factor %v", ErrInvalidParameter, factor)
	}
	base := math.Max(size.X, size.Z)
	if base <= 0 {
		return 0, fmt.Errorf("%w: size %.3f x %.3f", ErrZeroExtent, size.X, size.Z)
	}
	radius := base * factor
	if floor := r3.Norm(size) * DefaultRadiusFloorFrac; radius < floor {
		radius = floor
	}
	return radius, nil
}

// Orbit360 generates a smooth sweep of Loops full circles around
// cfg.Center in the XZ plane, every frame looking at the center.
func Orbit360(cfg OrbitConfig) (Path, error) {
	switch {
	case cfg.FramesPerLoop < 1:
		return nil, fmt.Errorf("%w: frames per loop %d", ErrInvalidParameter, cfg.FramesPerLoop)
	case cfg.Loops < 1:
		return nil, fmt.Errorf("%w: loops %d", ErrInvalidParameter, cfg.Loops)
	case cfg.SlowFactor <= 0:
		return nil, fmt.Errorf("%w: slow factor %v", ErrInvalidParameter, cfg.SlowFactor)
	case cfg.Radius <= 0:
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidParameter, cfg.Radius)
	case cfg.FOV <= 0:
		return nil, fmt.Errorf("%w: fov %v", ErrInvalidParameter, cfg.FOV)
	}

	total := int(float64(cfg.FramesPerLoop*cfg.Loops) * cfg.SlowFactor)
	if total < 1 {
		total = 1
	}
	totalAngle := 2 * math.Pi * float64(cfg.Loops)

	path := make(Path, 0, total)
	for i := 0; i < total; i++ {
		angle := totalAngle * float64(i) / float64(total)
		offset := r3.Vec{
			X: math.Cos(angle) * cfg.Radius,
			Y: cfg.HeightOffset,
			Z: math.Sin(angle) * cfg.Radius,
		}
		pos := r3.Add(cfg.Center, offset)

		m, err := LookAt(pos, cfg.Center, worldUp)
		if err != nil {
			return nil, err
		}
		path = append(path, CameraFrame{CameraToWorld: m, FOV: cfg.FOV})
	}
	return path, nil
}
