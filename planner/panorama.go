package planner

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// PanoramaConfig parameterizes a single circular sweep at a fixed
// height, looking level at the vertical axis through the center.
type PanoramaConfig struct {
	Center r3.Vec
	Radius float64
	Height float64
	FOV    float64
	Frames int
}

// Panorama generates one full circle of cfg.Frames frames. Frame i
// sits at angle 2*pi*i/Frames; the look target stays at the camera's
// own height so the horizon holds steady through the loop.
func Panorama(cfg PanoramaConfig) (Path, error) {
	switch {
	case cfg.Frames < 1:
		return nil, fmt.Errorf("%w: frame count %d", ErrInvalidParameter, cfg.Frames)
	case cfg.Radius <= 0:
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidParameter, cfg.Radius)
	case cfg.FOV <= 0:
		return nil, fmt.Errorf("%w: fov %v", ErrInvalidParameter, cfg.FOV)
	}

	target := r3.Vec{X: cfg.Center.X, Y: cfg.Height, Z: cfg.Center.Z}

	path := make(Path, 0, cfg.Frames)
	for i := 0; i < cfg.Frames; i++ {
		angle := 2 * math.Pi * float64(i) / float64(cfg.Frames)
		pos := r3.Vec{
			X: cfg.Center.X + cfg.Radius*math.Cos(angle),
			Y: cfg.Height,
			Z: cfg.Center.Z + cfg.Radius*math.Sin(angle),
		}

		m, err := LookAt(pos, target, worldUp)
		if err != nil {
			return nil, err
		}
		path = append(path, CameraFrame{CameraToWorld: m, FOV: cfg.FOV})
	}
	return path, nil
}
