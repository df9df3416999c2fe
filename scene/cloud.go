// Package scene holds the point-cloud side of the planner: loading,
// bounds analysis and voxelization of splat scenes.
package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyScene is returned when a cloud has no points at all.
	ErrEmptyScene = errors.New("scene: point cloud is empty")

	// ErrMismatchedAxes is returned when the coordinate arrays differ in length.
	ErrMismatchedAxes = errors.New("scene: coordinate arrays differ in length")
)

// Cloud is a point cloud as three parallel coordinate arrays. The
// planner never mutates a cloud; callers own the backing slices.
type Cloud struct {
	X []float64
	Y []float64
	Z []float64
}

// Len returns the number of points in the cloud.
func (c Cloud) Len() int { return len(c.X) }

func (c Cloud) validate() error {
	if len(c.X) != len(c.Y) || len(c.X) != len(c.Z) {
		return fmt.Errorf("%w: x=%d y=%d z=%d",
			ErrMismatchedAxes, len(c.X), len(c.Y), len(c.Z))
	}
	return nil
}
