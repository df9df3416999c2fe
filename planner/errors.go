// Package planner turns an analyzed scene into ordered camera frames:
// look-at orientation math, A* routing over the voxel lattice, and the
// sweep strategies built on top of them.
package planner

import "errors"

var (
	// ErrInvalidParameter is wrapped by every boundary validation
	// failure (non-positive counts, radii, cell sizes and so on).
	ErrInvalidParameter = errors.New("planner: invalid parameter")

	// ErrZeroExtent means the scene is flat along both horizontal axes
	// and no orbit radius can be derived from it.
	ErrZeroExtent = errors.New("planner: scene has no horizontal extent")

	// ErrDegenerateOrientation means a camera basis could not be built:
	// the position coincides with the target, or the up hint is
	// parallel to the view direction.
	ErrDegenerateOrientation = errors.New("planner: degenerate camera orientation")

	// ErrNoPath means no free-cell route connects start and goal.
	ErrNoPath = errors.New("planner: no path between start and goal")

	// ErrBudgetExceeded means the search gave up after expanding its
	// node budget. No partial path is returned.
	ErrBudgetExceeded = errors.New("planner: search budget exceeded")
)
