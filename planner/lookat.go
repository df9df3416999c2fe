package planner

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// worldUp is the default up hint for every sweep strategy.
var worldUp = r3.Vec{Y: 1}

// Below this length a direction is treated as zero rather than fed to
// a division.
const orientEps = 1e-12

// LookAt builds the camera-to-world transform for a camera at pos
// looking at target with the given up hint. The rotation rows come out
// orthonormal: backward = unit(pos-target), right = unit(up x backward),
// up = backward x right.
func LookAt(pos, target, up r3.Vec) (Transform, error) {
	backward := r3.Sub(pos, target)
	if r3.Norm(backward) < orientEps {
		return Transform{}, fmt.Errorf("%w: position coincides with target %v", ErrDegenerateOrientation, target)
	}
	backward = r3.Unit(backward)

	right := r3.Cross(up, backward)
	if r3.Norm(right) < orientEps {
		return Transform{}, fmt.Errorf("%w: up hint parallel to view direction", ErrDegenerateOrientation)
	}
	right = r3.Unit(right)

	trueUp := r3.Cross(backward, right)

	return Transform{
		{right.X, right.Y, right.Z, pos.X},
		{trueUp.X, trueUp.Y, trueUp.Z, pos.Y},
		{backward.X, backward.Y, backward.Z, pos.Z},
		{0, 0, 0, 1},
	}, nil
}
