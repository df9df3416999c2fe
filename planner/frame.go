package planner

import "gonum.org/v1/gonum/spatial/r3"

// Transform is a row-major 4x4 camera-to-world matrix. The first three
// rows hold the camera's right, up and backward axes in world space;
// the last column holds the camera position. The camera looks along
// the negative backward axis (negative local Z, the three.js
// convention the viewer expects).
type Transform [4][4]float64

// Position returns the translation column.
func (t Transform) Position() r3.Vec {
	return r3.Vec{X: t[0][3], Y: t[1][3], Z: t[2][3]}
}

// Row returns one of the three rotation rows as a vector.
func (t Transform) Row(i int) r3.Vec {
	return r3.Vec{X: t[i][0], Y: t[i][1], Z: t[i][2]}
}

// CameraFrame is one camera pose in a playback sequence.
type CameraFrame struct {
	CameraToWorld Transform `json:"camera_to_world"`
	FOV           float64   `json:"fov"`
}

// Path is an ordered frame sequence. Order is playback order; a path
// is never mutated after a generator returns it.
type Path []CameraFrame
