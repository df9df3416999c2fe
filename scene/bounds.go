package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Defaults for the recommended panorama geometry. These started life as
// tuning constants for conference-hall sized splat scans; override per
// scene if they fit poorly.
const (
	DefaultPanoramaRadiusFactor = 0.6
	DefaultPanoramaHeightFactor = 0.2
)

// Bounds is the axis-aligned bounding box of a cloud.
type Bounds struct {
	Min r3.Vec
	Max r3.Vec
}

// Center returns the midpoint of the box.
func (b Bounds) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// ComputeBounds scans the cloud once and returns its bounding box. An
// empty cloud has no center, so it is rejected with ErrEmptyScene.
// NaN and Inf coordinates are not sanitized; they propagate.
func ComputeBounds(c Cloud) (Bounds, error) {
	if err := c.validate(); err != nil {
		return Bounds{}, err
	}
	if c.Len() == 0 {
		return Bounds{}, ErrEmptyScene
	}

	b := Bounds{
		Min: r3.Vec{X: c.X[0], Y: c.Y[0], Z: c.Z[0]},
		Max: r3.Vec{X: c.X[0], Y: c.Y[0], Z: c.Z[0]},
	}
	for i := 1; i < c.Len(); i++ {
		b.Min.X = math.Min(b.Min.X, c.X[i])
		b.Min.Y = math.Min(b.Min.Y, c.Y[i])
		b.Min.Z = math.Min(b.Min.Z, c.Z[i])
		b.Max.X = math.Max(b.Max.X, c.X[i])
		b.Max.Y = math.Max(b.Max.Y, c.Y[i])
		b.Max.Z = math.Max(b.Max.Z, c.Z[i])
	}
	return b, nil
}

// Info summarizes a scene for path planning.
type Info struct {
	Bounds Bounds
	Center r3.Vec
	Size   r3.Vec

	// Recommended panorama geometry derived from the scene extent.
	RecommendedRadius float64
	RecommendedHeight float64
}

// Analyze computes the bounding box plus the recommended panorama
// radius and height for the scene.
func Analyze(c Cloud) (Info, error) {
	b, err := ComputeBounds(c)
	if err != nil {
		return Info{}, err
	}
	center := b.Center()
	size := b.Size()
	return Info{
		Bounds:            b,
		Center:            center,
		Size:              size,
		RecommendedRadius: math.Max(size.X, size.Z) * DefaultPanoramaRadiusFactor,
		RecommendedHeight: center.Y + size.Y*DefaultPanoramaHeightFactor,
	}, nil
}
