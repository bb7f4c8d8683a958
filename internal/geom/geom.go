// Package geom holds the small vector helpers shared by the gesture and
// particle code.
package geom

import "math"

// Point3D is a landmark position in normalized scene space: X and Y in [0,1]
// relative to the frame, Z a signed relative depth.
type Point3D struct {
	X, Y, Z float64
}

// Point2D is a screen or template position.
type Point2D struct {
	X, Y float64
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Centroid returns the mean of pts. An empty slice yields the zero point.
func Centroid(pts []Point3D) Point3D {
	if len(pts) == 0 {
		return Point3D{}
	}
	var c Point3D
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(pts))
	return Point3D{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

// Add returns p translated by q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p multiplied by s.
func (p Point2D) Scale(s float64) Point2D {
	return Point2D{X: p.X * s, Y: p.Y * s}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
