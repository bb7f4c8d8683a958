// Package constellation provides the read-only point templates a particle
// burst settles into.
package constellation

import "github.com/iburimskiy/hand-constellation/internal/geom"

// Template is a named silhouette. Points are normalized to [-1,1] around the
// template origin, y pointing down.
type Template struct {
	Name   string
	Points []geom.Point2D
}

// Len returns the number of anchor points.
func (t Template) Len() int {
	return len(t.Points)
}

// Place scales the anchors by scale and translates them to center.
func (t Template) Place(center geom.Point2D, scale float64) []geom.Point2D {
	out := make([]geom.Point2D, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Scale(scale).Add(center)
	}
	return out
}
