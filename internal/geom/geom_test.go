package geom

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point3D
		want float64
	}{
		{"same point", Point3D{0.5, 0.5, 0}, Point3D{0.5, 0.5, 0}, 0},
		{"unit x", Point3D{0, 0, 0}, Point3D{1, 0, 0}, 1},
		{"3-4-5", Point3D{0, 0, 0}, Point3D{3, 4, 0}, 5},
		{"depth counts", Point3D{0, 0, 0}, Point3D{0, 0, 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
			if back := Distance(tt.b, tt.a); back != got {
				t.Errorf("Distance not symmetric: %v vs %v", got, back)
			}
		})
	}
}

func TestCentroid(t *testing.T) {
	pts := []Point3D{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0.4}}
	c := Centroid(pts)
	if c.X != 0.5 || c.Y != 0.5 || math.Abs(c.Z-0.1) > 1e-12 {
		t.Errorf("Centroid() = %+v, want {0.5 0.5 0.1}", c)
	}

	if got := Centroid(nil); got != (Point3D{}) {
		t.Errorf("Centroid(nil) = %+v, want zero point", got)
	}
}

func TestClamp01(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{{-1, 0}, {0.3, 0.3}, {4, 1}} {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
