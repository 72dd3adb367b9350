package coord

import (
	"math"
)

const (
	// Epsilon is the max error when checking containment.
	Epsilon   = 0.001
	epsilonSq = Epsilon * Epsilon
)

// Triangle is a face of a triangulated probe surface.
type Triangle struct{ A, B, C Point }

// ContainsXY returns true if the 2D projection of the triangle
// has the point x,y.
func (t Triangle) ContainsXY(x, y float64) bool {
	if !t.boundsXY(x, y) {
		return false
	}
	if t.insideXY(x, y) {
		return true
	}

	// Points within Epsilon of an edge count as contained, so probe
	// locations that land exactly on a shared edge resolve to one of
	// the adjacent faces.
	if distSqToSegment(t.A, t.B, x, y) <= epsilonSq {
		return true
	}
	if distSqToSegment(t.B, t.C, x, y) <= epsilonSq {
		return true
	}
	return distSqToSegment(t.C, t.A, x, y) <= epsilonSq
}

// Z will give the Z-coordinate on the plane defined by the triangle
// where it intersects x,y.
func (t Triangle) Z(x, y float64) float64 {
	ac := t.C.Sub(t.A)
	ab := t.B.Sub(t.A)

	cp := ac.Cross(ab)
	d := cp.Dot(t.C)

	return (d - cp.X*x - cp.Y*y) / cp.Z
}

func (t Triangle) boundsXY(x, y float64) bool {
	xMin := math.Min(t.A.X, math.Min(t.B.X, t.C.X)) - Epsilon
	xMax := math.Max(t.A.X, math.Max(t.B.X, t.C.X)) + Epsilon
	yMin := math.Min(t.A.Y, math.Min(t.B.Y, t.C.Y)) - Epsilon
	yMax := math.Max(t.A.Y, math.Max(t.B.Y, t.C.Y)) + Epsilon

	return x >= xMin && x <= xMax && y >= yMin && y <= yMax
}

func side(a, b Point, x, y float64) float64 {
	return (b.Y-a.Y)*(x-a.X) + (a.X-b.X)*(y-a.Y)
}

func (t Triangle) insideXY(x, y float64) bool {
	s1 := side(t.A, t.B, x, y)
	s2 := side(t.B, t.C, x, y)
	s3 := side(t.C, t.A, x, y)

	// Either winding order is accepted.
	if s1 >= 0 && s2 >= 0 && s3 >= 0 {
		return true
	}
	return s1 <= 0 && s2 <= 0 && s3 <= 0
}

func distSqToSegment(a, b Point, x, y float64) float64 {
	segSq := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
	dot := ((x-a.X)*(b.X-a.X) + (y-a.Y)*(b.Y-a.Y)) / segSq
	if dot < 0 {
		return (x-a.X)*(x-a.X) + (y-a.Y)*(y-a.Y)
	}
	if dot <= 1 {
		apSq := (a.X-x)*(a.X-x) + (a.Y-y)*(a.Y-y)
		return apSq - dot*dot*segSq
	}

	return (x-b.X)*(x-b.X) + (y-b.Y)*(y-b.Y)
}
