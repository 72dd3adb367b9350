// Package kinematics holds the per-geometry segmentation policy for
// leveled moves. Only the segment-count rules live here; the actual
// coordinate transforms belong to the motion controller downstream.
package kinematics

import (
	"math"
)

// Profile describes how one kinematic class wants long moves broken
// up before leveling corrections are applied.
type Profile struct {
	// Type names the geometry.
	Type string

	// MinSegmentLength caps the segment count so no segment is
	// shorter than this.
	MinSegmentLength float64

	// SegmentsPerSecond limits segment duration for geometries that
	// approximate curves with straight lines. Zero means the count
	// is derived purely from distance.
	SegmentsPerSecond float64

	// Segmented selects fixed-length segmentation instead of
	// cell-boundary splitting.
	Segmented bool
}

// Cartesian splits on mesh cell boundaries; the minimum segment
// length only applies when segmented leveling is forced on.
func Cartesian() Profile {
	return Profile{Type: "cartesian", MinSegmentLength: 1.00}
}

// CoreXY moves like a cartesian as far as leveling is concerned.
func CoreXY() Profile {
	return Profile{Type: "corexy", MinSegmentLength: 1.00}
}

// SCARA arms need short straight segments regardless of the mesh.
func SCARA() Profile {
	return Profile{
		Type:              "scara",
		MinSegmentLength:  0.25,
		SegmentsPerSecond: 200,
		Segmented:         true,
	}
}

// Delta towers need short straight segments regardless of the mesh.
func Delta() Profile {
	return Profile{
		Type:              "delta",
		MinSegmentLength:  0.10,
		SegmentsPerSecond: 200,
		Segmented:         true,
	}
}

// Polar plotters segment like deltas but at a lower rate.
func Polar() Profile {
	return Profile{
		Type:              "polar",
		MinSegmentLength:  0.10,
		SegmentsPerSecond: 100,
		Segmented:         true,
	}
}

// SegmentCount returns the number of fixed-length segments for a move
// covering xyDist mm of XY travel at feed mm/s. The count is capped
// by MinSegmentLength and floored at one segment.
func (p Profile) SegmentCount(xyDist, feed float64) int {
	limit := int(math.Round(xyDist / p.MinSegmentLength))

	n := limit
	if p.SegmentsPerSecond > 0 && feed > 0 {
		seconds := xyDist / feed
		n = int(math.Round(p.SegmentsPerSecond * seconds))
		if n > limit {
			n = limit
		}
	}

	if n < 1 {
		n = 1
	}
	return n
}
