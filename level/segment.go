package level

import (
	"math"

	"github.com/mastercactapus/meshmotion/coord"
)

// SegmentedLine splits the move to dest into fixed-length segments
// sized by the kinematic profile, applying mesh correction per
// segment. It reports whether the whole move was queued; false means
// the destination was unreachable (position unchanged) or a segment
// was refused (position left at the last accepted segment).
func (l *Leveler) SegmentedLine(dest coord.Pose, feed float64) bool {
	if l.reachable != nil && !l.reachable(dest) {
		return false
	}

	start := l.pos
	total := dest.Sub(start)

	xySq := total.X*total.X + total.Y*total.Y
	xyDist := math.Sqrt(xySq)

	segments := l.kin.SegmentCount(xyDist, feed)
	invSegments := 1 / float64(segments)

	segLen := math.Sqrt(xySq+total.Z*total.Z) * invSegments
	diff := total.Mul(invSegments)

	raw := start
	last := start

	// With leveling off, or the whole move above the fade height,
	// segmentation is purely geometric.
	if !l.levelingActive() || l.fadeAt(dest.Z) == 0 {
		for segments > 1 {
			segments--
			raw = raw.Add(diff)
			if !l.sink.Line(raw, feed, segLen) {
				l.pos = last
				return false
			}
			last = raw
		}
		if !l.sink.Line(dest, feed, segLen) {
			l.pos = last
			return false
		}
		l.pos = dest
		return true
	}

	fade := l.fadeAt(dest.Z)
	spacingX := l.grid.Config().SpacingX
	spacingY := l.grid.Config().SpacingY

	raw = raw.Add(diff)

	for { // for each mesh cell encountered during the move

		// Fetch the cell's corners once and express bilinear
		// interpolation as a linear function of position within the
		// cell on each axis. Points in the inset margin outside the
		// mesh reuse the clamped edge cell; the inner loop exits
		// immediately each segment but the result is still correct,
		// just less efficient.
		cx, cy := l.grid.CellX(raw.X), l.grid.CellY(raw.Y)

		z00 := l.grid.Corner(cx, cy)
		z10 := l.grid.Corner(cx+1, cy)
		z01 := l.grid.Corner(cx, cy+1)
		z11 := l.grid.Corner(cx+1, cy+1)

		cellX := raw.X - l.grid.PointX(cx)
		cellY := raw.Y - l.grid.PointY(cy)

		zxm0 := (z10 - z00) / spacingX // z slope per x along the lower edge
		zxm1 := (z11 - z01) / spacingX // z slope per x along the upper edge

		zcx0 := z00 + zxm0*cellX // z at cellX on the lower edge
		zcx1 := z01 + zxm1*cellX // z at cellX on the upper edge

		zcxm := (zcx1 - zcx0) / spacingY // z slope per y at cellX

		// Within the cell both the intercept and the slope change by
		// a constant amount per fixed-length segment.
		zStep0 := zxm0 * diff.X
		zStepM := (zxm1 - zxm0) / spacingY * diff.X

		for { // for all segments within this cell
			segments--
			if segments == 0 {
				// Snap the last segment to the exact destination.
				raw = dest
			}

			out := raw
			out.Z += (zcx0 + zcxm*cellY) * fade
			if !l.sink.Line(out, feed, segLen) {
				l.pos = last
				return false
			}
			last = raw

			if segments == 0 {
				l.pos = dest
				return true
			}

			raw = raw.Add(diff)
			cellX += diff.X
			cellY += diff.Y

			if cellX < 0 || cellX > spacingX || cellY < 0 || cellY > spacingY {
				break // left the cell; recompute corner data
			}

			zcx0 += zStep0
			zcxm += zStepM
		}
	}
}
