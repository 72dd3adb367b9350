package level

import (
	"math"

	"github.com/mastercactapus/meshmotion/coord"
)

// SplitLine rewrites the straight move from the current position to
// dest into sub-moves that each stay within a single mesh cell. Each
// sub-move ends exactly on a crossed mesh line (or the destination)
// with Z corrected at that point. It reports whether the whole move
// was accepted; on rejection the position is left at the last
// accepted sub-move.
func (l *Leveler) SplitLine(dest coord.Pose, feed float64) bool {
	start := l.pos

	if !l.levelingActive() {
		if !l.sink.Segment(dest, feed) {
			return false
		}
		l.pos = dest
		return true
	}

	icx, icy := l.grid.CellX(start.X), l.grid.CellY(start.Y)
	iex, iey := l.grid.CellX(dest.X), l.grid.CellY(dest.Y)

	// Most moves stay within one cell and need no splitting at all.
	if icx == iex && icy == iey {
		if !l.finalMove(dest, feed) {
			return false
		}
		l.pos = dest
		return true
	}

	dx, dy := dest.X-start.X, dest.Y-start.Y
	negX, negY := dx < 0, dy < 0

	var inegX, inegY int
	if negX {
		inegX = 1
	}
	if negY {
		inegY = 1
	}

	var addX, addY int
	if iex != icx {
		addX = 1 - 2*inegX
	}
	if iey != icy {
		addY = 1 - 2*inegY
	}

	// Z and E are interpolated along whichever of X/Y covers the
	// larger distance, to preserve precision.
	adx, ady := math.Abs(dx), math.Abs(dy)
	useXDist := adx > ady

	onAxisDist := dy
	if useXDist {
		onAxisDist = dx
	}

	zRate := (dest.Z - start.Z) / onAxisDist // divide by zero allowed
	eRate := (dest.E - start.E) / onAxisDist

	// An infinite (or undefined) rate means the dominant axis does
	// not actually travel; destination values are used directly.
	infRate := onAxisDist == 0 || math.IsInf(zRate, 0) || math.IsInf(eRate, 0)

	ratio := dy / dx // ±Inf for a perfectly vertical line
	c := start.Y - ratio*start.X
	infRatio := math.IsInf(ratio, 0)

	fade := l.fadeAt(dest.Z)

	last := start
	emit := func(d coord.Pose) bool {
		if !l.sink.Segment(d, feed) {
			return false
		}
		last = d
		return true
	}

	interp := func(d *coord.Pose) {
		if infRate {
			d.Z = dest.Z
			d.E = dest.E
			return
		}
		oad := d.Y - start.Y
		if useXDist {
			oad = d.X - start.X
		}
		d.Z = start.Z + oad*zRate
		d.E = start.E + oad*eRate
	}

	cx, cy := icx, icy

	// Vertical-ish: the cell column never changes, so only
	// horizontal mesh lines are crossed.
	if addX == 0 {
		cy += inegY // heading down? start from the bottom edge
		for cy != iey+inegY {
			cy += addY

			var d coord.Pose
			d.Y = l.grid.PointY(cy)
			if infRatio {
				d.X = start.X
			} else {
				d.X = (d.Y - c) / ratio
			}

			// Starting exactly on a mesh line would emit a
			// zero-length segment; skip it.
			if d.Y == start.Y {
				continue
			}

			interp(&d)
			z0 := l.grid.ZOnHorizontalLine(d.X, cx, cy) * fade
			if math.IsNaN(z0) {
				z0 = 0
			}
			d.Z += z0
			emit(d)
		}
		return l.finish(dest, last, feed)
	}

	// Horizontal-ish: the cell row never changes, so only vertical
	// mesh lines are crossed.
	if addY == 0 {
		cx += inegX
		for cx != iex+inegX {
			cx += addX

			var d coord.Pose
			d.X = l.grid.PointX(cx)
			d.Y = ratio*d.X + c

			if d.X == start.X {
				continue
			}

			interp(&d)
			z0 := l.grid.ZOnVerticalLine(d.Y, cx, cy) * fade
			if math.IsNaN(z0) {
				z0 = 0
			}
			d.Z += z0
			if !emit(d) {
				l.pos = last
				return false
			}
		}
		return l.finish(dest, last, feed)
	}

	// General case: the line crosses both vertical and horizontal
	// mesh lines. Walk toward the destination, always taking
	// whichever crossing comes first.
	cntX := iabs(icx - iex)
	cntY := iabs(icy - iey)
	cx += inegX
	cy += inegY

	for cntX != 0 || cntY != 0 {
		nextX := l.grid.PointX(cx + addX)
		nextY := l.grid.PointY(cy + addY)

		crossY := ratio*nextX + c     // Y where the next vertical line is crossed
		crossX := (nextY - c) / ratio // X where the next horizontal line is crossed
		// ratio cannot be 0 or Inf here; those are the axis-aligned
		// cases above.

		var d coord.Pose
		if negX == (crossX > nextX) {
			// The horizontal mesh line comes first.
			d.X = crossX
			d.Y = nextY

			interp(&d)
			z0 := l.grid.ZOnHorizontalLine(d.X, cx-inegX, cy+addY) * fade
			if math.IsNaN(z0) {
				z0 = 0
			}
			d.Z += z0
			if !emit(d) {
				l.pos = last
				return false
			}

			cy += addY
			cntY--
		} else {
			// The vertical mesh line comes first.
			d.X = nextX
			d.Y = crossY

			interp(&d)
			z0 := l.grid.ZOnVerticalLine(d.Y, cx+addX, cy-inegY) * fade
			if math.IsNaN(z0) {
				z0 = 0
			}
			d.Z += z0
			if !emit(d) {
				l.pos = last
				return false
			}

			cx += addX
			cntX--
		}

		// Rounding drift can push the walk past the expected
		// crossing count; degrade to the final move instead of
		// over-stepping.
		if cntX < 0 || cntY < 0 {
			break
		}
	}

	return l.finish(dest, last, feed)
}

// finish emits the remainder as a same-cell move, unless a crossing
// already landed exactly on the destination.
func (l *Leveler) finish(dest, last coord.Pose, feed float64) bool {
	if last.EqualXY(dest) {
		l.pos = dest
		return true
	}
	if !l.finalMove(dest, feed) {
		l.pos = last
		return false
	}
	l.pos = dest
	return true
}

// finalMove emits a move that begins and ends inside one mesh cell,
// applying full bilinear correction at the destination.
func (l *Leveler) finalMove(dest coord.Pose, feed float64) bool {
	d := dest

	if l.offMeshRaise != nil && (!l.grid.ValidX(d.X) || !l.grid.ValidY(d.Y)) {
		// Off the measured area there is nothing to interpolate
		// from; apply the configured constant raise instead.
		d.Z += *l.offMeshRaise
		return l.sink.Segment(d, feed)
	}

	ix, iy := l.grid.CellX(d.X), l.grid.CellY(d.Y)
	z0 := l.grid.Bilinear(d.X, d.Y, ix, iy) * l.fadeAt(dest.Z)
	if !math.IsNaN(z0) {
		d.Z += z0
	}

	return l.sink.Segment(d, feed)
}

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
