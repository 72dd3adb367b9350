package mesh

import (
	"errors"
	"math"
)

// GridConfig describes the geometry of a leveling grid.
type GridConfig struct {
	// OriginX, OriginY locate the first sample point.
	OriginX, OriginY float64

	// SpacingX, SpacingY are the distances between sample points on
	// each axis.
	SpacingX, SpacingY float64

	// PointsX, PointsY are the sample point counts per axis. A grid
	// has one less cell than points on each axis.
	PointsX, PointsY int
}

// Grid is a rectangular mesh of measured Z offsets over the work
// area. A sample may be undefined (NaN), meaning no measurement was
// taken there; undefined samples read as zero wherever a correction
// is computed but are never filled in.
//
// Geometry is fixed for the lifetime of the grid. Samples must not be
// written while a move is being segmented against the grid.
type Grid struct {
	cfg GridConfig

	z [][]float64 // z[ix][iy], NaN = undefined
}

// NewGrid creates a grid with every sample undefined.
func NewGrid(cfg GridConfig) (*Grid, error) {
	if cfg.PointsX < 2 || cfg.PointsY < 2 {
		return nil, errors.New("grid needs at least 2 points per axis")
	}
	if cfg.SpacingX <= 0 || cfg.SpacingY <= 0 {
		return nil, errors.New("grid spacing must be positive")
	}

	g := &Grid{cfg: cfg}
	g.z = make([][]float64, cfg.PointsX)
	for ix := range g.z {
		g.z[ix] = make([]float64, cfg.PointsY)
		for iy := range g.z[ix] {
			g.z[ix][iy] = math.NaN()
		}
	}
	return g, nil
}

func (g *Grid) Config() GridConfig { return g.cfg }

// MaxCellX is the highest valid cell column index.
func (g *Grid) MaxCellX() int { return g.cfg.PointsX - 2 }

// MaxCellY is the highest valid cell row index.
func (g *Grid) MaxCellY() int { return g.cfg.PointsY - 2 }

// PointX returns the X coordinate of sample column ix.
func (g *Grid) PointX(ix int) float64 {
	return g.cfg.OriginX + g.cfg.SpacingX*float64(ix)
}

// PointY returns the Y coordinate of sample row iy.
func (g *Grid) PointY(iy int) float64 {
	return g.cfg.OriginY + g.cfg.SpacingY*float64(iy)
}

// CellX maps an X coordinate to the column index of the containing
// cell, clamped to the valid range. Positions in the inset margin
// outside the measured area reuse the nearest edge cell.
func (g *Grid) CellX(x float64) int {
	return clamp(g.cellXRaw(x), 0, g.MaxCellX())
}

// CellY maps a Y coordinate to the row index of the containing cell,
// clamped to the valid range.
func (g *Grid) CellY(y float64) int {
	return clamp(g.cellYRaw(y), 0, g.MaxCellY())
}

// ValidX reports whether x falls within the measured columns.
func (g *Grid) ValidX(x float64) bool {
	i := g.cellXRaw(x)
	return i >= 0 && i <= g.MaxCellX()
}

// ValidY reports whether y falls within the measured rows.
func (g *Grid) ValidY(y float64) bool {
	i := g.cellYRaw(y)
	return i >= 0 && i <= g.MaxCellY()
}

func (g *Grid) cellXRaw(x float64) int {
	return int(math.Floor((x - g.cfg.OriginX) / g.cfg.SpacingX))
}

func (g *Grid) cellYRaw(y float64) int {
	return int(math.Floor((y - g.cfg.OriginY) / g.cfg.SpacingY))
}

// Z returns the raw sample at (ix, iy). Undefined and out-of-range
// samples are NaN.
func (g *Grid) Z(ix, iy int) float64 {
	if ix < 0 || iy < 0 || ix >= g.cfg.PointsX || iy >= g.cfg.PointsY {
		return math.NaN()
	}
	return g.z[ix][iy]
}

// SetZ stores a sample. Out-of-range indexes are ignored.
func (g *Grid) SetZ(ix, iy int, z float64) {
	if ix < 0 || iy < 0 || ix >= g.cfg.PointsX || iy >= g.cfg.PointsY {
		return
	}
	g.z[ix][iy] = z
}

// Corner returns the sample at (ix, iy) with undefined samples read
// as zero. The substitution happens at the point of use; the stored
// table keeps its NaN.
func (g *Grid) Corner(ix, iy int) float64 {
	z := g.Z(ix, iy)
	if math.IsNaN(z) {
		return 0
	}
	return z
}

// Bilinear returns the interpolated Z offset at (x, y) within cell
// (ix, iy), weighting the four corner samples by fractional position.
func (g *Grid) Bilinear(x, y float64, ix, iy int) float64 {
	xr := (x - g.PointX(ix)) / g.cfg.SpacingX
	yr := (y - g.PointY(iy)) / g.cfg.SpacingY

	z1 := g.Corner(ix, iy) + xr*(g.Corner(ix+1, iy)-g.Corner(ix, iy))
	z2 := g.Corner(ix, iy+1) + xr*(g.Corner(ix+1, iy+1)-g.Corner(ix, iy+1))

	return z1 + (z2-z1)*yr
}

// ZOnHorizontalLine returns the Z offset at x along the horizontal
// mesh line iy, interpolating between the samples at columns ix and
// ix+1.
func (g *Grid) ZOnHorizontalLine(x float64, ix, iy int) float64 {
	xr := (x - g.PointX(ix)) / g.cfg.SpacingX
	z0 := g.Corner(ix, iy)
	return z0 + xr*(g.Corner(ix+1, iy)-z0)
}

// ZOnVerticalLine returns the Z offset at y along the vertical mesh
// line ix, interpolating between the samples at rows iy and iy+1.
func (g *Grid) ZOnVerticalLine(y float64, ix, iy int) float64 {
	yr := (y - g.PointY(iy)) / g.cfg.SpacingY
	z0 := g.Corner(ix, iy)
	return z0 + yr*(g.Corner(ix, iy+1)-z0)
}

// Samples returns a copy of the sample table indexed z[ix][iy].
func (g *Grid) Samples() [][]float64 {
	out := make([][]float64, len(g.z))
	for ix := range g.z {
		out[ix] = make([]float64, len(g.z[ix]))
		copy(out[ix], g.z[ix])
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
