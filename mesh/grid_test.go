package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestGrid(t *testing.T) *Grid {
	g, err := NewGrid(GridConfig{
		SpacingX: 50, SpacingY: 50,
		PointsX: 4, PointsY: 4,
	})
	assert.NoError(t, err)
	return g
}

func TestNewGrid(t *testing.T) {
	_, err := NewGrid(GridConfig{SpacingX: 50, SpacingY: 50, PointsX: 1, PointsY: 4})
	assert.Error(t, err)

	_, err = NewGrid(GridConfig{SpacingX: 0, SpacingY: 50, PointsX: 4, PointsY: 4})
	assert.Error(t, err)

	g := newTestGrid(t)
	assert.Equal(t, 2, g.MaxCellX())
	assert.True(t, math.IsNaN(g.Z(0, 0)), "samples start undefined")
}

func TestGrid_CellIndex(t *testing.T) {
	g := newTestGrid(t)

	assert.Equal(t, 0, g.CellX(0))
	assert.Equal(t, 0, g.CellX(49.9))
	assert.Equal(t, 1, g.CellX(50))
	assert.Equal(t, 2, g.CellX(149))

	// Inset margin positions clamp to the edge cells.
	assert.Equal(t, 0, g.CellX(-10))
	assert.Equal(t, 2, g.CellX(500))
	assert.Equal(t, 0, g.CellY(-10))
	assert.Equal(t, 2, g.CellY(500))

	assert.True(t, g.ValidX(75))
	assert.False(t, g.ValidX(-10))
	assert.False(t, g.ValidY(151))
}

func TestGrid_Bilinear(t *testing.T) {
	g := newTestGrid(t)
	for ix := 0; ix < 4; ix++ {
		for iy := 0; iy < 4; iy++ {
			g.SetZ(ix, iy, 0)
		}
	}
	g.SetZ(1, 1, 2)

	// At the sample point itself.
	assert.Equal(t, 2.0, g.Bilinear(50, 50, 0, 0))
	assert.Equal(t, 2.0, g.Bilinear(50, 50, 1, 1))

	// Quarter of the way back into cell (0,0).
	assert.InDelta(t, 2.0*0.8*0.8, g.Bilinear(40, 40, 0, 0), 1e-12)

	// Into cell (1,1) the influence fades out.
	assert.InDelta(t, 1.28, g.Bilinear(60, 60, 1, 1), 1e-12)
}

func TestGrid_EdgeLinear(t *testing.T) {
	g := newTestGrid(t)
	for ix := 0; ix < 4; ix++ {
		for iy := 0; iy < 4; iy++ {
			g.SetZ(ix, iy, 0)
		}
	}
	g.SetZ(1, 1, 2)

	assert.InDelta(t, 1.0, g.ZOnHorizontalLine(25, 0, 1), 1e-12)
	assert.InDelta(t, 2.0, g.ZOnHorizontalLine(50, 0, 1), 1e-12)
	assert.InDelta(t, 1.6, g.ZOnHorizontalLine(60, 1, 1), 1e-12)

	assert.InDelta(t, 1.0, g.ZOnVerticalLine(25, 1, 0), 1e-12)
	assert.InDelta(t, 2.0, g.ZOnVerticalLine(50, 1, 1), 1e-12)
}

func TestGrid_UndefinedSampleNeutrality(t *testing.T) {
	g := newTestGrid(t)
	g.SetZ(0, 0, 1)
	g.SetZ(1, 0, 1)
	// (0,1) and (1,1) stay undefined.

	z := g.Bilinear(25, 25, 0, 0)
	assert.False(t, math.IsNaN(z), "undefined samples must not propagate")

	// Substituting 0 for the undefined corners must match exactly.
	g.SetZ(0, 1, 0)
	g.SetZ(1, 1, 0)
	assert.Equal(t, g.Bilinear(25, 25, 0, 0), z)

	// The stored table still reports the samples as defined now, but
	// resetting shows the original NaN was never overwritten by reads.
	g2 := newTestGrid(t)
	g2.SetZ(0, 0, 1)
	_ = g2.Bilinear(10, 10, 0, 0)
	assert.True(t, math.IsNaN(g2.Z(1, 0)))
}

func TestGrid_Samples(t *testing.T) {
	g := newTestGrid(t)
	g.SetZ(2, 3, 1.5)

	s := g.Samples()
	assert.Equal(t, 1.5, s[2][3])

	s[2][3] = 9
	assert.Equal(t, 1.5, g.Z(2, 3), "Samples returns a copy")
}
