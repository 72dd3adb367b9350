package level

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mastercactapus/meshmotion/coord"
	"github.com/mastercactapus/meshmotion/kinematics"
	"github.com/mastercactapus/meshmotion/mesh"
)

func TestSegmentedLine_Unreachable(t *testing.T) {
	l, sink := testLeveler(t, Config{
		Kinematics: kinematics.Delta(),
		Reachable:  func(p coord.Pose) bool { return p.DistanceXY(coord.Pose{X: 75, Y: 75}) < 100 },
	})
	l.SetPosition(coord.Pose{X: 75, Y: 75})

	moved := l.SegmentedLine(coord.Pose{X: 500, Y: 500}, 50)
	assert.False(t, moved)
	assert.Empty(t, sink.steps)
	assert.Equal(t, coord.Pose{X: 75, Y: 75}, l.Position())
}

func TestSegmentedLine_PlainSubdivision(t *testing.T) {
	l, sink := testLeveler(t, Config{
		Kinematics: kinematics.Cartesian(),
		Active:     func() bool { return false },
	})
	l.SetPosition(coord.Pose{X: 10, Y: 10})

	moved := l.SegmentedLine(coord.Pose{X: 20, Y: 10, E: 5}, 50)
	assert.True(t, moved)
	assert.Len(t, sink.steps, 10, "10mm at 1mm minimum segment length")

	for i, st := range sink.steps {
		assert.True(t, st.line)
		assert.InDelta(t, 1.0, st.length, 1e-9, "step %d", i)
		assert.InDelta(t, 11+float64(i), st.pose.X, 1e-9, "step %d", i)
		assert.Equal(t, 0.0, st.pose.Z, "no correction when inactive")
	}
	assert.Equal(t, coord.Pose{X: 20, Y: 10, E: 5}, sink.steps[9].pose)
	assert.Equal(t, coord.Pose{X: 20, Y: 10, E: 5}, l.Position())
}

func TestSegmentedLine_AboveFadeHeight(t *testing.T) {
	l, sink := testLeveler(t, Config{
		Kinematics: kinematics.Cartesian(),
		Fade:       FadeFactor(10),
	})
	l.SetPosition(coord.Pose{X: 40, Y: 40, Z: 15})

	moved := l.SegmentedLine(coord.Pose{X: 60, Y: 60, Z: 15}, 50)
	assert.True(t, moved)
	for i, st := range sink.steps {
		assert.Equal(t, 15.0, st.pose.Z, "step %d uncorrected above fade height", i)
	}
}

func TestSegmentedLine_MinimumOneSegment(t *testing.T) {
	l, sink := testLeveler(t, Config{Kinematics: kinematics.Cartesian()})
	l.SetPosition(coord.Pose{X: 10, Y: 10})

	moved := l.SegmentedLine(coord.Pose{X: 10.2, Y: 10}, 50)
	assert.True(t, moved)
	assert.Len(t, sink.steps, 1)
	assert.Equal(t, 10.2, sink.steps[0].pose.X)
}

func TestSegmentedLine_CorrectionMatchesBilinear(t *testing.T) {
	g := testGrid(t)
	l, sink := testLeveler(t, Config{Grid: g, Kinematics: kinematics.Cartesian()})
	l.SetPosition(coord.Pose{X: 5, Y: 30})

	// Crosses two cell columns; the incremental per-segment
	// coefficients must agree with direct bilinear interpolation at
	// every emitted point.
	dest := coord.Pose{X: 145, Y: 45}
	moved := l.SegmentedLine(dest, 50)
	assert.True(t, moved)

	for i, st := range sink.steps {
		ix, iy := g.CellX(st.pose.X), g.CellY(st.pose.Y)
		want := g.Bilinear(st.pose.X, st.pose.Y, ix, iy)
		assert.InDelta(t, want, st.pose.Z, 1e-9, "step %d at %+v", i, st.pose)
	}

	final := sink.steps[len(sink.steps)-1]
	assert.Equal(t, dest.X, final.pose.X, "final segment snaps to the destination")
	assert.Equal(t, dest.Y, final.pose.Y)
	assert.Equal(t, dest, l.Position())
}

func TestSegmentedLine_SegmentBound(t *testing.T) {
	l, sink := testLeveler(t, Config{Kinematics: kinematics.Delta()})
	l.SetPosition(coord.Pose{X: 10, Y: 10})

	moved := l.SegmentedLine(coord.Pose{X: 30, Y: 10}, 2)
	assert.True(t, moved)
	assert.True(t, len(sink.steps) > 1)

	prev := coord.Pose{X: 10, Y: 10}
	min := kinematics.Delta().MinSegmentLength
	for i, st := range sink.steps {
		assert.True(t, prev.DistanceXY(st.pose) <= min+1e-9, "step %d too long", i)
		prev = st.pose
	}
}

func TestSegmentedLine_Rejection(t *testing.T) {
	l, sink := testLeveler(t, Config{Kinematics: kinematics.Cartesian()})
	sink.limit = 3
	l.SetPosition(coord.Pose{X: 10, Y: 10})

	moved := l.SegmentedLine(coord.Pose{X: 20, Y: 10}, 50)
	assert.False(t, moved)
	assert.Len(t, sink.steps, 3)
	assert.Equal(t, 13.0, l.Position().X, "position stops at the last accepted segment")
}

func TestSegmentedLine_FadeScalesCorrection(t *testing.T) {
	l, sink := testLeveler(t, Config{
		Kinematics: kinematics.Cartesian(),
		Fade:       FadeFactor(10),
	})
	l.SetPosition(coord.Pose{X: 45, Y: 45, Z: 5})

	// One-segment move right at the raised sample; the correction is
	// halved at half the fade height.
	moved := l.SegmentedLine(coord.Pose{X: 46, Y: 46, Z: 5}, 50)
	assert.True(t, moved)
	assert.Len(t, sink.steps, 1)

	g := testGrid(t)
	want := 5 + 0.5*g.Bilinear(46, 46, 0, 0)
	assert.InDelta(t, want, sink.steps[0].pose.Z, 1e-9)
}

func TestSegmentedLine_UndefinedSamples(t *testing.T) {
	g, err := mesh.NewGrid(mesh.GridConfig{
		SpacingX: 50, SpacingY: 50,
		PointsX: 4, PointsY: 4,
	})
	assert.NoError(t, err)

	l, sink := testLeveler(t, Config{Grid: g, Kinematics: kinematics.Delta()})
	l.SetPosition(coord.Pose{X: 5, Y: 5})

	moved := l.SegmentedLine(coord.Pose{X: 120, Y: 130}, 40)
	assert.True(t, moved)
	for i, st := range sink.steps {
		assert.False(t, math.IsNaN(st.pose.Z), "step %d", i)
	}
}
