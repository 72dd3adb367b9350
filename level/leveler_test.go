package level

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mastercactapus/meshmotion/coord"
	"github.com/mastercactapus/meshmotion/kinematics"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Grid: testGrid(t)})
	assert.Error(t, err, "sink is required")
}

func TestFadeFactor(t *testing.T) {
	f := FadeFactor(10)
	assert.Equal(t, 1.0, f(0))
	assert.Equal(t, 1.0, f(-1))
	assert.InDelta(t, 0.5, f(5), 1e-12)
	assert.Equal(t, 0.0, f(10))
	assert.Equal(t, 0.0, f(100))

	off := FadeFactor(0)
	assert.Equal(t, 1.0, off(0))
	assert.Equal(t, 1.0, off(1000))
}

func TestMove_SelectsStrategy(t *testing.T) {
	l, sink := testLeveler(t, Config{Kinematics: kinematics.Delta()})
	l.SetPosition(coord.Pose{X: 10, Y: 10})

	assert.True(t, l.Move(coord.Pose{X: 12, Y: 10}, 50))
	assert.True(t, sink.steps[0].line, "delta uses fixed-length segments")

	l2, sink2 := testLeveler(t, Config{Kinematics: kinematics.Cartesian()})
	l2.SetPosition(coord.Pose{X: 10, Y: 10})

	assert.True(t, l2.Move(coord.Pose{X: 12, Y: 10}, 50))
	assert.False(t, sink2.steps[0].line, "cartesian splits on cell boundaries")
}
