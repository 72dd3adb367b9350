package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPose_Add(t *testing.T) {
	a := Pose{X: 1, Y: 2, Z: 3, E: 4}
	b := Pose{X: 4, Y: 5, Z: 6, E: 7}

	assert.Equal(t, Pose{X: 5, Y: 7, Z: 9, E: 11}, a.Add(b))
}

func TestPose_Sub(t *testing.T) {
	a := Pose{X: 5, Y: 7, Z: 9, E: 11}
	b := Pose{X: 4, Y: 5, Z: 6, E: 7}

	assert.Equal(t, Pose{X: 1, Y: 2, Z: 3, E: 4}, a.Sub(b))
}

func TestPose_DistanceXY(t *testing.T) {
	dist := Pose{X: 1, Y: 2, Z: 3}.DistanceXY(Pose{X: 4, Y: 5, Z: 100})
	assert.InEpsilon(t, 4.24264, dist, .01)
}

func TestPose_Distance(t *testing.T) {
	dist := Pose{}.Distance(Pose{X: 2, Y: 3, Z: 6, E: 50})
	assert.Equal(t, 7.0, dist)
}

func TestPose_EqualXY(t *testing.T) {
	a := Pose{X: 1, Y: 2, Z: 3}
	assert.True(t, a.EqualXY(Pose{X: 1, Y: 2, Z: 9, E: 9}))
	assert.False(t, a.EqualXY(Pose{X: 1, Y: 2.5, Z: 3}))
}
