package coord

import (
	"math"
)

// Pose is a full machine position: the cartesian X/Y/Z axes plus the
// E (extruder) auxiliary axis.
type Pose struct{ X, Y, Z, E float64 }

func (p Pose) Equal(b Pose) bool {
	return p.X == b.X && p.Y == b.Y && p.Z == b.Z && p.E == b.E
}

// EqualXY reports whether two poses share the same XY position.
func (p Pose) EqualXY(b Pose) bool {
	return p.X == b.X && p.Y == b.Y
}

// Add will add the target values to p.
func (p Pose) Add(target Pose) Pose {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	p.E += target.E
	return p
}

// Sub will subtract the target values from p.
func (p Pose) Sub(target Pose) Pose {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	p.E -= target.E
	return p
}

func (p Pose) Mul(val float64) Pose {
	p.X *= val
	p.Y *= val
	p.Z *= val
	p.E *= val
	return p
}

// DistanceXY will return the 2D distance to the target pose.
func (p Pose) DistanceXY(target Pose) float64 {
	return math.Hypot(target.X-p.X, target.Y-p.Y)
}

// Distance will return the 3D distance to the target pose. The E axis
// does not contribute.
func (p Pose) Distance(target Pose) float64 {
	dx := target.X - p.X
	dy := target.Y - p.Y
	dz := target.Z - p.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Point will return the XYZ part of the pose.
func (p Pose) Point() Point {
	return Point{X: p.X, Y: p.Y, Z: p.Z}
}
