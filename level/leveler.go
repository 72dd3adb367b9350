// Package level rewrites straight moves into mesh-corrected sub-moves.
//
// Two strategies are provided: SplitLine emits one sub-move per mesh
// cell boundary crossed, correcting Z exactly on each crossing;
// SegmentedLine emits fixed-length segments for geometries that need
// bounded straight-line approximations. Both read the mesh, never
// write it, and push their output to a Sink.
package level

import (
	"errors"

	"github.com/mastercactapus/meshmotion/coord"
	"github.com/mastercactapus/meshmotion/kinematics"
	"github.com/mastercactapus/meshmotion/mesh"
)

// A Sink accepts corrected sub-moves. Calls may block while the
// downstream queue is full. A false return means the sub-move was
// refused and no further motion from the current move should be
// queued.
type Sink interface {
	// Segment queues one cell-boundary sub-move.
	Segment(p coord.Pose, feed float64) bool

	// Line queues one fixed-length segment along with its physical
	// length.
	Line(p coord.Pose, feed, length float64) bool
}

// Config wires a Leveler to its collaborators.
type Config struct {
	Grid *mesh.Grid
	Sink Sink

	Kinematics kinematics.Profile

	// Fade returns the scaling factor in [0,1] applied to every
	// correction for a move ending at height z. Nil disables fading
	// (factor 1 everywhere).
	Fade func(z float64) float64

	// Active reports whether leveling is applied at all. Nil means
	// always active.
	Active func() bool

	// Reachable reports whether a destination is inside the machine
	// envelope. Nil means everything is reachable.
	Reachable func(p coord.Pose) bool

	// OffMeshRaise, when set, replaces interpolation with a constant
	// Z raise for destinations outside the measured area.
	OffMeshRaise *float64
}

// Leveler owns the current position and applies mesh correction to
// each requested move. It is not safe for concurrent use; the mesh
// must not be edited while a move is in flight.
type Leveler struct {
	grid *mesh.Grid
	sink Sink
	kin  kinematics.Profile

	fade         func(float64) float64
	active       func() bool
	reachable    func(coord.Pose) bool
	offMeshRaise *float64

	pos coord.Pose
}

func New(cfg Config) (*Leveler, error) {
	if cfg.Grid == nil {
		return nil, errors.New("grid is required")
	}
	if cfg.Sink == nil {
		return nil, errors.New("sink is required")
	}

	return &Leveler{
		grid:         cfg.Grid,
		sink:         cfg.Sink,
		kin:          cfg.Kinematics,
		fade:         cfg.Fade,
		active:       cfg.Active,
		reachable:    cfg.Reachable,
		offMeshRaise: cfg.OffMeshRaise,
	}, nil
}

// Grid returns the mesh currently applied.
func (l *Leveler) Grid() *mesh.Grid { return l.grid }

// SetGrid replaces the mesh, e.g. after a fresh probe cycle. It must
// not be called while a move is in flight.
func (l *Leveler) SetGrid(g *mesh.Grid) error {
	if g == nil {
		return errors.New("grid is required")
	}
	l.grid = g
	return nil
}

// Position returns the current position.
func (l *Leveler) Position() coord.Pose { return l.pos }

// SetPosition overrides the current position without motion.
func (l *Leveler) SetPosition(p coord.Pose) { l.pos = p }

// Move rewrites one move to dest at feed mm/s, choosing the strategy
// the kinematic profile calls for. It reports whether any motion
// occurred.
func (l *Leveler) Move(dest coord.Pose, feed float64) bool {
	if l.kin.Segmented {
		return l.SegmentedLine(dest, feed)
	}
	return l.SplitLine(dest, feed)
}

func (l *Leveler) fadeAt(z float64) float64 {
	if l.fade == nil {
		return 1
	}
	return l.fade(z)
}

func (l *Leveler) levelingActive() bool {
	if l.active == nil {
		return true
	}
	return l.active()
}

// FadeFactor builds a fade scaling function that reduces corrections
// linearly from full strength at Z=0 to nothing at fadeHeight and
// above. A non-positive fadeHeight disables fading.
func FadeFactor(fadeHeight float64) func(z float64) float64 {
	if fadeHeight <= 0 {
		return func(float64) float64 { return 1 }
	}
	inv := 1 / fadeHeight
	return func(z float64) float64 {
		if z >= fadeHeight {
			return 0
		}
		if z <= 0 {
			return 1
		}
		return 1 - z*inv
	}
}
