package machine

import (
	"errors"
	"io"

	"github.com/mastercactapus/meshmotion/coord"
	"github.com/mastercactapus/meshmotion/gcode"
	"github.com/mastercactapus/meshmotion/level"
)

// DefaultFeedRate is used for motion blocks that arrive before any F
// word, in mm/min.
const DefaultFeedRate = 3000

// ErrStopped is returned when the sink refuses a step mid-move.
var ErrStopped = errors.New("machine: motion stopped by sink")

type Config struct {
	Leveler *level.Leveler

	// Interp may be set to share modal state; a fresh one is used
	// otherwise.
	Interp *gcode.Interp

	// Currents receives M907/M908 blocks when set.
	Currents *MotorCurrents
}

// Machine feeds a g-code stream through the interpreter and the mesh
// leveler.
type Machine struct {
	interp   *gcode.Interp
	leveler  *level.Leveler
	currents *MotorCurrents
}

func New(cfg Config) (*Machine, error) {
	if cfg.Leveler == nil {
		return nil, errors.New("leveler is required")
	}
	if cfg.Interp == nil {
		cfg.Interp = gcode.NewInterp()
	}
	m := &Machine{
		interp:   cfg.Interp,
		leveler:  cfg.Leveler,
		currents: cfg.Currents,
	}
	m.interp.SetPosition(m.leveler.Position())
	return m, nil
}

// Position returns the logical (uncorrected) position.
func (m *Machine) Position() coord.Pose { return m.interp.Position() }

// SetPosition updates both the interpreter and the leveler.
func (m *Machine) SetPosition(p coord.Pose) {
	m.interp.SetPosition(p)
	m.leveler.SetPosition(p)
}

// Run interprets blocks from r until EOF or the first error.
func (m *Machine) Run(r io.Reader) error {
	gr := gcode.NewParser(r)
	for {
		b, err := gr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		err = m.RunBlock(b)
		if err != nil {
			return err
		}
	}
}

// RunBlocks interprets an in-memory block list by re-streaming it
// through the g-code buffer.
func (m *Machine) RunBlocks(b []gcode.Block) error {
	return m.Run(gcode.NewBuffer(&gcode.BlocksReader{Blocks: b}))
}

// RunBlock interprets a single block, dispatching any resulting motion
// through the leveler.
func (m *Machine) RunBlock(b gcode.Block) error {
	if m.currents != nil && (b.Has('M', 907) || b.Has('M', 908)) {
		return m.currents.Apply(b)
	}

	mv, err := m.interp.Run(b)
	if err != nil {
		return err
	}
	if mv == nil {
		return nil
	}

	feed := mv.Feed
	if feed <= 0 {
		feed = DefaultFeedRate
	}

	// leveler feed rates are mm/s
	if !m.leveler.Move(mv.Target, feed/60) {
		// partial move; realign the interpreter with where the
		// leveler actually stopped
		m.interp.SetPosition(m.leveler.Position())
		return ErrStopped
	}
	return nil
}
