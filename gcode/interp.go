package gcode

import (
	"errors"

	"github.com/mastercactapus/meshmotion/coord"
)

// Move is a single motion request produced by the interpreter. Target is
// always absolute and in millimeters; Feed is in mm/min.
type Move struct {
	Target coord.Pose
	Feed   float64
	Rapid  bool
}

// Interp will track modal state and interpret printer-dialect gcode.
type Interp struct {
	pos coord.Pose

	modal [256]float64

	feed float64
}

// NewInterp constructs a new Interp with default state.
func NewInterp() *Interp {
	in := &Interp{}

	// power-on defaults: absolute, millimeters, linear motion
	in.modal[ModalGroupMotion] = 0
	in.modal[ModalGroupDistanceMode] = 90
	in.modal[ModalGroupExtruderMode] = 82
	in.modal[ModalGroupUnits] = 21
	in.modal[ModalGroupStopping] = 0

	return in
}

func (in Interp) Inches() bool         { return in.modal[ModalGroupUnits] == 20 }
func (in Interp) RelativeMotion() bool { return in.modal[ModalGroupDistanceMode] == 91 }
func (in Interp) RelativeE() bool {
	return in.RelativeMotion() || in.modal[ModalGroupExtruderMode] == 83
}
func (in Interp) Feed() float64 { return in.feed }

func (in Interp) Position() coord.Pose { return in.pos }
func (in *Interp) SetPosition(p coord.Pose) {
	in.pos = p
}

func isSupported(g Word) bool {
	if g.IsAxis() {
		return true
	}

	if g.W == 'G' {
		switch g.Arg {
		case 0, 1, 4, 20, 21, 28, 90, 91, 92:
			return true
		}
	} else if g.W == 'F' {
		return true
	} else if g.W == 'M' {
		switch g.Arg {
		case 0, 1, 2, 30, 82, 83, 907, 908:
			return true
		}
	}

	return false
}

func applyBlock(p coord.Pose, b Block, mul float64) coord.Pose {
	for _, g := range b {
		switch g.W {
		case 'X':
			p.X = g.Arg * mul
		case 'Y':
			p.Y = g.Arg * mul
		case 'Z':
			p.Z = g.Arg * mul
		case 'E':
			p.E = g.Arg * mul
		}
	}

	return p
}

// Run interprets one block. It returns a non-nil Move when the block
// requests motion; modal-only blocks return (nil, nil).
func (in *Interp) Run(b Block) (*Move, error) {
	err := b.Validate()
	if err != nil {
		return nil, err
	}
	var setPos, home, hasFeed bool
	var feedArg float64
	for _, g := range b {
		if !isSupported(g) {
			return nil, errors.New("unsupported code: " + g.String())
		}
		mg := g.ModalGroup()
		if mg != ModalGroupNone && mg != ModalGroupNonModal {
			in.modal[mg] = g.Arg
		}
		if g.W == 'F' {
			hasFeed = true
			feedArg = g.Arg
		}
		if g == (Word{W: 'G', Arg: 92}) {
			setPos = true
		}
		if g == (Word{W: 'G', Arg: 28}) {
			home = true
		}
	}

	mul := 1.0
	if in.Inches() {
		mul = 25.4
	}
	if hasFeed {
		in.feed = feedArg * mul
	}

	args := b.Args()
	if setPos {
		// G92: redefine the current position, no motion
		in.pos = applyBlock(in.pos, args, mul)
		return nil, nil
	}
	if home {
		in.home(args)
		return nil, nil
	}
	var hasAxis bool
	for _, g := range args {
		if g.IsAxis() {
			hasAxis = true
		}
	}
	if !hasAxis {
		return nil, nil
	}

	var next coord.Pose
	if in.RelativeMotion() {
		next = in.pos.Add(applyBlock(coord.Pose{}, args, mul))
	} else {
		next = applyBlock(in.pos, args, mul)
		if in.RelativeE() {
			next.E = in.pos.E
			if ok, e := args.Arg('E'); ok {
				next.E += e * mul
			}
		}
	}
	in.pos = next

	return &Move{
		Target: next,
		Feed:   in.feed,
		Rapid:  in.modal[ModalGroupMotion] == 0,
	}, nil
}

// home zeroes the named axes; a bare G28 homes all of XYZ.
func (in *Interp) home(args Block) {
	if len(args) == 0 {
		in.pos.X, in.pos.Y, in.pos.Z = 0, 0, 0
		return
	}
	for _, g := range args {
		switch g.W {
		case 'X':
			in.pos.X = 0
		case 'Y':
			in.pos.Y = 0
		case 'Z':
			in.pos.Z = 0
		}
	}
}
