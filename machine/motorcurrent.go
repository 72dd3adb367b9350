package machine

import (
	"errors"
	"sync"

	"github.com/mastercactapus/meshmotion/gcode"
)

var currentAxes = []byte{'X', 'Y', 'Z', 'E'}

// MotorCurrents tracks per-axis stepper current settings as updated by
// M907 blocks. M908 addresses a raw trimpot channel directly.
type MotorCurrents struct {
	mx       sync.Mutex
	axis     map[byte]float64
	channels map[int]float64
}

func NewMotorCurrents() *MotorCurrents {
	return &MotorCurrents{
		axis:     make(map[byte]float64),
		channels: make(map[int]float64),
	}
}

// Apply updates settings from an M907 or M908 block.
func (c *MotorCurrents) Apply(b gcode.Block) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if b.Has('M', 907) {
		if ok, s := b.Arg('S'); ok {
			// S sets every axis at once
			for _, a := range currentAxes {
				c.axis[a] = s
			}
		}
		for _, g := range b {
			if g.IsAxis() {
				c.axis[g.W] = g.Arg
			}
		}
		return nil
	}

	okP, p := b.Arg('P')
	okS, s := b.Arg('S')
	if !okP || !okS {
		return errors.New("M908 requires P and S")
	}
	c.channels[int(p)] = s
	return nil
}

func (c *MotorCurrents) Set(axis byte, val float64) {
	c.mx.Lock()
	c.axis[axis] = val
	c.mx.Unlock()
}

func (c *MotorCurrents) Get(axis byte) (float64, bool) {
	c.mx.Lock()
	v, ok := c.axis[axis]
	c.mx.Unlock()
	return v, ok
}

// Report formats the axis settings as an M907 block.
func (c *MotorCurrents) Report() string {
	c.mx.Lock()
	defer c.mx.Unlock()

	b := gcode.Block{{W: 'M', Arg: 907}}
	for _, a := range currentAxes {
		if v, ok := c.axis[a]; ok {
			b = append(b, gcode.Word{W: a, Arg: v})
		}
	}
	return b.String()
}
