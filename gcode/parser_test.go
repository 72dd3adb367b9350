package gcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParser_Read(t *testing.T) {
	p := NewParser(strings.NewReader("G1 X10.5 Y-3 E0.2 F1200\n"))

	b, err := p.Read()
	assert.NoError(t, err)
	assert.Equal(t, Block{
		{W: 'G', Arg: 1},
		{W: 'X', Arg: 10.5},
		{W: 'Y', Arg: -3},
		{W: 'E', Arg: 0.2},
		{W: 'F', Arg: 1200},
	}, b)
}

func TestParser_Read_Comments(t *testing.T) {
	p := NewParser(strings.NewReader("; preamble\nG1 X1 ; move over\n\nN12 G1 Y2 *71\n"))

	b, err := p.Read()
	assert.NoError(t, err)
	assert.Equal(t, Block{{W: 'G', Arg: 1}, {W: 'X', Arg: 1}}, b)

	b, err = p.Read()
	assert.NoError(t, err)
	assert.Equal(t, Block{{W: 'G', Arg: 1}, {W: 'Y', Arg: 2}}, b, "line numbers and checksums are dropped")
}

func TestParse(t *testing.T) {
	blocks, err := Parse("G28\nG1 X5\n")
	assert.NoError(t, err)
	assert.Len(t, blocks, 2)
	assert.Equal(t, Block{{W: 'G', Arg: 28}}, blocks[0])
}
