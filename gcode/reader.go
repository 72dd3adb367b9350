package gcode

import "io"

// A Reader yields one parsed block at a time.
type Reader interface {
	Read() (Block, error)
}

// BlocksReader replays an in-memory block list.
type BlocksReader struct {
	Blocks []Block
	n      int
}

func (b *BlocksReader) Read() (Block, error) {
	if b.n == len(b.Blocks) {
		return nil, io.EOF
	}

	b.n++
	return b.Blocks[b.n-1], nil
}
