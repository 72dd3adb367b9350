package machine

import (
	"io"
	"log"

	"github.com/mastercactapus/meshmotion/coord"
	"github.com/mastercactapus/meshmotion/gcode"
)

// WriterSink writes planned steps as g-code lines to w without any
// flow control. Useful for dry runs and for piping to a file.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) write(p coord.Pose, feed float64) bool {
	b := gcode.Block{
		{W: 'G', Arg: 1},
		{W: 'X', Arg: p.X},
		{W: 'Y', Arg: p.Y},
		{W: 'Z', Arg: p.Z},
		{W: 'E', Arg: p.E},
		{W: 'F', Arg: feed * 60},
	}
	_, err := io.WriteString(s.w, b.String()+"\n")
	if err != nil {
		log.Println("ERROR: write:", err)
		return false
	}
	return true
}

func (s *WriterSink) Segment(p coord.Pose, feed float64) bool {
	return s.write(p, feed)
}

func (s *WriterSink) Line(p coord.Pose, feed, _ float64) bool {
	return s.write(p, feed)
}
