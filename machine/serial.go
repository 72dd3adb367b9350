package machine

import (
	"bufio"
	"io"
	"log"
	"strings"

	"github.com/tarm/serial"

	"github.com/mastercactapus/meshmotion/coord"
	"github.com/mastercactapus/meshmotion/gcode"
)

// SerialSink writes planned steps to a printer over a serial port,
// waiting for the firmware's ok after each line. It satisfies
// level.Sink.
type SerialSink struct {
	rw io.ReadWriteCloser
	br *bufio.Reader
}

func OpenSerial(device string, baud int) (*SerialSink, error) {
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, err
	}
	return NewSerialSink(port), nil
}

func NewSerialSink(rw io.ReadWriteCloser) *SerialSink {
	return &SerialSink{rw: rw, br: bufio.NewReader(rw)}
}

func (s *SerialSink) Close() error { return s.rw.Close() }

func (s *SerialSink) write(p coord.Pose, feed float64) bool {
	b := gcode.Block{
		{W: 'G', Arg: 1},
		{W: 'X', Arg: p.X},
		{W: 'Y', Arg: p.Y},
		{W: 'Z', Arg: p.Z},
		{W: 'E', Arg: p.E},
		{W: 'F', Arg: feed * 60},
	}
	_, err := io.WriteString(s.rw, b.String()+"\n")
	if err != nil {
		log.Println("ERROR: write to port:", err)
		return false
	}

	for {
		line, err := s.br.ReadString('\n')
		if err != nil {
			log.Println("ERROR: read from port:", err)
			return false
		}
		line = strings.TrimSpace(line)
		if line == "ok" || strings.HasPrefix(line, "ok ") {
			return true
		}
		if line != "" {
			log.Println("printer:", line)
		}
	}
}

func (s *SerialSink) Segment(p coord.Pose, feed float64) bool {
	return s.write(p, feed)
}

func (s *SerialSink) Line(p coord.Pose, feed, _ float64) bool {
	return s.write(p, feed)
}
