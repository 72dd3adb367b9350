package main

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mastercactapus/meshmotion/coord"
	"github.com/mastercactapus/meshmotion/level"
	"github.com/mastercactapus/meshmotion/machine"
)

// stepStream fans planned steps out to websocket subscribers.
type stepStream struct {
	mx    sync.Mutex
	conns map[*websocket.Conn]bool
}

func newStepStream() *stepStream {
	return &stepStream{conns: make(map[*websocket.Conn]bool)}
}

func (s *stepStream) add(c *websocket.Conn) {
	s.mx.Lock()
	s.conns[c] = true
	s.mx.Unlock()
}

func (s *stepStream) broadcast(st machine.Step) {
	data, err := json.Marshal(st)
	if err != nil {
		log.Println("ERROR: marshal step:", err)
		return
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	for c := range s.conns {
		err = c.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			c.Close()
			delete(s.conns, c)
		}
	}
}

// teeSink forwards each accepted step to the websocket stream on its
// way to the real sink.
type teeSink struct {
	level.Sink
	stream *stepStream
}

func (t teeSink) Segment(p coord.Pose, feed float64) bool {
	if !t.Sink.Segment(p, feed) {
		return false
	}
	t.stream.broadcast(machine.Step{Pose: p, Feed: feed})
	return true
}

func (t teeSink) Line(p coord.Pose, feed, length float64) bool {
	if !t.Sink.Line(p, feed, length) {
		return false
	}
	t.stream.broadcast(machine.Step{Pose: p, Feed: feed, Length: length})
	return true
}
