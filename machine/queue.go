package machine

import (
	"sync"

	"github.com/mastercactapus/meshmotion/coord"
	"github.com/mastercactapus/meshmotion/level"
)

// Step is one planned sub-move.
type Step struct {
	Pose coord.Pose
	Feed float64

	// Length is the nominal segment length for fixed-length moves,
	// zero for boundary splits.
	Length float64
}

// Queue is a bounded step buffer that applies backpressure to the
// leveler. It satisfies level.Sink.
type Queue struct {
	steps chan Step
	done  chan struct{}
	once  sync.Once
}

var _ level.Sink = &Queue{}

func NewQueue(size int) *Queue {
	return &Queue{
		steps: make(chan Step, size),
		done:  make(chan struct{}),
	}
}

// Steps is the consumer side of the queue.
func (q *Queue) Steps() <-chan Step { return q.steps }

// Close aborts the queue; pending and future steps are rejected.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

// Finish closes the step stream. It must only be called after the
// producing side has stopped submitting moves.
func (q *Queue) Finish() { close(q.steps) }

func (q *Queue) push(s Step) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.steps <- s:
		return true
	case <-q.done:
		return false
	}
}

func (q *Queue) Segment(p coord.Pose, feed float64) bool {
	return q.push(Step{Pose: p, Feed: feed})
}

func (q *Queue) Line(p coord.Pose, feed, length float64) bool {
	return q.push(Step{Pose: p, Feed: feed, Length: length})
}

// Drain forwards queued steps to out until the stream ends. If out
// refuses a step the queue is closed so the producer stops too.
func (q *Queue) Drain(out level.Sink) {
	for st := range q.steps {
		var ok bool
		if st.Length > 0 {
			ok = out.Line(st.Pose, st.Feed, st.Length)
		} else {
			ok = out.Segment(st.Pose, st.Feed)
		}
		if !ok {
			q.Close()
			return
		}
	}
}
