package audio

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/pion/logging"
)

const testRate = 44100

func newTestContext() *Context {
	return NewContext(testRate, logging.NewDefaultLoggerFactory())
}

// pullQuanta renders n directly, bypassing the destination.
func pullQuanta(c *Context, n Node, quanta int) (l, r []float64) {
	for q := 0; q < quanta; q++ {
		c.mu.Lock()
		b := c.pull(n)
		l = append(l, b.Left()...)
		r = append(r, b.Right()...)
		c.frame += Quantum
		c.quantum++
		c.mu.Unlock()
	}
	return l, r
}

// advance renders seconds of audio through the destination.
func advance(c *Context, seconds float64) {
	frames := int(seconds * c.SampleRate())
	c.Process(make([]float32, frames*ChannelCount))
}

func rms(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}
	return math.Sqrt(s / float64(len(x)))
}

type fakeSink struct {
	mu     sync.Mutex
	opens  int
	closes int
	err    error
}

func (s *fakeSink) Open(ctx context.Context, r Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.opens++
	return nil
}

func (s *fakeSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

var errDevice = errors.New("device busy")
