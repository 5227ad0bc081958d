package audio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/pion/logging"

	"murasaki/internal/rng"
)

// State of a Context's connection to an output device.
type State int

const (
	Suspended State = iota
	Running
	Closed
)

func (s State) String() string {
	switch s {
	case Suspended:
		return "suspended"
	case Running:
		return "running"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var ErrClosed = errors.New("audio: context closed")

// Context owns a signal graph and its sample clock. The clock only advances
// while something pulls audio through Read or Process; until a Sink is
// resumed nothing does, so scheduling on a fresh Context touches no device.
type Context struct {
	mu         sync.Mutex
	sampleRate float64
	frame      int64
	quantum    int64
	dest       *Destination
	events     []scheduled
	started    int
	rand       *rng.Rand
	log        logging.LeveledLogger

	resumeMu sync.Mutex
	state    State
	sink     Sink

	outL, outR [Quantum]float64
	outPos     int
	due        []func()
}

type scheduled struct {
	frame int64
	f     func()
}

func NewContext(sampleRate float64, lf logging.LoggerFactory) *Context {
	c := &Context{
		sampleRate: sampleRate,
		rand:       rng.New(),
		log:        lf.NewLogger("audio"),
		outPos:     Quantum,
	}
	c.dest = c.newDestination()
	return c
}

func (c *Context) SampleRate() float64 { return c.sampleRate }

// Rand is the context's noise source.
func (c *Context) Rand() *rng.Rand { return c.rand }

func (c *Context) Destination() *Destination { return c.dest }

// CurrentTime is the time in seconds of the next frame to be rendered.
func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now()
}

func (c *Context) now() float64 { return float64(c.frame) / c.sampleRate }

// Started reports how many sources have been started.
func (c *Context) Started() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

func (c *Context) State() State {
	c.resumeMu.Lock()
	defer c.resumeMu.Unlock()
	return c.state
}

// At runs f on the rendering goroutine once the clock reaches t. f runs
// without the graph lock held, so it may reconfigure the graph.
func (c *Context) At(t float64, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := int64(t * c.sampleRate)
	i := sort.Search(len(c.events), func(i int) bool { return c.events[i].frame > n })
	c.events = append(c.events, scheduled{})
	copy(c.events[i+1:], c.events[i:])
	c.events[i] = scheduled{n, f}
}

// Resume opens sink with the context as its renderer. Resuming a running
// context is a no-op.
func (c *Context) Resume(ctx context.Context, sink Sink) error {
	c.resumeMu.Lock()
	defer c.resumeMu.Unlock()
	switch c.state {
	case Running:
		return nil
	case Closed:
		return ErrClosed
	}
	if err := sink.Open(ctx, c); err != nil {
		return fmt.Errorf("audio: resume: %w", err)
	}
	c.sink = sink
	c.state = Running
	c.log.Infof("output running at %.0f Hz", c.sampleRate)
	return nil
}

func (c *Context) Close() error {
	c.resumeMu.Lock()
	defer c.resumeMu.Unlock()
	if c.state == Closed {
		return nil
	}
	c.state = Closed
	if c.sink == nil {
		return nil
	}
	err := c.sink.Close()
	c.sink = nil
	return err
}

// Process renders len(out)/2 interleaved stereo frames.
func (c *Context) Process(out []float32) {
	c.render(len(out)/ChannelCount, func(i int, l, r float64) {
		out[2*i] = float32(l)
		out[2*i+1] = float32(r)
	})
}

// Read renders float32 little-endian stereo frames into p. It never
// returns an error; the stream is endless.
func (c *Context) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	c.render(frames, func(i int, l, r float64) {
		putStereoF32LR(p, i, l, r)
	})
	return frames * bytesPerFrame, nil
}

func (c *Context) render(frames int, emit func(i int, l, r float64)) {
	c.mu.Lock()
	for i := 0; i < frames; i++ {
		if c.outPos == Quantum {
			c.renderQuantum()
		}
		emit(i, c.outL[c.outPos], c.outR[c.outPos])
		c.outPos++
	}
	due := c.due
	c.due = nil
	c.mu.Unlock()

	for _, f := range due {
		f()
	}
}

// renderQuantum pulls the destination and advances the clock. Must hold c.mu.
func (c *Context) renderQuantum() {
	out := c.pull(c.dest)
	l, r := out.Left(), out.Right()
	for i := range c.outL {
		c.outL[i] = softSat(l[i])
		c.outR[i] = softSat(r[i])
	}
	c.outPos = 0
	c.frame += Quantum
	c.quantum++

	for len(c.events) > 0 && c.events[0].frame <= c.frame {
		c.due = append(c.due, c.events[0].f)
		c.events = c.events[1:]
	}
}

// softSat is a cubic soft clipper, flat at ±2/3 beyond ±1.
func softSat(x float64) float64 {
	if x >= 1.0 {
		return 2.0 / 3.0
	}
	if x <= -1.0 {
		return -2.0 / 3.0
	}
	return x - x*x*x/3.0
}
