package drone

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pion/logging"

	"murasaki/internal/audio"
	"murasaki/internal/config"
	"murasaki/internal/technique"
)

// State is the engine lifecycle: Uninitialized until the graph exists,
// Ready once built, Enabled once the output device runs.
type State int

const (
	Uninitialized State = iota
	Ready
	Enabled
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Enabled:
		return "enabled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Hint texts shown in the status line.
const (
	HintLocked  = "Tap or press any key once for deep procedural audio."
	HintEnabled = "Epic procedural drone audio active."
)

// Status is a snapshot of the engine.
type Status struct {
	State      State
	Label      technique.Label
	Impacts    int
	Transients int // impact chains still connected
	Hint       string
}

// Options configure an Engine. A nil Sink means no audio platform: the
// engine stays silent and Unlock reports false.
type Options struct {
	Sink            audio.Sink
	SampleRate      float64
	ReverbPartition int
}

// Engine owns the drone graph and applies technique changes to it. All
// methods are safe for concurrent use.
type Engine struct {
	opts Options
	lf   logging.LoggerFactory
	log  logging.LeveledLogger

	unlockMu sync.Mutex

	mu         sync.Mutex
	state      State
	label      technique.Label
	ctx        *audio.Context
	g          *graph
	impacts    int
	transients int
}

func New(opts Options, lf logging.LoggerFactory) *Engine {
	if opts.SampleRate <= 0 {
		opts.SampleRate = config.SampleRate
	}
	if opts.ReverbPartition <= 0 {
		opts.ReverbPartition = config.ReverbPartitionFrame
	}
	return &Engine{
		opts:  opts,
		lf:    lf,
		log:   lf.NewLogger("drone"),
		label: technique.Neutral,
	}
}

// EnsureGraph builds the signal graph once and schedules its sources on the
// context's stopped clock. Without an audio platform it does nothing.
func (e *Engine) EnsureGraph() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ensureGraphLocked()
}

func (e *Engine) ensureGraphLocked() error {
	if e.state != Uninitialized || e.opts.Sink == nil {
		return nil
	}
	ctx := audio.NewContext(e.opts.SampleRate, e.lf)
	g, err := buildGraph(ctx, e.opts.ReverbPartition)
	if err != nil {
		return err
	}
	if err := g.start(ctx.CurrentTime()); err != nil {
		return err
	}
	e.ctx, e.g = ctx, g
	e.state = Ready
	e.log.Debug("signal graph built")
	e.applyLocked(e.label, true)
	return nil
}

// SetTechnique remembers l and, once the graph exists, glides every
// profile-controlled param to l's profile. A non-immediate change to a
// non-neutral technique on an enabled engine also fires an impact.
func (e *Engine) SetTechnique(l technique.Label, immediate bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.label = l
	if e.g == nil {
		return
	}
	e.applyLocked(l, immediate)
}

func (e *Engine) applyLocked(l technique.Label, immediate bool) {
	p := ProfileFor(l)
	ramp := config.RampTransition
	if immediate {
		ramp = config.RampImmediate
	}
	now := e.ctx.CurrentTime()
	for _, t := range e.g.targets(p) {
		t.param.CancelAndHoldAtTime(now)
		t.param.LinearRampToValueAtTime(t.value, now+ramp)
	}
	if !immediate && l != technique.Neutral && e.state == Enabled {
		e.impactLocked(p, now)
	}
}

// Unlock builds the graph if needed, starts the output device and enables
// the engine. It returns false with a nil error when there is no audio
// platform. Concurrent and repeated calls open the device once.
func (e *Engine) Unlock(ctx context.Context) (bool, error) {
	e.unlockMu.Lock()
	defer e.unlockMu.Unlock()

	e.mu.Lock()
	if err := e.ensureGraphLocked(); err != nil {
		e.mu.Unlock()
		return false, fmt.Errorf("drone: unlock: %w", err)
	}
	state, ac := e.state, e.ctx
	e.mu.Unlock()

	if ac == nil {
		return false, nil
	}
	if state == Enabled {
		return true, nil
	}
	if err := ac.Resume(ctx, e.opts.Sink); err != nil {
		if errors.Is(err, audio.ErrNoPlatform) {
			e.log.Warnf("audio unavailable: %v", err)
			return false, nil
		}
		return false, fmt.Errorf("drone: unlock: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Enabled
	e.log.Info("audio enabled")
	e.applyLocked(e.label, true)
	return true, nil
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	hint := HintLocked
	if e.state == Enabled {
		hint = HintEnabled
	}
	return Status{
		State:      e.state,
		Label:      e.label,
		Impacts:    e.impacts,
		Transients: e.transients,
		Hint:       hint,
	}
}

// Context returns the audio context, or nil before the graph is built.
func (e *Engine) Context() *audio.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx
}

// Close stops the output device.
func (e *Engine) Close() error {
	e.mu.Lock()
	ac := e.ctx
	e.mu.Unlock()
	if ac == nil {
		return nil
	}
	return ac.Close()
}
