package audio

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// RampKind selects how a Ramp moves a parameter.
type RampKind int

const (
	Step RampKind = iota
	Linear
	Exponential
	Target
)

func (k RampKind) String() string {
	switch k {
	case Step:
		return "step"
	case Linear:
		return "linear"
	case Exponential:
		return "exponential"
	case Target:
		return "target"
	}
	return fmt.Sprintf("RampKind(%d)", int(k))
}

// Ramp is one scheduled automation segment. Step, Linear and Exponential
// segments reach Value at End; a Target segment approaches Value from Start
// with TimeConstant until the next segment begins.
type Ramp struct {
	Kind         RampKind
	Start, End   float64
	Value        float64
	TimeConstant float64
	From         float64
}

var (
	ErrZeroTarget   = errors.New("audio: exponential ramp needs a non-zero target")
	ErrTimeConstant = errors.New("audio: time constant must be positive")
)

// Param is an automatable value. Scheduled ramps are evaluated per sample
// and any connected modulation nodes are summed on top.
type Param struct {
	ctx      *Context
	name     string
	base     float64
	min, max float64
	ramps    []Ramp
	mods     []Node
	vals     [Quantum]float64
}

func (c *Context) newParam(name string, value, min, max float64) *Param {
	p := &Param{ctx: c, name: name, base: value, min: min, max: max}
	for i := range p.vals {
		p.vals[i] = value
	}
	return p
}

func (p *Param) Name() string { return p.name }

// Value returns the automation value at the context's current time,
// excluding modulation.
func (p *Param) Value() float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	return p.valueAt(p.ctx.now())
}

// Ramps returns a copy of the pending automation.
func (p *Param) Ramps() []Ramp {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	return append([]Ramp(nil), p.ramps...)
}

// SetValue drops all automation and holds v.
func (p *Param) SetValue(v float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.ramps = p.ramps[:0]
	p.base = v
}

func (p *Param) SetValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.insert(Ramp{Kind: Step, Start: t, End: t, Value: v})
}

// LinearRampToValueAtTime ramps from the end of the previous segment (or
// now, with nothing scheduled) to v at t.
func (p *Param) LinearRampToValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.insertRamp(Linear, v, t)
}

func (p *Param) ExponentialRampToValueAtTime(v, t float64) error {
	if v == 0 {
		return ErrZeroTarget
	}
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.insertRamp(Exponential, v, t)
	return nil
}

// SetTargetAtTime starts an exponential approach toward v at t.
func (p *Param) SetTargetAtTime(v, t, tau float64) error {
	if !(tau > 0) {
		return fmt.Errorf("%w: %v", ErrTimeConstant, tau)
	}
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.insert(Ramp{Kind: Target, Start: t, End: math.Inf(1), Value: v, TimeConstant: tau})
	return nil
}

// CancelAndHoldAtTime removes every segment that has not finished by t and
// holds the value the parameter had at t.
func (p *Param) CancelAndHoldAtTime(t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	held := p.valueAt(t)
	kept := p.ramps[:0]
	for _, r := range p.ramps {
		if r.Start < t && (r.Kind == Step || r.Kind == Target || r.End <= t) {
			kept = append(kept, r)
		}
	}
	p.ramps = kept
	p.insert(Ramp{Kind: Step, Start: t, End: t, Value: held})
}

// RampTo cancels pending automation and ramps linearly to v over d seconds
// from now.
func (p *Param) RampTo(v, d float64) {
	now := p.ctx.CurrentTime()
	p.CancelAndHoldAtTime(now)
	p.LinearRampToValueAtTime(v, now+d)
}

func (p *Param) insertRamp(kind RampKind, v, t float64) {
	start := p.ctx.now()
	if n := len(p.ramps); n > 0 {
		last := p.ramps[n-1]
		start = last.End
		if math.IsInf(start, 1) {
			start = math.Max(last.Start, p.ctx.now())
		}
	}
	if t < start {
		t = start
	}
	p.insert(Ramp{Kind: kind, Start: start, End: t, Value: v})
}

// insert keeps ramps ordered by start time (ties stay in call order) and
// relinks each segment's starting value to whatever precedes it.
func (p *Param) insert(r Ramp) {
	i := sort.Search(len(p.ramps), func(i int) bool { return p.ramps[i].Start > r.Start })
	p.ramps = append(p.ramps, Ramp{})
	copy(p.ramps[i+1:], p.ramps[i:])
	p.ramps[i] = r
	for j := i; j < len(p.ramps); j++ {
		p.ramps[j].From = p.chainValue(j, p.ramps[j].Start)
	}
}

// chainValue evaluates the segments before index j at time t.
func (p *Param) chainValue(j int, t float64) float64 {
	if j == 0 {
		return p.base
	}
	return p.ramps[j-1].at(t)
}

func (r Ramp) at(t float64) float64 {
	switch r.Kind {
	case Target:
		if t <= r.Start {
			return r.From
		}
		return r.Value + (r.From-r.Value)*math.Exp(-(t-r.Start)/r.TimeConstant)
	case Step:
		return r.Value
	}
	if t >= r.End {
		return r.Value
	}
	if t <= r.Start {
		return r.From
	}
	f := (t - r.Start) / (r.End - r.Start)
	if r.Kind == Linear {
		return r.From + (r.Value-r.From)*f
	}
	if r.From == 0 || (r.From > 0) != (r.Value > 0) {
		return r.From
	}
	return r.From * math.Pow(r.Value/r.From, f)
}

func (p *Param) valueAt(t float64) float64 {
	i := sort.Search(len(p.ramps), func(i int) bool { return p.ramps[i].Start > t })
	if i == 0 {
		return p.base
	}
	return p.ramps[i-1].at(t)
}

// prune folds segments that can no longer affect times from t on.
func (p *Param) prune(t float64) {
	n := 0
	for n+1 < len(p.ramps) && p.ramps[n+1].Start <= t {
		n++
	}
	if n > 0 {
		p.base = p.ramps[n-1].at(p.ramps[n].Start)
		p.ramps = append(p.ramps[:0], p.ramps[n:]...)
	}
	if len(p.ramps) == 1 {
		r := p.ramps[0]
		if r.Kind != Target && r.End <= t {
			p.base = r.Value
			p.ramps = p.ramps[:0]
		}
	}
}

// compute fills vals for the current quantum. Must hold ctx.mu.
func (p *Param) compute() {
	c := p.ctx
	t0 := c.now()
	p.prune(t0)
	if len(p.ramps) == 0 {
		for i := range p.vals {
			p.vals[i] = p.base
		}
	} else {
		dt := 1 / c.sampleRate
		for i := range p.vals {
			p.vals[i] = p.valueAt(t0 + float64(i)*dt)
		}
	}
	for _, m := range p.mods {
		b := c.pull(m)
		for i := range p.vals {
			p.vals[i] += b.mono(i)
		}
	}
	if p.min < p.max {
		for i, v := range p.vals {
			p.vals[i] = min(max(v, p.min), p.max)
		}
	}
}

// at returns the computed value for frame i of the current quantum.
func (p *Param) at(i int) float64 { return p.vals[i] }
