package audio

import (
	"fmt"
	"math"
)

type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	}
	return fmt.Sprintf("Waveform(%d)", int(w))
}

// Oscillator is a band-limited periodic source. Frequency is in Hz and
// Detune in cents; both accept audio-rate modulation.
type Oscillator struct {
	nodeBase
	source
	Frequency *Param
	Detune    *Param
	wave      Waveform
	phase     float64
}

func (c *Context) NewOscillator(w Waveform, freq float64) *Oscillator {
	nyq := c.sampleRate / 2
	o := &Oscillator{
		wave:      w,
		Frequency: c.newParam("frequency", freq, -nyq, nyq),
		Detune:    c.newParam("detune", 0, 0, 0),
	}
	o.nodeBase = c.newBase(o, o.Frequency, o.Detune)
	o.source.init(c)
	return o
}

func (o *Oscillator) process(_, out *Bus) {
	out.silence(1)
	from, to := o.window()
	y := out.Left()
	inv := 1 / o.ctx.sampleRate
	for i := from; i < to; i++ {
		f := o.Frequency.at(i)
		if d := o.Detune.at(i); d != 0 {
			f *= math.Exp2(d / 1200)
		}
		dt := math.Abs(f) * inv
		y[i] = o.sample(o.phase, dt)
		o.phase += f * inv
		o.phase -= math.Floor(o.phase)
	}
}

func (o *Oscillator) sample(p, dt float64) float64 {
	switch o.wave {
	case Square:
		v := 1.0
		if p >= 0.5 {
			v = -1
		}
		v += polyBLEP(p, dt)
		v -= polyBLEP(frac(p+0.5), dt)
		return v
	case Sawtooth:
		q := frac(p + 0.5)
		return 2*q - 1 - polyBLEP(q, dt)
	case Triangle:
		return 1 - 4*math.Abs(frac(p+0.25)-0.5)
	}
	return math.Sin(2 * math.Pi * p)
}

// polyBLEP is the two-sample polynomial correction for a unit step at
// phase 0.
func polyBLEP(t, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	switch {
	case t < dt:
		t /= dt
		return t + t - t*t - 1
	case t > 1-dt:
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}

func frac(x float64) float64 { return x - math.Floor(x) }
