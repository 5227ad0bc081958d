package audio

import (
	"fmt"
	"math"
)

type FilterType int

const (
	Lowpass FilterType = iota
	Highpass
	Bandpass
	Notch
)

func (t FilterType) String() string {
	switch t {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Notch:
		return "notch"
	}
	return fmt.Sprintf("FilterType(%d)", int(t))
}

// Biquad is a second-order IIR filter. For Lowpass and Highpass, Q is the
// resonance peak in dB; for Bandpass and Notch it is the quality factor and
// the passband peaks at unity gain.
type Biquad struct {
	nodeBase
	Frequency *Param
	Q         *Param
	kind      FilterType

	lastF, lastQ       float64
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

func (c *Context) NewBiquad(kind FilterType, freq, q float64) *Biquad {
	f := &Biquad{
		kind:      kind,
		Frequency: c.newParam("frequency", freq, 0, c.sampleRate/2),
		Q:         c.newParam("Q", q, 0, 0),
		lastF:     math.NaN(),
	}
	f.nodeBase = c.newBase(f, f.Frequency, f.Q)
	return f
}

func (f *Biquad) Type() FilterType { return f.kind }

func (f *Biquad) process(in, out *Bus) {
	out.silence(in.Channels)
	for i := 0; i < Quantum; i++ {
		if fr, q := f.Frequency.at(i), f.Q.at(i); fr != f.lastF || q != f.lastQ {
			f.setCoefficients(fr, q)
		}
		for c := 0; c < in.Channels; c++ {
			x := in.ch[c][i]
			y := f.b0*x + f.b1*f.x1[c] + f.b2*f.x2[c] - f.a1*f.y1[c] - f.a2*f.y2[c]
			f.x2[c], f.x1[c] = f.x1[c], x
			f.y2[c], f.y1[c] = f.y1[c], y
			out.ch[c][i] = y
		}
	}
	for c := 0; c < 2; c++ {
		if math.Abs(f.y1[c]) < 1e-30 && math.Abs(f.y2[c]) < 1e-30 {
			f.y1[c], f.y2[c] = 0, 0
		}
	}
}

func (f *Biquad) setCoefficients(freq, q float64) {
	f.lastF, f.lastQ = freq, q
	nyq := f.ctx.sampleRate / 2
	freq = math.Min(math.Max(freq, 1e-3), nyq*0.9999)
	w0 := 2 * math.Pi * freq / f.ctx.sampleRate
	cw, sw := math.Cos(w0), math.Sin(w0)

	var b0, b1, b2, a0, a1, a2 float64
	switch f.kind {
	case Lowpass, Highpass:
		alpha := sw / (2 * math.Pow(10, q/20))
		a0, a1, a2 = 1+alpha, -2*cw, 1-alpha
		if f.kind == Lowpass {
			b0, b1, b2 = (1-cw)/2, 1-cw, (1-cw)/2
		} else {
			b0, b1, b2 = (1+cw)/2, -(1 + cw), (1+cw)/2
		}
	case Bandpass, Notch:
		alpha := sw / (2 * math.Max(q, 1e-4))
		a0, a1, a2 = 1+alpha, -2*cw, 1-alpha
		if f.kind == Bandpass {
			b0, b1, b2 = alpha, 0, -alpha
		} else {
			b0, b1, b2 = 1, -2*cw, 1
		}
	}
	f.b0, f.b1, f.b2 = b0/a0, b1/a0, b2/a0
	f.a1, f.a2 = a1/a0, a2/a0
}

// Response returns the filter's magnitude response at freq for the
// current coefficients, or for the param values if nothing has rendered.
func (f *Biquad) Response(freq float64) float64 {
	f.ctx.mu.Lock()
	defer f.ctx.mu.Unlock()
	if math.IsNaN(f.lastF) {
		f.setCoefficients(f.Frequency.valueAt(f.ctx.now()), f.Q.valueAt(f.ctx.now()))
	}
	w := 2 * math.Pi * freq / f.ctx.sampleRate
	z1 := complex(math.Cos(-w), math.Sin(-w))
	z2 := z1 * z1
	num := complex(f.b0, 0) + complex(f.b1, 0)*z1 + complex(f.b2, 0)*z2
	den := 1 + complex(f.a1, 0)*z1 + complex(f.a2, 0)*z2
	return cmplxAbs(num / den)
}

func cmplxAbs(z complex128) float64 { return math.Hypot(real(z), imag(z)) }
