package audio

import "math"

// Compressor is a stereo-linked peak compressor with a soft knee and
// automatic makeup gain. Its params are read once per quantum.
type Compressor struct {
	nodeBase
	Threshold *Param // dB
	Knee      *Param // dB
	Ratio     *Param
	Attack    *Param // seconds
	Release   *Param // seconds

	reduction float64 // current gain reduction in dB, >= 0
}

func (c *Context) NewCompressor() *Compressor {
	n := &Compressor{
		Threshold: c.newParam("threshold", -24, -100, 0),
		Knee:      c.newParam("knee", 30, 0, 40),
		Ratio:     c.newParam("ratio", 12, 1, 20),
		Attack:    c.newParam("attack", 0.003, 0, 1),
		Release:   c.newParam("release", 0.25, 0, 1),
	}
	n.nodeBase = c.newBase(n, n.Threshold, n.Knee, n.Ratio, n.Attack, n.Release)
	return n
}

// Reduction returns the current gain reduction in dB.
func (n *Compressor) Reduction() float64 {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	return n.reduction
}

// staticCurve returns the steady-state reduction in dB for a level in dB.
func staticCurve(level, threshold, knee, ratio float64) float64 {
	slope := 1 - 1/ratio
	over := level - threshold
	switch {
	case 2*over < -knee:
		return 0
	case knee > 0 && 2*math.Abs(over) <= knee:
		d := over + knee/2
		return slope * d * d / (2 * knee)
	}
	return slope * over
}

func timeCoeff(seconds, sampleRate float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return math.Exp(-1 / (seconds * sampleRate))
}

func (n *Compressor) process(in, out *Bus) {
	out.silence(in.Channels)
	sr := n.ctx.sampleRate
	threshold, knee, ratio := n.Threshold.at(0), n.Knee.at(0), n.Ratio.at(0)
	att, rel := timeCoeff(n.Attack.at(0), sr), timeCoeff(n.Release.at(0), sr)
	makeup := math.Pow(math.Pow(10, staticCurve(0, threshold, knee, ratio)/20), 0.6)

	for i := 0; i < Quantum; i++ {
		peak := math.Abs(in.ch[0][i])
		if in.Channels == 2 {
			peak = math.Max(peak, math.Abs(in.ch[1][i]))
		}
		level := -120.0
		if peak > 1e-6 {
			level = 20 * math.Log10(peak)
		}
		want := staticCurve(level, threshold, knee, ratio)
		coeff := rel
		if want > n.reduction {
			coeff = att
		}
		n.reduction = want + (n.reduction-want)*coeff
		g := math.Pow(10, -n.reduction/20) * makeup
		for c := 0; c < in.Channels; c++ {
			out.ch[c][i] = in.ch[c][i] * g
		}
	}
}
