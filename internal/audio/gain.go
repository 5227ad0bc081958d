package audio

// Gain multiplies its input by the Gain param.
type Gain struct {
	nodeBase
	Gain *Param
}

func (c *Context) NewGain(g float64) *Gain {
	n := &Gain{Gain: c.newParam("gain", g, 0, 0)}
	n.nodeBase = c.newBase(n, n.Gain)
	return n
}

func (g *Gain) process(in, out *Bus) {
	out.silence(in.Channels)
	for c := 0; c < in.Channels; c++ {
		x, y := &in.ch[c], &out.ch[c]
		for i := range y {
			y[i] = x[i] * g.Gain.at(i)
		}
	}
}
