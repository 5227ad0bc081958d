package audio

import "math"

// StereoPanner places its input with an equal-power law. Pan runs from -1
// (left) to 1 (right).
type StereoPanner struct {
	nodeBase
	Pan *Param
}

func (c *Context) NewStereoPanner(pan float64) *StereoPanner {
	p := &StereoPanner{Pan: c.newParam("pan", pan, -1, 1)}
	p.nodeBase = c.newBase(p, p.Pan)
	return p
}

func (p *StereoPanner) process(in, out *Bus) {
	out.silence(2)
	l, r := &out.ch[0], &out.ch[1]
	for i := 0; i < Quantum; i++ {
		pan := p.Pan.at(i)
		if in.Channels == 1 {
			x := (pan + 1) / 2
			v := in.ch[0][i]
			l[i] = v * math.Cos(x*math.Pi/2)
			r[i] = v * math.Sin(x*math.Pi/2)
			continue
		}
		inL, inR := in.ch[0][i], in.ch[1][i]
		if pan <= 0 {
			x := pan + 1
			l[i] = inL + inR*math.Cos(x*math.Pi/2)
			r[i] = inR * math.Sin(x*math.Pi/2)
		} else {
			x := pan
			l[i] = inL * math.Cos(x*math.Pi/2)
			r[i] = inR + inL*math.Sin(x*math.Pi/2)
		}
	}
}
