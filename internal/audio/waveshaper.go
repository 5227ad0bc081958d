package audio

// Oversample selects the waveshaper's internal rate multiplier.
type Oversample int

const (
	OversampleNone Oversample = 1
	Oversample2x   Oversample = 2
	Oversample4x   Oversample = 4
)

// WaveShaper maps each input sample through Curve, which spans inputs
// [-1,1]. With oversampling the input is linearly interpolated up, shaped,
// and box-filtered back down.
type WaveShaper struct {
	nodeBase
	curve      []float64
	oversample Oversample
	prev       [2]float64
}

func (c *Context) NewWaveShaper(curve []float64, mode Oversample) *WaveShaper {
	if mode != Oversample2x && mode != Oversample4x {
		mode = OversampleNone
	}
	w := &WaveShaper{curve: append([]float64(nil), curve...), oversample: mode}
	w.nodeBase = c.newBase(w)
	return w
}

func (w *WaveShaper) process(in, out *Bus) {
	out.silence(in.Channels)
	if len(w.curve) == 0 {
		out.accumulate(in)
		return
	}
	n := int(w.oversample)
	inv := 1 / float64(n)
	for c := 0; c < in.Channels; c++ {
		x, y := &in.ch[c], &out.ch[c]
		prev := w.prev[c]
		for i := range x {
			if n == 1 {
				y[i] = w.shape(x[i])
				continue
			}
			var acc float64
			for k := 1; k <= n; k++ {
				acc += w.shape(prev + (x[i]-prev)*float64(k)*inv)
			}
			y[i] = acc * inv
			prev = x[i]
		}
		w.prev[c] = prev
	}
}

func (w *WaveShaper) shape(x float64) float64 {
	last := len(w.curve) - 1
	v := float64(last) * (x + 1) / 2
	switch {
	case v <= 0:
		return w.curve[0]
	case v >= float64(last):
		return w.curve[last]
	}
	k := int(v)
	f := v - float64(k)
	return w.curve[k] + (w.curve[k+1]-w.curve[k])*f
}
