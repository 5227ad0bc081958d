package audio

import "murasaki/internal/config"

// Quantum is the number of frames a node renders per pull.
const Quantum = config.RenderQuantum

// Bus is one render quantum of mono or stereo audio.
type Bus struct {
	Channels int
	ch       [2][Quantum]float64
}

func (b *Bus) Channel(i int) []float64 {
	if i >= b.Channels && b.Channels == 1 {
		i = 0
	}
	return b.ch[i][:]
}

func (b *Bus) Left() []float64  { return b.Channel(0) }
func (b *Bus) Right() []float64 { return b.Channel(1) }

func (b *Bus) silence(channels int) {
	b.Channels = channels
	for c := 0; c < channels; c++ {
		clear(b.ch[c][:])
	}
}

// accumulate mixes src into b. Mono sources are copied to both sides of a
// stereo bus; stereo sources are averaged into a mono one.
func (b *Bus) accumulate(src *Bus) {
	switch {
	case src.Channels == b.Channels:
		for c := 0; c < b.Channels; c++ {
			d, s := &b.ch[c], &src.ch[c]
			for i := range d {
				d[i] += s[i]
			}
		}
	case src.Channels == 1:
		s := &src.ch[0]
		for i := range s {
			b.ch[0][i] += s[i]
			b.ch[1][i] += s[i]
		}
	default:
		l, r := &src.ch[0], &src.ch[1]
		for i := range l {
			b.ch[0][i] += 0.5 * (l[i] + r[i])
		}
	}
}

// mono returns the sample at i folded to a single channel.
func (b *Bus) mono(i int) float64 {
	if b.Channels == 2 {
		return 0.5 * (b.ch[0][i] + b.ch[1][i])
	}
	return b.ch[0][i]
}
