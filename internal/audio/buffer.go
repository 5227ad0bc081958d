package audio

import "math"

// Buffer is sampled audio with one slice per channel.
type Buffer struct {
	SampleRate float64
	Channels   [][]float64
}

func NewBuffer(channels, frames int, sampleRate float64) *Buffer {
	b := &Buffer{SampleRate: sampleRate, Channels: make([][]float64, channels)}
	for c := range b.Channels {
		b.Channels[c] = make([]float64, frames)
	}
	return b
}

func (b *Buffer) Len() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

func (b *Buffer) Duration() float64 {
	return float64(b.Len()) / b.SampleRate
}

// Peak returns the largest absolute sample value.
func (b *Buffer) Peak() float64 {
	var p float64
	for _, ch := range b.Channels {
		for _, v := range ch {
			p = math.Max(p, math.Abs(v))
		}
	}
	return p
}
