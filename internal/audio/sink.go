package audio

import (
	"context"
	"errors"
	"io"
	"math"

	"murasaki/internal/config"
)

const (
	ChannelCount  = config.ChannelCount
	bytesPerFrame = 4 * ChannelCount
)

// ErrNoPlatform reports that no audio output is available on this machine
// or in this configuration.
var ErrNoPlatform = errors.New("audio: no output platform")

// Renderer is what a Sink pulls audio from. *Context implements it.
type Renderer interface {
	io.Reader
	Process(out []float32)
	SampleRate() float64
}

// Sink is an output device. Open blocks until the device is ready to
// play or ctx is done.
type Sink interface {
	Open(ctx context.Context, r Renderer) error
	Close() error
}

// putStereoF32LR writes independent left/right samples as float32 LE at frame i.
func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}
