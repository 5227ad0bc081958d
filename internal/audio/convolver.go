package audio

import (
	"fmt"
	"math"

	"github.com/ktye/fft"
)

// Convolver is a uniformly partitioned overlap-save FFT convolution
// reverb. Input is up-mixed to stereo and channel c is convolved with
// impulse channel c (or the only channel of a mono impulse). Output lags
// input by one partition.
type Convolver struct {
	nodeBase
	n     int
	fft   fft.FFT
	scale float64

	parts [2][][]complex128 // impulse spectra, one per partition
	fdl   [2][][]complex128 // input spectra, newest at head
	head  int
	prev  [2][]float64
	cur   [2][]float64
	ready [2][]float64
	fill  int
	work  []complex128
	acc   []complex128
}

// NewConvolver creates a convolver with the given partition length, which
// must be a power of two.
func (c *Context) NewConvolver(partition int) (*Convolver, error) {
	if partition <= 0 || partition&(partition-1) != 0 {
		return nil, fmt.Errorf("audio: convolver partition %d is not a power of two", partition)
	}
	f, err := fft.New(2 * partition)
	if err != nil {
		return nil, fmt.Errorf("audio: convolver fft: %w", err)
	}
	v := &Convolver{
		n:    partition,
		fft:  f,
		work: make([]complex128, 2*partition),
		acc:  make([]complex128, 2*partition),
	}
	for ch := 0; ch < 2; ch++ {
		v.prev[ch] = make([]float64, partition)
		v.cur[ch] = make([]float64, partition)
		v.ready[ch] = make([]float64, partition)
	}

	// Calibrate the inverse transform's scale with a unit impulse.
	v.work[0] = 1
	spec := v.fft.Transform(v.work)
	back := v.fft.Inverse(spec)
	v.scale = 1 / real(back[0])
	clear(v.work)

	v.nodeBase = c.newBase(v)
	return v, nil
}

// Latency is the delay in seconds between input and output.
func (v *Convolver) Latency() float64 {
	return float64(v.n) / v.ctx.sampleRate
}

// SetBuffer installs an impulse response. With normalize set the impulse
// is scaled by its RMS power, as Web Audio convolvers do.
func (v *Convolver) SetBuffer(b *Buffer, normalize bool) {
	irCh := min(len(b.Channels), 2)
	scale := 1.0
	if normalize {
		scale = impulseScale(b, v.ctx.sampleRate)
	}
	frames := b.Len()
	count := max((frames+v.n-1)/v.n, 1)

	var parts [2][][]complex128
	for ch := 0; ch < irCh; ch++ {
		parts[ch] = make([][]complex128, count)
		for k := range parts[ch] {
			buf := make([]complex128, 2*v.n)
			for i := 0; i < v.n; i++ {
				j := k*v.n + i
				if j >= frames {
					break
				}
				buf[i] = complex(b.Channels[ch][j]*scale, 0)
			}
			parts[ch][k] = append([]complex128(nil), v.fft.Transform(buf)...)
		}
	}
	if irCh == 1 {
		parts[1] = parts[0]
	}

	v.ctx.mu.Lock()
	defer v.ctx.mu.Unlock()
	v.parts = parts
	for ch := 0; ch < 2; ch++ {
		v.fdl[ch] = make([][]complex128, count)
		for k := range v.fdl[ch] {
			v.fdl[ch][k] = make([]complex128, 2*v.n)
		}
	}
	v.head = 0
}

// impulseScale mirrors the Web Audio normalization: inverse RMS power,
// calibrated to -58 dB and to 44.1 kHz.
func impulseScale(b *Buffer, sampleRate float64) float64 {
	const (
		gainCalibration = -58
		calibrationRate = 44100
		minPower        = 0.000125
	)
	var power float64
	for _, ch := range b.Channels {
		for _, s := range ch {
			power += s * s
		}
	}
	power = math.Sqrt(power / float64(max(len(b.Channels)*b.Len(), 1)))
	if math.IsNaN(power) || math.IsInf(power, 0) || power < minPower {
		power = minPower
	}
	scale := 1 / power
	scale *= math.Pow(10, gainCalibration*0.05)
	if sampleRate > 0 {
		scale *= calibrationRate / sampleRate
	}
	return scale
}

func (v *Convolver) process(in, out *Bus) {
	out.silence(2)
	if v.parts[0] == nil {
		return
	}
	for i := 0; i < Quantum; i++ {
		for ch := 0; ch < 2; ch++ {
			out.ch[ch][i] = v.ready[ch][v.fill]
			v.cur[ch][v.fill] = in.Channel(ch)[i]
		}
		v.fill++
		if v.fill == v.n {
			v.block()
			v.fill = 0
		}
	}
}

// block convolves the completed input partition and refills ready.
func (v *Convolver) block() {
	count := len(v.parts[0])
	v.head = (v.head + count - 1) % count
	for ch := 0; ch < 2; ch++ {
		for i := 0; i < v.n; i++ {
			v.work[i] = complex(v.prev[ch][i], 0)
			v.work[v.n+i] = complex(v.cur[ch][i], 0)
		}
		copy(v.fdl[ch][v.head], v.fft.Transform(v.work))

		clear(v.acc)
		for k, h := range v.parts[ch] {
			x := v.fdl[ch][(v.head+k)%count]
			for j := range v.acc {
				v.acc[j] += x[j] * h[j]
			}
		}
		copy(v.work, v.acc)
		y := v.fft.Inverse(v.work)
		for i := 0; i < v.n; i++ {
			v.ready[ch][i] = real(y[v.n+i]) * v.scale
		}
		v.prev[ch], v.cur[ch] = v.cur[ch], v.prev[ch]
	}
}
