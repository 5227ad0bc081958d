package drone

import (
	"math"

	"murasaki/internal/audio"
	"murasaki/internal/rng"
)

// NoiseBuffer returns mono noise with a slowly varying grain: each sample
// is white noise scaled by a random factor in [0.65,1).
func NoiseBuffer(r *rng.Rand, sampleRate, seconds float64) *audio.Buffer {
	b := audio.NewBuffer(1, int(sampleRate*seconds), sampleRate)
	data := b.Channels[0]
	for i := range data {
		white := r.Signed()
		data[i] = white * (0.65 + r.Float64()*0.35)
	}
	return b
}

// ReverbImpulse returns a stereo impulse of decorrelated noise under a
// (1-t)^decay envelope.
func ReverbImpulse(r *rng.Rand, sampleRate, seconds, decay float64) *audio.Buffer {
	n := int(sampleRate * seconds)
	b := audio.NewBuffer(2, n, sampleRate)
	for _, data := range b.Channels {
		for i := range data {
			t := float64(i) / float64(n)
			env := math.Pow(1-t, decay)
			data[i] = r.Signed() * env * (0.58 + r.Float64()*0.42)
		}
	}
	return b
}

// DriveCurve returns the waveshaper transfer curve for the given amount.
func DriveCurve(amount float64, n int) []float64 {
	k := math.Max(1, amount)
	curve := make([]float64, n)
	for i := range curve {
		x := float64(i*2)/float64(n) - 1
		curve[i] = ((3 + k) * x * 20 * math.Pi) / (math.Pi + k*math.Abs(x))
	}
	return curve
}
