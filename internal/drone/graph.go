package drone

import (
	"fmt"

	"murasaki/internal/audio"
	"murasaki/internal/config"
)

// graph is the drone's node set. Sources feed per-source gains, which sum
// into core → drive → shaper → low-pass → band-pass → compressor → panner,
// then split dry and through the convolver into master.
type graph struct {
	ctx *audio.Context

	sub, bodyA, bodyB, air *audio.Oscillator
	noise                  *audio.BufferSource
	noiseFilter            *audio.Biquad

	subGain, bodyGain, airGain, noiseGain *audio.Gain
	core, drive                           *audio.Gain
	shaper                                *audio.WaveShaper
	lowpass, bandpass                     *audio.Biquad
	comp                                  *audio.Compressor
	panner                                *audio.StereoPanner
	reverb                                *audio.Convolver
	wet, dry, master                      *audio.Gain

	tremolo, shimmer, panLFO           *audio.Oscillator
	tremoloDepth, shimmerDepth, panAmt *audio.Gain
}

func buildGraph(ctx *audio.Context, partition int) (*graph, error) {
	g := &graph{ctx: ctx}
	r := ctx.Rand()
	sr := ctx.SampleRate()

	g.master = ctx.NewGain(0.001)
	g.core = ctx.NewGain(0.5)
	g.subGain = ctx.NewGain(0.34)
	g.bodyGain = ctx.NewGain(0.19)
	g.airGain = ctx.NewGain(0.03)
	g.noiseGain = ctx.NewGain(0.006)
	g.drive = ctx.NewGain(1.1)

	g.shaper = ctx.NewWaveShaper(DriveCurve(config.DriveAmount, config.DriveCurveLength), audio.Oversample4x)
	g.lowpass = ctx.NewBiquad(audio.Lowpass, 160, 0.9)
	g.bandpass = ctx.NewBiquad(audio.Bandpass, 75, 0.65)

	g.comp = ctx.NewCompressor()
	g.comp.Threshold.SetValue(-25)
	g.comp.Knee.SetValue(30)
	g.comp.Ratio.SetValue(9)
	g.comp.Attack.SetValue(0.008)
	g.comp.Release.SetValue(0.24)

	g.panner = ctx.NewStereoPanner(0)

	reverb, err := ctx.NewConvolver(partition)
	if err != nil {
		return nil, fmt.Errorf("drone: reverb: %w", err)
	}
	reverb.SetBuffer(ReverbImpulse(r, sr, config.ReverbSeconds, config.ReverbDecay), true)
	g.reverb = reverb
	g.wet = ctx.NewGain(0.24)
	g.dry = ctx.NewGain(0.8)

	g.sub = ctx.NewOscillator(audio.Sine, 34)
	g.bodyA = ctx.NewOscillator(audio.Triangle, 60)
	g.bodyB = ctx.NewOscillator(audio.Sawtooth, 61)
	g.bodyB.Detune.SetValue(2.5)
	g.air = ctx.NewOscillator(audio.Sawtooth, 112)
	g.air.Detune.SetValue(3)

	g.noiseFilter = ctx.NewBiquad(audio.Bandpass, 120, 0.8)
	g.noise = ctx.NewBufferSource(NoiseBuffer(r, sr, config.NoiseSeconds), true)

	g.tremolo = ctx.NewOscillator(audio.Sine, 2.8)
	g.tremoloDepth = ctx.NewGain(0.022)
	g.shimmer = ctx.NewOscillator(audio.Sine, 0.08)
	g.shimmerDepth = ctx.NewGain(32)
	g.panLFO = ctx.NewOscillator(audio.Sine, 0.045)
	g.panAmt = ctx.NewGain(0.11)

	g.sub.Connect(g.subGain)
	g.bodyA.Connect(g.bodyGain)
	g.bodyB.Connect(g.bodyGain)
	g.air.Connect(g.airGain)
	g.noise.Connect(g.noiseFilter)
	g.noiseFilter.Connect(g.noiseGain)

	for _, n := range []*audio.Gain{g.subGain, g.bodyGain, g.airGain, g.noiseGain} {
		n.Connect(g.core)
	}
	g.core.Connect(g.drive)
	g.drive.Connect(g.shaper)
	g.shaper.Connect(g.lowpass)
	g.lowpass.Connect(g.bandpass)
	g.bandpass.Connect(g.comp)
	g.comp.Connect(g.panner)

	g.panner.Connect(g.dry)
	g.panner.Connect(g.reverb)
	g.reverb.Connect(g.wet)
	g.dry.Connect(g.master)
	g.wet.Connect(g.master)
	g.master.Connect(ctx.Destination())

	g.tremolo.Connect(g.tremoloDepth)
	g.tremoloDepth.ConnectParam(g.core.Gain)
	g.shimmer.Connect(g.shimmerDepth)
	g.shimmerDepth.ConnectParam(g.lowpass.Frequency)
	g.panLFO.Connect(g.panAmt)
	g.panAmt.ConnectParam(g.panner.Pan)

	return g, nil
}

// start schedules every continuous source at t.
func (g *graph) start(t float64) error {
	for _, s := range []interface{ Start(float64) error }{
		g.sub, g.bodyA, g.bodyB, g.air, g.noise, g.tremolo, g.shimmer, g.panLFO,
	} {
		if err := s.Start(t); err != nil {
			return fmt.Errorf("drone: start sources: %w", err)
		}
	}
	return nil
}

// target pairs a profile-controlled param with its value.
type target struct {
	param *audio.Param
	value float64
}

// targets lists every profile-controlled param and its value under p.
func (g *graph) targets(p Profile) []target {
	return []target{
		{g.master.Gain, p.Master},
		{g.sub.Frequency, p.SubFreq},
		{g.bodyA.Frequency, p.BodyFreq},
		{g.bodyB.Frequency, p.BodyFreq * 1.02},
		{g.bodyB.Detune, p.Detune},
		{g.lowpass.Frequency, p.Lowpass},
		{g.bandpass.Frequency, p.Bandpass},
		{g.noiseGain.Gain, p.Noise},
		{g.tremolo.Frequency, p.TremoloHz},
		{g.tremoloDepth.Gain, p.TremoloDepth},
		{g.shimmer.Frequency, p.ShimmerHz},
		{g.shimmerDepth.Gain, p.ShimmerDepth},
		{g.drive.Gain, p.Drive},
		{g.air.Frequency, p.AirFreq},
		{g.airGain.Gain, p.AirGain},
		{g.wet.Gain, p.ReverbWet},
		{g.dry.Gain, p.ReverbDry},
		{g.panLFO.Frequency, p.PanHz},
		{g.panAmt.Gain, p.PanDepth},
	}
}
