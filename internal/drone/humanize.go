package drone

import (
	"context"
	"math"
	"time"

	"murasaki/internal/config"
)

// Smoothing time constants for the drift targets, in seconds.
const (
	detuneTau   = 0.7
	bandpassTau = 0.85
	lowpassTau  = 1.0
	wetTau      = 1.2
)

// drift is one set of humanized targets.
type drift struct {
	Detune   float64
	Bandpass float64
	Lowpass  float64
	Wet      float64
}

// jitter draws drift targets around p using rnd, a source of uniform
// values in [0,1).
func jitter(p Profile, rnd func() float64) drift {
	return drift{
		Detune:   p.Detune + (rnd()-0.5)*7,
		Bandpass: math.Max(46, p.Bandpass*(0.88+rnd()*0.24)),
		Lowpass:  math.Max(100, p.Lowpass*(0.9+rnd()*0.2)),
		Wet:      math.Max(0.12, p.ReverbWet*(0.92+rnd()*0.16)),
	}
}

// Humanize nudges the body detune, both filters and the reverb send toward
// fresh random targets. It does nothing unless the engine is enabled.
func (e *Engine) Humanize() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Enabled {
		return
	}
	d := jitter(ProfileFor(e.label), e.ctx.Rand().Float64)
	now := e.ctx.CurrentTime()
	g := e.g
	e.check(g.bodyB.Detune.SetTargetAtTime(d.Detune, now, detuneTau))
	e.check(g.bandpass.Frequency.SetTargetAtTime(d.Bandpass, now, bandpassTau))
	e.check(g.lowpass.Frequency.SetTargetAtTime(d.Lowpass, now, lowpassTau))
	e.check(g.wet.Gain.SetTargetAtTime(d.Wet, now, wetTau))
}

// RunHumanizer calls Humanize on a fixed period until ctx is done.
func (e *Engine) RunHumanizer(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(config.HumanizeEvery * float64(time.Second)))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Humanize()
		}
	}
}
