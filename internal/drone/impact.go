package drone

import (
	"math"

	"murasaki/internal/audio"
)

// Impact envelope timing in seconds.
const (
	boomAttack   = 0.03
	boomDecay    = 0.78
	boomStop     = 0.82
	boomSweep    = 0.7
	burstAttack  = 0.012
	burstDecay   = 0.28
	burstStop    = 0.3
	burstSeconds = 0.28
	silentGain   = 0.0001
)

// impactLocked fires the one-shot boom and noise burst for p at now. Both
// chains disconnect themselves once their sources have stopped.
func (e *Engine) impactLocked(p Profile, now float64) {
	ac, g := e.ctx, e.g

	boom := ac.NewOscillator(audio.Triangle, math.Max(35, p.SubFreq*2.4))
	boom.Frequency.SetValueAtTime(math.Max(35, p.SubFreq*2.4), now)
	e.check(boom.Frequency.ExponentialRampToValueAtTime(math.Max(22, p.SubFreq*0.8), now+boomSweep))
	boomFilter := ac.NewBiquad(audio.Lowpass, math.Max(130, p.Lowpass*1.25), 0.7)
	boomGain := ac.NewGain(silentGain)
	envelope(e, boomGain.Gain, now, p.ImpactGain, boomAttack, boomDecay)
	boom.Connect(boomFilter)
	boomFilter.Connect(boomGain)
	boomGain.Connect(g.master)
	e.check(boom.Start(now))
	boom.Stop(now + boomStop)

	burst := ac.NewBufferSource(NoiseBuffer(ac.Rand(), ac.SampleRate(), burstSeconds), false)
	burstFilter := ac.NewBiquad(audio.Bandpass, math.Max(90, p.Bandpass*1.7), 1.35)
	burstGain := ac.NewGain(silentGain)
	envelope(e, burstGain.Gain, now, p.ImpactGain*0.42, burstAttack, burstDecay)
	burst.Connect(burstFilter)
	burstFilter.Connect(burstGain)
	burstGain.Connect(g.reverb)
	e.check(burst.Start(now))
	burst.Stop(now + burstStop)

	ac.At(now+boomStop, func() { e.release(boom, boomFilter, boomGain) })
	ac.At(now+burstStop, func() { e.release(burst, burstFilter, burstGain) })
	e.impacts++
	e.transients += 2
}

// release disconnects a finished transient chain. It runs on the render
// goroutine.
func (e *Engine) release(nodes ...interface{ Disconnect() }) {
	for _, n := range nodes {
		n.Disconnect()
	}
	e.mu.Lock()
	e.transients--
	e.mu.Unlock()
}

// envelope schedules silent → peak → silent exponential segments.
func envelope(e *Engine, p *audio.Param, now, peak, attack, decay float64) {
	p.SetValueAtTime(silentGain, now)
	e.check(p.ExponentialRampToValueAtTime(math.Max(peak, silentGain), now+attack))
	e.check(p.ExponentialRampToValueAtTime(silentGain, now+decay))
}

func (e *Engine) check(err error) {
	if err != nil {
		e.log.Warnf("schedule: %v", err)
	}
}
