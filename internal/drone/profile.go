// Package drone is the procedural drone synthesizer: a fixed signal graph
// whose parameters glide between per-technique profiles, with slow random
// drift and one-shot impact transients.
package drone

import "murasaki/internal/technique"

// Profile is the full set of synthesis targets for one technique.
type Profile struct {
	Master       float64
	SubFreq      float64
	BodyFreq     float64
	Lowpass      float64
	Bandpass     float64
	Noise        float64
	TremoloHz    float64
	TremoloDepth float64
	Drive        float64
	Detune       float64
	ShimmerHz    float64
	ShimmerDepth float64
	AirFreq      float64
	AirGain      float64
	ReverbWet    float64
	ReverbDry    float64
	PanHz        float64
	PanDepth     float64
	ImpactGain   float64
}

// Profiles maps every technique to its profile.
var Profiles = map[technique.Label]Profile{
	technique.Neutral: {
		Master: 0.006, SubFreq: 33, BodyFreq: 58, Lowpass: 130, Bandpass: 66, Noise: 0.0012,
		TremoloHz: 1.8, TremoloDepth: 0.006, Drive: 0.9, Detune: 1.8, ShimmerHz: 0.05, ShimmerDepth: 10,
		AirFreq: 96, AirGain: 0.004, ReverbWet: 0.08, ReverbDry: 0.45, PanHz: 0.02, PanDepth: 0.04,
		ImpactGain: 0.03,
	},
	technique.Red: {
		Master: 0.072, SubFreq: 41, BodyFreq: 84, Lowpass: 290, Bandpass: 112, Noise: 0.014,
		TremoloHz: 4.9, TremoloDepth: 0.036, Drive: 1.48, Detune: 7.2, ShimmerHz: 0.2, ShimmerDepth: 52,
		AirFreq: 168, AirGain: 0.08, ReverbWet: 0.3, ReverbDry: 0.74, PanHz: 0.07, PanDepth: 0.16,
		ImpactGain: 0.2,
	},
	technique.Void: {
		Master: 0.074, SubFreq: 29, BodyFreq: 50, Lowpass: 210, Bandpass: 74, Noise: 0.028,
		TremoloHz: 1.8, TremoloDepth: 0.03, Drive: 1.3, Detune: 10, ShimmerHz: 0.06, ShimmerDepth: 48,
		AirFreq: 86, AirGain: 0.06, ReverbWet: 0.42, ReverbDry: 0.65, PanHz: 0.03, PanDepth: 0.13,
		ImpactGain: 0.16,
	},
	technique.Purple: {
		Master: 0.09, SubFreq: 46, BodyFreq: 97, Lowpass: 400, Bandpass: 150, Noise: 0.018,
		TremoloHz: 6.4, TremoloDepth: 0.045, Drive: 1.7, Detune: 14.5, ShimmerHz: 0.26, ShimmerDepth: 64,
		AirFreq: 198, AirGain: 0.11, ReverbWet: 0.38, ReverbDry: 0.68, PanHz: 0.11, PanDepth: 0.22,
		ImpactGain: 0.23,
	},
	technique.Shrine: {
		Master: 0.084, SubFreq: 38, BodyFreq: 73, Lowpass: 320, Bandpass: 132, Noise: 0.013,
		TremoloHz: 3.2, TremoloDepth: 0.032, Drive: 1.58, Detune: 5.8, ShimmerHz: 0.13, ShimmerDepth: 56,
		AirFreq: 152, AirGain: 0.09, ReverbWet: 0.34, ReverbDry: 0.72, PanHz: 0.065, PanDepth: 0.18,
		ImpactGain: 0.19,
	},
	technique.Flip: {
		Master: 0.096, SubFreq: 36, BodyFreq: 90, Lowpass: 360, Bandpass: 162, Noise: 0.022,
		TremoloHz: 8.6, TremoloDepth: 0.056, Drive: 1.82, Detune: 16, ShimmerHz: 0.33, ShimmerDepth: 68,
		AirFreq: 208, AirGain: 0.12, ReverbWet: 0.32, ReverbDry: 0.7, PanHz: 0.14, PanDepth: 0.24,
		ImpactGain: 0.24,
	},
}

// ProfileFor returns l's profile, falling back to Neutral.
func ProfileFor(l technique.Label) Profile {
	if p, ok := Profiles[l]; ok {
		return p
	}
	return Profiles[technique.Neutral]
}
