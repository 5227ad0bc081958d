// Package visual draws the particle cloud and the hand skeleton overlay.
// Scene holds the per-frame animation state and needs no GL context.
package visual

import (
	"murasaki/internal/config"
	"murasaki/internal/rng"
	"murasaki/internal/technique"
)

// Scene animates the cloud toward its targets.
type Scene struct {
	Positions []float32
	Colors    []float32
	Sizes     []float32

	Rotation       [3]float64 // x, y, z radians
	ShakeX, ShakeY float64    // window pixels

	targets *technique.Targets
	rand    *rng.Rand
}

// NewScene starts every particle collapsed at the origin, dark and
// zero-sized; the first frames grow it into the current targets.
func NewScene(targets *technique.Targets, r *rng.Rand) *Scene {
	n := targets.Len()
	return &Scene{
		Positions: make([]float32, 3*n),
		Colors:    make([]float32, 3*n),
		Sizes:     make([]float32, n),
		targets:   targets,
		rand:      r,
	}
}

func (s *Scene) Len() int { return len(s.Sizes) }

// Step advances one frame under technique l with the given shake
// intensity.
func (s *Scene) Step(l technique.Label, shake float64) {
	const k = config.ParticleLerp
	t := s.targets
	for i := range s.Positions {
		s.Positions[i] = lerp(s.Positions[i], t.Positions[i], k)
		s.Colors[i] = lerp(s.Colors[i], t.Colors[i], k)
	}
	for i := range s.Sizes {
		s.Sizes[i] = lerp(s.Sizes[i], t.Sizes[i], k)
	}

	s.rotate(l)

	s.ShakeX, s.ShakeY = 0, 0
	if shake > 0 {
		s.ShakeX = (s.rand.Float64() - 0.5) * shake * config.ShakeMaxPixels
		s.ShakeY = (s.rand.Float64() - 0.5) * shake * config.ShakeMaxPixels
	}
}

func (s *Scene) rotate(l technique.Label) {
	r := &s.Rotation
	switch l {
	case technique.Red:
		r[2] -= 0.1
	case technique.Flip:
		r[1] += 0.08
		r[0] += 0.012
	case technique.Purple:
		r[2] += 0.2
		r[1] += 0.05
	case technique.Shrine:
		*r = [3]float64{}
	default:
		r[1] += 0.005
	}
}
