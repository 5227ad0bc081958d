package technique

import (
	"math"

	"murasaki/internal/rng"
)

// Point is one particle target: position, colour and size.
type Point struct {
	X, Y, Z float64
	R, G, B float64
	S       float64
}

// Generator produces the target for particle i of n.
type Generator func(i, n int, r *rng.Rand) Point

var generators = map[Label]Generator{
	Neutral: neutralPoint,
	Red:     redPoint,
	Void:    voidPoint,
	Purple:  purplePoint,
	Shrine:  shrinePoint,
	Flip:    flipPoint,
}

// GeneratorFor returns l's generator, or Neutral's for unknown labels.
func GeneratorFor(l Label) Generator {
	if g, ok := generators[l]; ok {
		return g
	}
	return neutralPoint
}

// Targets holds the particle targets in the flat layout the renderer
// uploads: three floats per position and colour, one per size.
type Targets struct {
	Positions []float32
	Colors    []float32
	Sizes     []float32
}

func NewTargets(n int) *Targets {
	return &Targets{
		Positions: make([]float32, 3*n),
		Colors:    make([]float32, 3*n),
		Sizes:     make([]float32, n),
	}
}

func (t *Targets) Len() int { return len(t.Sizes) }

// Fill regenerates every target for l.
func (t *Targets) Fill(l Label, r *rng.Rand) {
	t.fillWith(GeneratorFor(l), r)
}

func (t *Targets) fillWith(gen Generator, r *rng.Rand) {
	n := t.Len()
	for i := 0; i < n; i++ {
		p := gen(i, n, r)
		t.Positions[3*i] = float32(p.X)
		t.Positions[3*i+1] = float32(p.Y)
		t.Positions[3*i+2] = float32(p.Z)
		t.Colors[3*i] = float32(p.R)
		t.Colors[3*i+1] = float32(p.G)
		t.Colors[3*i+2] = float32(p.B)
		t.Sizes[i] = float32(p.S)
	}
}

// At returns target i.
func (t *Targets) At(i int) Point {
	return Point{
		X: float64(t.Positions[3*i]), Y: float64(t.Positions[3*i+1]), Z: float64(t.Positions[3*i+2]),
		R: float64(t.Colors[3*i]), G: float64(t.Colors[3*i+1]), B: float64(t.Colors[3*i+2]),
		S: float64(t.Sizes[i]),
	}
}

func sphere(radius, theta, phi float64) (x, y, z float64) {
	return radius * math.Sin(phi) * math.Cos(theta),
		radius * math.Sin(phi) * math.Sin(theta),
		radius * math.Cos(phi)
}

// neutralPoint keeps 5% as a dim shell and collapses the rest.
func neutralPoint(i, n int, r *rng.Rand) Point {
	if float64(i) >= float64(n)*0.05 {
		return Point{}
	}
	radius := 15 + r.Float64()*20
	theta := r.Float64() * 6.28
	phi := r.Float64() * 3.14
	x, y, z := sphere(radius, theta, phi)
	return Point{X: x, Y: y, Z: z, R: 0.08, G: 0.16, B: 0.14, S: 0.4}
}

// redPoint is a bright core inside a three-armed spiral.
func redPoint(i, n int, r *rng.Rand) Point {
	if float64(i) < float64(n)*0.1 {
		radius := r.Float64() * 9
		x, y, z := sphere(radius, r.Float64()*6.28, r.Polar())
		return Point{X: x, Y: y, Z: z, R: 2.2, G: 1.05, B: 0.25, S: 2.5}
	}
	const arms = 3
	t := float64(i) / float64(n)
	angle := t*15 + float64(i%arms)*(2*math.Pi/arms)
	radius := 2 + t*40
	return Point{
		X: radius * math.Cos(angle),
		Y: radius * math.Sin(angle),
		Z: (r.Float64() - 0.5) * (10 * t),
		R: 0.95, G: 0.42, B: 0.08, S: 1.0,
	}
}

// voidPoint is a bright ring inside a wide sphere shell.
func voidPoint(i, n int, r *rng.Rand) Point {
	if float64(i) < float64(n)*0.15 {
		angle := r.Angle()
		return Point{
			X: 26 * math.Cos(angle), Y: 26 * math.Sin(angle), Z: (r.Float64() - 0.5) * 1,
			R: 0.92, G: 1.0, B: 0.9, S: 2.5,
		}
	}
	radius := 30 + r.Float64()*90
	x, y, z := sphere(radius, r.Angle(), r.Polar())
	return Point{X: x, Y: y, Z: z, R: 0.1, G: 0.9, B: 0.65, S: 0.7}
}

// purplePoint is a sphere shell with 20% scattered in a cube.
func purplePoint(_, _ int, r *rng.Rand) Point {
	if r.Float64() > 0.8 {
		return Point{
			X: (r.Float64() - 0.5) * 100, Y: (r.Float64() - 0.5) * 100, Z: (r.Float64() - 0.5) * 100,
			R: 0.72, G: 0.38, B: 0.82, S: 0.8,
		}
	}
	x, y, z := sphere(20, r.Angle(), r.Polar())
	return Point{X: x, Y: y, Z: z, R: 1.0, G: 0.36, B: 0.78, S: 2.5}
}

// shrinePoint is a floor, four pillars and a curved roof; the last 40% is
// collapsed.
func shrinePoint(i, n int, r *rng.Rand) Point {
	f := float64(i)
	total := float64(n)
	switch {
	case f < total*0.3:
		return Point{
			X: (r.Float64() - 0.5) * 80, Y: -15, Z: (r.Float64() - 0.5) * 80,
			R: 0.35, G: 0.22, B: 0.08, S: 0.8,
		}
	case f < total*0.4:
		px, pz := 12.0, 8.0
		if i%4 >= 2 {
			px = -12
		}
		if (i%4)%2 != 0 {
			pz = -8
		}
		return Point{
			X: px + (r.Float64()-0.5)*2, Y: -15 + r.Float64()*30, Z: pz + (r.Float64()-0.5)*2,
			R: 0.34, G: 0.27, B: 0.18, S: 0.6,
		}
	case f < total*0.6:
		t := r.Angle()
		rad := r.Float64() * 30
		curve := math.Pow(rad/30, 2) * 10
		return Point{
			X: rad * math.Cos(t), Y: 15 - curve + r.Float64()*2, Z: rad * math.Sin(t) * 0.6,
			R: 0.88, G: 0.5, B: 0.18, S: 0.6,
		}
	}
	return Point{}
}

// flipPoint is an upright column over a base with a wide scatter around it.
func flipPoint(i, n int, r *rng.Rand) Point {
	f := float64(i)
	total := float64(n)
	switch {
	case f < total*0.22:
		radius := r.Float64() * 3.1
		theta := r.Angle()
		y := -18 + math.Pow(r.Float64(), 0.35)*60
		return Point{
			X: math.Cos(theta) * radius, Y: y, Z: math.Sin(theta) * radius,
			R: 1.2, G: 1.5, B: 0.45, S: 1.95,
		}
	case f < total*0.42:
		return Point{
			X: (r.Float64() - 0.5) * 22, Y: -20 + r.Float64()*8, Z: (r.Float64() - 0.5) * 12,
			R: 0.75, G: 0.9, B: 0.3, S: 1.0,
		}
	}
	angle := r.Angle()
	spread := 14 + r.Float64()*62
	return Point{
		X: math.Cos(angle) * spread, Y: r.Float64()*36 - 8, Z: math.Sin(angle) * spread * 0.9,
		R: 0.42, G: 0.56, B: 0.18, S: 0.52,
	}
}
