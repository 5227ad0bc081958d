package visual

import (
	"math"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"

	"murasaki/internal/config"
	"murasaki/internal/rng"
	"murasaki/internal/technique"
)

func newTestScene(n int, l technique.Label) *Scene {
	r := rng.New()
	t := technique.NewTargets(n)
	t.Fill(l, r)
	return NewScene(t, r)
}

func TestSceneApproachesTargets(t *testing.T) {
	s := newTestScene(64, technique.Red)
	s.Step(technique.Red, 0)
	for i, want := range s.targets.Positions {
		if got := s.Positions[i]; math.Abs(float64(got-want*0.1)) > 1e-5 {
			t.Fatalf("position %d after one step = %v, want %v", i, got, want*0.1)
		}
	}
	for range 200 {
		s.Step(technique.Red, 0)
	}
	for i, want := range s.targets.Sizes {
		if got := s.Sizes[i]; math.Abs(float64(got-want)) > 1e-3 {
			t.Fatalf("size %d = %v, want %v", i, got, want)
		}
	}
}

func TestSceneRotation(t *testing.T) {
	tests := []struct {
		label technique.Label
		want  [3]float64
	}{
		{technique.Neutral, [3]float64{0, 0.005, 0}},
		{technique.Red, [3]float64{0, 0, -0.1}},
		{technique.Void, [3]float64{0, 0.005, 0}},
		{technique.Flip, [3]float64{0.012, 0.08, 0}},
		{technique.Purple, [3]float64{0, 0.05, 0.2}},
	}
	for _, tt := range tests {
		s := newTestScene(1, tt.label)
		s.Step(tt.label, 0)
		for i := range tt.want {
			if math.Abs(s.Rotation[i]-tt.want[i]) > 1e-12 {
				t.Errorf("%v: rotation = %v, want %v", tt.label, s.Rotation, tt.want)
				break
			}
		}
	}
}

func TestShrineHoldsUpright(t *testing.T) {
	s := newTestScene(1, technique.Shrine)
	for range 10 {
		s.Step(technique.Purple, 0)
	}
	s.Step(technique.Shrine, 0)
	if s.Rotation != ([3]float64{}) {
		t.Errorf("rotation under shrine = %v, want zero", s.Rotation)
	}
}

func TestShake(t *testing.T) {
	s := newTestScene(1, technique.Red)
	limit := config.ShakeIntensity * config.ShakeMaxPixels / 2
	moved := false
	for range 100 {
		s.Step(technique.Red, config.ShakeIntensity)
		if math.Abs(s.ShakeX) > limit || math.Abs(s.ShakeY) > limit {
			t.Fatalf("shake (%v, %v) beyond %v", s.ShakeX, s.ShakeY, limit)
		}
		if s.ShakeX != 0 {
			moved = true
		}
	}
	if !moved {
		t.Error("shake never moved the frame")
	}
	s.Step(technique.Neutral, 0)
	if s.ShakeX != 0 || s.ShakeY != 0 {
		t.Errorf("shake without intensity = (%v, %v)", s.ShakeX, s.ShakeY)
	}
}

func TestCameraFor(t *testing.T) {
	wide := CameraFor(1280, 720)
	if wide.FOV != config.CameraFOV || wide.Z != config.CameraZ {
		t.Errorf("wide camera = %+v", wide)
	}
	narrow := CameraFor(800, 900)
	if narrow.FOV != config.CameraFOVSmall || narrow.Z != config.CameraZSmall {
		t.Errorf("narrow camera = %+v", narrow)
	}
}

func TestMVPCentresOrigin(t *testing.T) {
	c := CameraFor(1280, 720)
	m := c.MVP([3]float64{0.3, 1.1, -0.7})
	x, y, _, w := m.Apply(0, 0, 0)
	if math.Abs(x/w) > 1e-6 || math.Abs(y/w) > 1e-6 {
		t.Errorf("origin projects to (%v, %v)", x/w, y/w)
	}
	if math.Abs(w-c.Z) > 1e-4 {
		t.Errorf("origin depth = %v, want %v", w, c.Z)
	}

	// A point at the top of the view frustum at the origin's depth lands
	// on the top edge.
	top := c.Z * math.Tan(c.FOV*math.Pi/360)
	_, y, _, w = c.MVP([3]float64{}).Apply(0, top, 0)
	if math.Abs(y/w-1) > 1e-4 {
		t.Errorf("frustum top projects to %v, want 1", y/w)
	}
}

func TestEulerMatchesAxisRotation(t *testing.T) {
	// A quarter turn about z takes +x to +y.
	x, y, z, _ := eulerXYZ(0, 0, math.Pi/2).Apply(1, 0, 0)
	if math.Abs(x) > 1e-6 || math.Abs(y-1) > 1e-6 || math.Abs(z) > 1e-6 {
		t.Errorf("rotated = (%v, %v, %v), want (0, 1, 0)", x, y, z)
	}
	// About y, +z goes to +x.
	x, _, z, _ = eulerXYZ(0, math.Pi/2, 0).Apply(0, 0, 1)
	if math.Abs(x-1) > 1e-6 || math.Abs(z) > 1e-6 {
		t.Errorf("rotated = (%v, _, %v), want (1, _, 0)", x, z)
	}
}

func TestSurfaceOverscan(t *testing.T) {
	s := SurfaceFor(1000, 500)
	if s.Width != 1160 || s.Height != 580 {
		t.Errorf("surface = %dx%d, want 1160x580", s.Width, s.Height)
	}
	if s.X != -80 || s.Y != -40 {
		t.Errorf("offset = (%d, %d), want (-80, -40)", s.X, s.Y)
	}
	sh := s.Shaken(3.4, -2.6)
	if sh.X != -77 || sh.Y != -37 {
		t.Errorf("shaken offset = (%d, %d), want (-77, -37)", sh.X, sh.Y)
	}
}

func TestSkeletonVertices(t *testing.T) {
	hands := make([]technique.Hand, 2)
	lines, joints := skeletonVertices(hands, nil, nil)
	if got, want := len(lines), 2*21*4; got != want {
		t.Errorf("line floats = %d, want %d", got, want)
	}
	if got, want := len(joints), 2*21*2; got != want {
		t.Errorf("joint floats = %d, want %d", got, want)
	}
	in := insetFor(1280, 720)
	if in.X+in.Width > 1280 || in.Y < 0 || in.Height > 360 {
		t.Errorf("inset %+v outside framebuffer", in)
	}
}

func TestDigitRune(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want rune
		ok   bool
	}{
		{glfw.Key0, '0', true},
		{glfw.Key5, '5', true},
		{glfw.KeyKP3, '3', true},
		{glfw.KeyV, 0, false},
	}
	for _, tt := range tests {
		got, ok := DigitRune(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DigitRune(%v) = %c, %v", tt.key, got, ok)
		}
	}
}
