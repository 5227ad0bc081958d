package visual

import (
	"math"

	"murasaki/internal/config"
)

// Camera looks down -z at the particle cloud from Z.
type Camera struct {
	FOV    float64 // vertical, degrees
	Z      float64
	Aspect float64
}

// CameraFor picks the camera for a window: narrow windows get a wider fov
// from further back so the formations still fit.
func CameraFor(width, height int) Camera {
	c := Camera{FOV: config.CameraFOV, Z: config.CameraZ, Aspect: 1}
	if width < config.CompactWidth {
		c.FOV, c.Z = config.CameraFOVSmall, config.CameraZSmall
	}
	if height > 0 {
		c.Aspect = float64(width) / float64(height)
	}
	return c
}

func (c Camera) Projection() Mat4 {
	return perspective(c.FOV, c.Aspect, config.CameraNear, config.CameraFar)
}

func (c Camera) View() Mat4 {
	return translate(0, 0, -c.Z)
}

// MVP combines the camera with the cloud's rotation.
func (c Camera) MVP(rot [3]float64) Mat4 {
	return c.Projection().Mul(c.View()).Mul(eulerXYZ(rot[0], rot[1], rot[2]))
}

// PointScale converts a world-space point size at depth 1 to pixels for a
// surface h pixels tall.
func (c Camera) PointScale(h int) float64 {
	return float64(h) / (2 * math.Tan(c.FOV*math.Pi/360))
}

// Surface is the overscanned render target: larger than the window and
// centred on it, so a shaken frame never exposes an edge.
type Surface struct {
	X, Y          int // offset from the window origin, non-positive
	Width, Height int
}

func SurfaceFor(width, height int) Surface {
	w := int(math.Ceil(float64(width) * config.RenderOverscan))
	h := int(math.Ceil(float64(height) * config.RenderOverscan))
	return Surface{
		X:      -int(math.Round(float64(w-width) / 2)),
		Y:      -int(math.Round(float64(h-height) / 2)),
		Width:  w,
		Height: h,
	}
}

// Shaken returns the surface offset by the shake, in framebuffer pixels.
// Window y grows down, framebuffer y grows up.
func (s Surface) Shaken(dx, dy float64) Surface {
	s.X += int(math.Round(dx))
	s.Y -= int(math.Round(dy))
	return s
}
