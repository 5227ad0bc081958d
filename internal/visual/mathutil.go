package visual

import "math"

// Mat4 is a column-major 4x4 matrix as OpenGL expects it.
type Mat4 [16]float32

func identity() Mat4 {
	return Mat4{0: 1, 5: 1, 10: 1, 15: 1}
}

// Mul returns a*b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += a[k*4+r] * b[c*4+k]
			}
			m[c*4+r] = s
		}
	}
	return m
}

// Apply transforms the point (x, y, z, 1) and returns clip coordinates.
func (a Mat4) Apply(x, y, z float64) (cx, cy, cz, cw float64) {
	v := [4]float64{x, y, z, 1}
	var out [4]float64
	for r := 0; r < 4; r++ {
		for k := 0; k < 4; k++ {
			out[r] += float64(a[k*4+r]) * v[k]
		}
	}
	return out[0], out[1], out[2], out[3]
}

// perspective builds a projection for a vertical fov in degrees.
func perspective(fovDeg, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovDeg*math.Pi/360)
	var m Mat4
	m[0] = float32(f / aspect)
	m[5] = float32(f)
	m[10] = float32((far + near) / (near - far))
	m[11] = -1
	m[14] = float32(2 * far * near / (near - far))
	return m
}

func translate(x, y, z float64) Mat4 {
	m := identity()
	m[12], m[13], m[14] = float32(x), float32(y), float32(z)
	return m
}

// eulerXYZ rotates about x, then y, then z in the object's frame, the
// same order a scene graph applies Euler angles.
func eulerXYZ(rx, ry, rz float64) Mat4 {
	a, b := math.Cos(rx), math.Sin(rx)
	c, d := math.Cos(ry), math.Sin(ry)
	e, f := math.Cos(rz), math.Sin(rz)
	ae, af, be, bf := a*e, a*f, b*e, b*f

	m := identity()
	m[0] = float32(c * e)
	m[4] = float32(-c * f)
	m[8] = float32(d)
	m[1] = float32(af + be*d)
	m[5] = float32(ae - bf*d)
	m[9] = float32(-b * c)
	m[2] = float32(bf - ae*d)
	m[6] = float32(be + af*d)
	m[10] = float32(a * c)
	return m
}

func lerp(cur, target, t float32) float32 {
	return cur + (target-cur)*t
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
