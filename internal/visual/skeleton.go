package visual

import (
	"murasaki/internal/landmark"
	"murasaki/internal/technique"
)

// skeletonVertices appends line-segment endpoints and joint positions for
// hands, as x/y pairs in normalized landmark space.
func skeletonVertices(hands []technique.Hand, lines, joints []float32) ([]float32, []float32) {
	for i := range hands {
		h := &hands[i]
		for _, c := range landmark.Connections {
			a, b := h[c[0]], h[c[1]]
			lines = append(lines, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y))
		}
		for _, p := range h {
			joints = append(joints, float32(p.X), float32(p.Y))
		}
	}
	return lines, joints
}

// insetFor places the skeleton overlay in the lower right corner of the
// framebuffer with a 4:3 aspect.
func insetFor(fbW, fbH int) Surface {
	w := int(float64(fbW) * 0.28)
	h := w * 3 / 4
	if h > fbH/2 {
		h = fbH / 2
		w = h * 4 / 3
	}
	margin := int(clampF(float64(fbW)*0.015, 8, 24))
	return Surface{X: fbW - w - margin, Y: margin, Width: w, Height: h}
}
