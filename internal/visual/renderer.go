package visual

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"murasaki/internal/config"
	"murasaki/internal/technique"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Particle cloud program, one VBO per attribute.
	cloudProg uint32
	cloudVAO  uint32
	posVBO    uint32
	colVBO    uint32
	sizeVBO   uint32
	maxPoints int

	uMVP        int32
	uBaseSize   int32
	uPointScale int32
	uOpacity    int32
	uBloom      int32

	// Skeleton overlay program.
	skelProg       uint32
	skelVAO        uint32
	skelVBO        uint32
	uSkelColor     int32
	uSkelPointSize int32

	lineBuf  []float32
	jointBuf []float32
}

func NewRenderer(maxPoints int) (*Renderer, error) {
	cloudProg, err := linkProgram(cloudVertSrc, cloudFragSrc)
	if err != nil {
		return nil, fmt.Errorf("cloud program: %w", err)
	}
	skelProg, err := linkProgram(skeletonVertSrc, skeletonFragSrc)
	if err != nil {
		gl.DeleteProgram(cloudProg)
		return nil, fmt.Errorf("skeleton program: %w", err)
	}
	r := &Renderer{
		cloudProg: cloudProg,
		skelProg:  skelProg,
		maxPoints: maxPoints,
	}

	gl.GenVertexArrays(1, &r.cloudVAO)
	gl.BindVertexArray(r.cloudVAO)
	attrib := func(vbo *uint32, loc uint32, size int32) {
		gl.GenBuffers(1, vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, *vbo)
		gl.BufferData(gl.ARRAY_BUFFER, maxPoints*int(size)*4, nil, gl.STREAM_DRAW)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, size, gl.FLOAT, false, size*4, glOffset(0))
	}
	attrib(&r.posVBO, 0, 3)
	attrib(&r.colVBO, 1, 3)
	attrib(&r.sizeVBO, 2, 1)

	gl.UseProgram(cloudProg)
	r.uMVP = uniform(cloudProg, "uMVP")
	r.uBaseSize = uniform(cloudProg, "uBaseSize")
	r.uPointScale = uniform(cloudProg, "uPointScale")
	r.uOpacity = uniform(cloudProg, "uOpacity")
	r.uBloom = uniform(cloudProg, "uBloom")
	gl.Uniform1f(r.uBaseSize, config.ParticleBaseSize)
	gl.Uniform1f(r.uOpacity, config.ParticleOpacity)

	// Skeleton: streaming vec2 buffer shared by lines and joints.
	gl.GenVertexArrays(1, &r.skelVAO)
	gl.GenBuffers(1, &r.skelVBO)
	gl.BindVertexArray(r.skelVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.skelVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.UseProgram(skelProg)
	r.uSkelColor = uniform(skelProg, "uColor")
	r.uSkelPointSize = uniform(skelProg, "uPointSize")

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.posVBO, r.colVBO, r.sizeVBO, r.skelVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.cloudVAO, r.skelVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.cloudProg, r.skelProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawCloud uploads the scene and draws it additively into surf.
func (r *Renderer) DrawCloud(s *Scene, cam Camera, surf Surface, pres technique.Presentation) {
	count := min(s.Len(), r.maxPoints)
	if count == 0 {
		return
	}

	gl.Viewport(int32(surf.X), int32(surf.Y), int32(surf.Width), int32(surf.Height))
	gl.UseProgram(r.cloudProg)
	gl.BindVertexArray(r.cloudVAO)

	mvp := cam.MVP(s.Rotation)
	gl.UniformMatrix4fv(r.uMVP, 1, false, &mvp[0])
	gl.Uniform1f(r.uPointScale, float32(cam.PointScale(surf.Height)))
	gl.Uniform1f(r.uBloom, float32(pres.Bloom))

	gl.BindBuffer(gl.ARRAY_BUFFER, r.posVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, count*3*4, gl.Ptr(s.Positions))
	gl.BindBuffer(gl.ARRAY_BUFFER, r.colVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, count*3*4, gl.Ptr(s.Colors))
	gl.BindBuffer(gl.ARRAY_BUFFER, r.sizeVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, count*4, gl.Ptr(s.Sizes))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawSkeleton draws hands into an inset in the lower right corner.
func (r *Renderer) DrawSkeleton(hands []technique.Hand, color technique.Color, fbW, fbH int) {
	r.lineBuf, r.jointBuf = skeletonVertices(hands, r.lineBuf[:0], r.jointBuf[:0])
	if len(r.jointBuf) == 0 {
		return
	}
	in := insetFor(fbW, fbH)
	gl.Viewport(int32(in.X), int32(in.Y), int32(in.Width), int32(in.Height))
	gl.UseProgram(r.skelProg)
	gl.BindVertexArray(r.skelVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.skelVBO)

	gl.Uniform3f(r.uSkelColor, color.R, color.G, color.B)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.lineBuf)*4, gl.Ptr(r.lineBuf), gl.STREAM_DRAW)
	gl.LineWidth(1)
	gl.DrawArrays(gl.LINES, 0, int32(len(r.lineBuf)/2))

	gl.Uniform3f(r.uSkelColor, 0.91, 1, 0.96)
	gl.Uniform1f(r.uSkelPointSize, 4)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.jointBuf)*4, gl.Ptr(r.jointBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(len(r.jointBuf)/2))

	gl.BindVertexArray(0)
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
}
