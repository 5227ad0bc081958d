package visual

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Cloud vertex shader: perspective point sprites, size attenuated by depth.
const cloudVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aColor;
layout(location = 2) in float aSize;

uniform mat4 uMVP;
uniform float uBaseSize;
uniform float uPointScale;

out vec3 vColor;

void main() {
    vec4 clip = uMVP * vec4(aPos, 1.0);
    gl_Position = clip;
    float depth = max(clip.w, 0.001);
    gl_PointSize = max(1.0, uBaseSize * aSize * uPointScale / depth);
    vColor = aColor;
}
` + "\x00"

// Cloud fragment shader: soft radial sprite, additive, with a glow halo
// whose strength follows the technique's bloom.
const cloudFragSrc = `#version 410 core

uniform float uOpacity;
uniform float uBloom;

in vec3 vColor;
out vec4 FragColor;

void main() {
    float d = length(gl_PointCoord - vec2(0.5)) * 2.0;
    if (d > 1.0) discard;
    float core = 1.0 - smoothstep(0.2, 0.9, d);
    float halo = (1.0 - d) * (1.0 - d) * uBloom * 0.25;
    float a = (core + halo) * uOpacity;
    FragColor = vec4(vColor * a, a);
}
` + "\x00"

// Skeleton shaders: flat-coloured lines and joints in overlay space.
const skeletonVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos; // normalized landmark x/y, y down

uniform float uPointSize;

void main() {
    vec2 ndc = vec2(1.0 - aPos.x, aPos.y) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    gl_PointSize = uPointSize;
}
` + "\x00"

const skeletonFragSrc = `#version 410 core

uniform vec3 uColor;
out vec4 FragColor;

void main() {
    FragColor = vec4(uColor, 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}

func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}
