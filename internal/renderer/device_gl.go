package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/kjkrol/gotrees/pkg/geometry"
	"github.com/kjkrol/gotrees/pkg/gfx"
)

const floatSize = 4

type device struct{}

var _ gfx.Device = device{}

// NewDevice loads the GL 3.3 core entry points. A GL context must be current
// on the calling thread.
func NewDevice() (gfx.Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gfx.Logger().Debug("gl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	return device{}, nil
}

func (device) BuildProgram(source, pass string) (uint32, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, buildShaderSource(source, "VERTEX", pass))
	if err != nil {
		return 0, fmt.Errorf("%s vertex shader: %w", pass, err)
	}
	defer gl.DeleteShader(vertexShader)
	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, buildShaderSource(source, "FRAGMENT", pass))
	if err != nil {
		return 0, fmt.Errorf("%s fragment shader: %w", pass, err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.BindAttribLocation(program, gfx.AttribPosition, gl.Str("position\x00"))
	gl.BindAttribLocation(program, gfx.AttribNormal, gl.Str("normal\x00"))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%s link error: %s", pass, strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (device) UseProgram(program uint32) { gl.UseProgram(program) }

func (device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (device) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (device) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (device) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (device) UploadAttribute(buffer, index uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(data), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointer(index, geometry.ComponentsPerVertex, gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (device) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (device) Uniform3f(location int32, v [3]float32) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (device) Uniform4f(location int32, v [4]float32) {
	gl.Uniform4f(location, v[0], v[1], v[2], v[3])
}

func (device) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (device) PointSize(size float32) { gl.PointSize(size) }

func (device) DrawArrays(mode geometry.Mode, first, count int32) {
	gl.DrawArrays(primitive(mode), first, count)
}

func (device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// CheckError drains the GL error queue. A lost context keeps reporting, so
// the loop is bounded.
func (device) CheckError() error {
	var errs []error
	for range 16 {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		errs = append(errs, glError(code))
	}
	return errors.Join(errs...)
}
