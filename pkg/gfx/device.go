package gfx

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/gotrees/pkg/geometry"
)

// Vertex attribute indexes shared with the shader source.
const (
	AttribPosition uint32 = 0
	AttribColor    uint32 = 1
	AttribNormal   uint32 = 2
)

// Device is the GPU surface used by vertex arrays and lines. Every call must
// happen on the thread that owns the GL context.
type Device interface {
	// BuildProgram compiles and links source for the given pass define.
	BuildProgram(source, pass string) (uint32, error)
	UniformLocation(program uint32, name string) int32
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	// UploadAttribute fills buffer with static data and points the attribute
	// at index to it as tightly packed vec3 values of the bound vertex array.
	UploadAttribute(buffer, index uint32, data []float32)
	DeleteBuffer(buffer uint32)

	Uniform3f(location int32, v [3]float32)
	Uniform4f(location int32, v [4]float32)
	UniformMatrix4(location int32, m mgl32.Mat4)

	PointSize(size float32)
	DrawArrays(mode geometry.Mode, first, count int32)
	Viewport(x, y, width, height int32)
	Clear(r, g, b, a float32)

	// CheckError drains pending GPU errors.
	CheckError() error
}

// TransformFunc writes a 4x4 matrix to the uniform at location.
type TransformFunc func(location int32)
