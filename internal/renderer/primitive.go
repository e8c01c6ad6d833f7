package renderer

import (
	"fmt"

	"github.com/kjkrol/gotrees/pkg/geometry"
)

// GL enum values. Kept here so the mapping is testable without a context.
const (
	glPoints        uint32 = 0x0000
	glLines         uint32 = 0x0001
	glTriangles     uint32 = 0x0004
	glTriangleStrip uint32 = 0x0005
)

var primitives = [...]uint32{
	geometry.ModeTriangleStrip: glTriangleStrip,
	geometry.ModeTriangles:     glTriangles,
	geometry.ModePoints:        glPoints,
	geometry.ModeLines:         glLines,
}

func primitive(mode geometry.Mode) uint32 {
	if !mode.Valid() {
		return glTriangles
	}
	return primitives[mode]
}

type glError uint32

var glErrorNames = map[glError]string{
	0x0500: "GL_INVALID_ENUM",
	0x0501: "GL_INVALID_VALUE",
	0x0502: "GL_INVALID_OPERATION",
	0x0503: "GL_STACK_OVERFLOW",
	0x0504: "GL_STACK_UNDERFLOW",
	0x0505: "GL_OUT_OF_MEMORY",
	0x0506: "GL_INVALID_FRAMEBUFFER_OPERATION",
}

func (e glError) Error() string {
	if name, ok := glErrorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("GL error 0x%04X", uint32(e))
}
