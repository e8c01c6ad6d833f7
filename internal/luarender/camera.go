package luarender

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	fieldOfView = 45
	nearPlane   = 0.1
	farPlane    = 1000
	angleStep   = 0.01
)

var (
	up       = mgl32.Vec3{0, 1, 0}
	eye3D    = mgl32.Vec3{4, 4, 2}
	target3D = mgl32.Vec3{0, 0, 0}
	eye2D    = mgl32.Vec3{0, -0.3, 5.5}
	target2D = mgl32.Vec3{0, -0.3, 0}
)

// Camera spins the tree around the y axis and produces the per-frame
// transforms. A 2D tree is viewed head on and never spins.
type Camera struct {
	Is2D  bool
	Zoom  float32
	Angle float32

	model  mgl32.Mat4
	mvp    mgl32.Mat4
	normal mgl32.Mat4
}

func NewCamera(is2D bool, zoom float32) *Camera {
	c := &Camera{Is2D: is2D, Zoom: zoom}
	c.Update(1, 1)
	return c
}

func (c *Camera) Advance() {
	if !c.Is2D {
		c.Angle += angleStep
	}
}

// Update recomputes the transforms for a viewport of the given size.
func (c *Camera) Update(width, height int) {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	projection := mgl32.Perspective(mgl32.DegToRad(fieldOfView), aspect, nearPlane, farPlane)
	view := mgl32.LookAtV(eye3D, target3D, up)
	if c.Is2D {
		view = mgl32.LookAtV(eye2D, target2D, up)
	}
	c.model = mgl32.HomogRotate3DY(c.Angle).
		Mul4(mgl32.Translate3D(0, -3, 0)).
		Mul4(mgl32.Scale3D(c.Zoom, c.Zoom, c.Zoom))
	c.mvp = projection.Mul4(view).Mul4(c.model)
	c.normal = c.model.Inv().Transpose()
}

func (c *Camera) Model() mgl32.Mat4 { return c.model }

func (c *Camera) MVP() mgl32.Mat4 { return c.mvp }

// NormalTransform is the inverse transpose of the model matrix.
func (c *Camera) NormalTransform() mgl32.Mat4 { return c.normal }
