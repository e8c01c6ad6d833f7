package gfx

import (
	"github.com/kjkrol/gotrees/pkg/geometry"
)

// VertexArray is one uploaded point buffer with its normals. Its mode, color
// and point size are fixed at creation.
type VertexArray struct {
	owner *VertexArrays

	vao       uint32
	vertexVbo uint32
	normalVbo uint32
	count     int

	mode      geometry.Mode
	color     [3]float32
	pointSize float32

	released bool
}

func (v *VertexArray) Mode() geometry.Mode { return v.mode }

func (v *VertexArray) Color() [3]float32 { return v.color }

func (v *VertexArray) PointSize() float32 { return v.pointSize }

func (v *VertexArray) VertexCount() int { return v.count }

func (v *VertexArray) Released() bool { return v.released }

// Draw is self-contained: it activates the shared program, uploads both
// transforms and the color, then draws. A non-nil override replaces the
// stored mode for this call only.
func (v *VertexArray) Draw(override *geometry.Mode) error {
	if err := v.check("draw", override); err != nil {
		return err
	}
	va := v.owner
	if err := va.checkReady("draw"); err != nil {
		return err
	}
	d := va.device
	d.UseProgram(va.program)
	d.BindVertexArray(v.vao)
	va.mvpCallback(va.mvpUniform)
	va.normalCallback(va.normalXformUniform)
	d.Uniform3f(va.colorUniform, v.color)
	v.issue(geometry.Resolve(v.mode, override))
	return nil
}

// DrawWithoutSetup binds and draws only. The caller must have called
// SetupDrawing in the current frame.
func (v *VertexArray) DrawWithoutSetup(override *geometry.Mode) error {
	if err := v.check("draw_without_setup", override); err != nil {
		return err
	}
	v.owner.device.BindVertexArray(v.vao)
	v.issue(geometry.Resolve(v.mode, override))
	return nil
}

// Release deletes the GPU objects of v. Later draws fail.
func (v *VertexArray) Release() {
	if v.released {
		return
	}
	d := v.owner.device
	if v.vertexVbo != 0 {
		d.DeleteBuffer(v.vertexVbo)
	}
	if v.normalVbo != 0 {
		d.DeleteBuffer(v.normalVbo)
	}
	if v.vao != 0 {
		d.DeleteVertexArray(v.vao)
	}
	delete(v.owner.live, v)
	v.released = true
	Logger().Debug("vertex array released", "vao", v.vao)
}

func (v *VertexArray) check(op string, override *geometry.Mode) error {
	if v.released {
		return &PreconditionError{Op: op, Msg: "vertex array was released"}
	}
	if override != nil && !override.Valid() {
		return &ArgError{Func: op, Param: "mode", Msg: geometry.ModeHint}
	}
	return nil
}

func (v *VertexArray) issue(mode geometry.Mode) {
	d := v.owner.device
	if mode == geometry.ModePoints {
		d.PointSize(v.pointSize)
	}
	d.DrawArrays(mode, 0, int32(v.count))
}
