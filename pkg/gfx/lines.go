package gfx

import (
	"github.com/kjkrol/gotrees/pkg/geometry"
)

var linesColor = [4]float32{0, 1, 0, 1}

// Lines batches debug line segments. Segments are kept on the CPU and
// uploaded on the next DrawAll; adding or resetting drops the GPU copy.
type Lines struct {
	device Device
	conf   RendererConfig

	initialized  bool
	initErr      error
	program      uint32
	vpUniform    int32
	colorUniform int32

	transform TransformFunc
	scale     float32
	points    []float32

	// vao is 0 while no GPU copy of points exists.
	vao uint32
	vbo uint32
}

func NewLines(device Device, conf RendererConfig) *Lines {
	return &Lines{
		device: device,
		conf:   conf,
		scale:  1,
		points: make([]float32, 0, 32),
	}
}

func (l *Lines) SetTransformCallback(fn TransformFunc) {
	l.transform = fn
}

// SetScale shrinks or grows each later segment around its midpoint.
func (l *Lines) SetScale(s float32) {
	l.scale = s
}

func (l *Lines) Add(from, to [3]float32) {
	l.ensureEmpty()
	if s := l.scale; s != 1 {
		for i := range 3 {
			mid := 0.5*from[i] + 0.5*to[i]
			from[i] = s*from[i] + (1-s)*mid
			to[i] = s*to[i] + (1-s)*mid
		}
	}
	l.points = append(l.points, from[:]...)
	l.points = append(l.points, to[:]...)
}

func (l *Lines) Reset() {
	l.ensureEmpty()
	l.points = l.points[:0]
}

// Len returns the number of segments.
func (l *Lines) Len() int {
	return len(l.points) / (2 * geometry.ComponentsPerVertex)
}

// Points returns the scaled segment end points.
func (l *Lines) Points() geometry.Points {
	return geometry.Points(l.points)
}

func (l *Lines) DrawAll() error {
	if l.transform == nil {
		return &PreconditionError{Op: "draw_all", Msg: "transform callback is not set"}
	}
	if err := l.ensureInit(); err != nil {
		return err
	}
	d := l.device
	d.UseProgram(l.program)
	l.ensureReady()
	l.transform(l.vpUniform)
	d.DrawArrays(geometry.ModeLines, 0, int32(len(l.points)/geometry.ComponentsPerVertex))
	return nil
}

func (l *Lines) Close() {
	l.ensureEmpty()
	if l.initialized {
		l.device.DeleteProgram(l.program)
	}
	l.initialized = false
	l.initErr = nil
}

func (l *Lines) ensureInit() error {
	if l.initialized {
		return nil
	}
	if l.initErr != nil {
		return l.initErr
	}
	program, err := l.device.BuildProgram(l.conf.ShaderSource, PassSolid)
	if err != nil {
		l.initErr = &GPUResourceError{Op: "build solid program", Err: err}
		return l.initErr
	}
	l.program = program
	l.vpUniform = l.device.UniformLocation(program, "vp")
	l.colorUniform = l.device.UniformLocation(program, "color")
	l.device.UseProgram(program)
	l.device.Uniform4f(l.colorUniform, linesColor)
	l.initialized = true
	return nil
}

func (l *Lines) ensureEmpty() {
	if l.vao == 0 {
		return
	}
	l.device.DeleteVertexArray(l.vao)
	l.device.DeleteBuffer(l.vbo)
	l.vao = 0
	l.vbo = 0
}

func (l *Lines) ensureReady() {
	if l.vao != 0 {
		l.device.BindVertexArray(l.vao)
		return
	}
	l.vao = l.device.GenVertexArray()
	l.device.BindVertexArray(l.vao)
	l.vbo = l.device.GenBuffer()
	l.device.UploadAttribute(l.vbo, AttribPosition, l.points)
}
