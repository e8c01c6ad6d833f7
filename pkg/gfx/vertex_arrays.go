package gfx

import (
	"github.com/kjkrol/gotrees/pkg/geometry"
)

// DefaultColor is the bark brown used when no color is given.
var DefaultColor = [3]float32{0.494, 0.349, 0.204}

const defaultPointSize = 1

// VertexArrays owns the state shared by every VertexArray it creates: one
// program, its uniform locations and the two transform callbacks.
type VertexArrays struct {
	device Device
	conf   RendererConfig

	initialized bool
	initErr     error

	program            uint32
	mvpUniform         int32
	normalXformUniform int32
	colorUniform       int32

	mvpCallback    TransformFunc
	normalCallback TransformFunc

	live map[*VertexArray]struct{}
}

type options struct {
	color     [3]float32
	pointSize float32
}

type Option func(*options)

func WithColor(c [3]float32) Option {
	return func(o *options) { o.color = c }
}

// WithPointSize sets the size used whenever the array is drawn as points.
func WithPointSize(size float32) Option {
	return func(o *options) { o.pointSize = size }
}

func NewVertexArrays(device Device, conf RendererConfig) *VertexArrays {
	return &VertexArrays{
		device: device,
		conf:   conf,
		live:   make(map[*VertexArray]struct{}),
	}
}

func (va *VertexArrays) SetMVPCallback(fn TransformFunc) {
	va.mvpCallback = fn
}

func (va *VertexArrays) SetNormalCallback(fn TransformFunc) {
	va.normalCallback = fn
}

// Len returns the number of vertex arrays that still own GPU buffers.
func (va *VertexArrays) Len() int {
	return len(va.live)
}

// New uploads points and their reconstructed normals and returns a drawable
// vertex array. Input is fully validated before any GPU call.
func (va *VertexArrays) New(points geometry.Points, mode geometry.Mode, opts ...Option) (*VertexArray, error) {
	if err := points.Validate(); err != nil {
		return nil, &ArgError{Func: "new", Param: "points", Msg: "Expected a flat array of 3D points."}
	}
	if !mode.Valid() {
		return nil, &ArgError{Func: "new", Param: "mode", Msg: geometry.ModeHint}
	}
	o := options{color: DefaultColor, pointSize: defaultPointSize}
	for _, opt := range opts {
		opt(&o)
	}
	if !(o.pointSize > 0) {
		return nil, &ArgError{Func: "new", Param: "point_size", Msg: "Expected a positive point size."}
	}
	for _, c := range o.color {
		if c < 0 || c > 1 {
			Logger().Warn("color component outside [0, 1] is used as is", "color", o.color)
			break
		}
	}

	if err := va.ensureInit(); err != nil {
		return nil, err
	}

	v := &VertexArray{
		owner:     va,
		count:     points.VertexCount(),
		mode:      mode,
		color:     o.color,
		pointSize: o.pointSize,
	}
	va.bind(v, points, geometry.ComputeNormals(points, mode))
	if err := va.device.CheckError(); err != nil {
		v.Release()
		return nil, &GPUResourceError{Op: "upload vertex array", Err: err}
	}
	va.live[v] = struct{}{}
	Logger().Debug("vertex array uploaded", "vao", v.vao, "vertices", v.count, "mode", mode)
	return v, nil
}

// SetupDrawing activates the shared program and uploads both transforms.
// Call it once per frame before DrawWithoutSetup.
func (va *VertexArrays) SetupDrawing() error {
	if err := va.checkReady("setup_drawing"); err != nil {
		return err
	}
	va.device.UseProgram(va.program)
	va.mvpCallback(va.mvpUniform)
	va.normalCallback(va.normalXformUniform)
	return nil
}

// Close releases every live vertex array and the shared program.
func (va *VertexArrays) Close() {
	for v := range va.live {
		v.Release()
	}
	if va.initialized {
		va.device.DeleteProgram(va.program)
	}
	va.program = 0
	va.initialized = false
	va.initErr = nil
}

func (va *VertexArrays) ensureInit() error {
	if va.initialized {
		return nil
	}
	if va.initErr != nil {
		return va.initErr
	}
	program, err := va.device.BuildProgram(va.conf.ShaderSource, PassBark)
	if err != nil {
		va.initErr = &GPUResourceError{Op: "build bark program", Err: err}
		return va.initErr
	}
	va.program = program
	va.mvpUniform = va.device.UniformLocation(program, "mvp")
	va.normalXformUniform = va.device.UniformLocation(program, "normal_xform")
	va.colorUniform = va.device.UniformLocation(program, "color")
	if err := va.device.CheckError(); err != nil {
		va.device.DeleteProgram(program)
		va.initErr = &GPUResourceError{Op: "resolve bark uniforms", Err: err}
		return va.initErr
	}
	va.initialized = true
	Logger().Debug("bark program ready", "program", program)
	return nil
}

func (va *VertexArrays) bind(v *VertexArray, points, normals geometry.Points) {
	d := va.device
	v.vao = d.GenVertexArray()
	d.BindVertexArray(v.vao)

	v.vertexVbo = d.GenBuffer()
	d.UploadAttribute(v.vertexVbo, AttribPosition, points)

	v.normalVbo = d.GenBuffer()
	d.UploadAttribute(v.normalVbo, AttribNormal, normals)
}

func (va *VertexArrays) checkReady(op string) error {
	if !va.initialized {
		return &PreconditionError{Op: op, Msg: "shared program is not initialized; create a vertex array first"}
	}
	if va.mvpCallback == nil || va.normalCallback == nil {
		return &PreconditionError{Op: op, Msg: "transform callbacks are not set"}
	}
	return nil
}
