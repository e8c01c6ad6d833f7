// Package gfxtest provides a recording gfx.Device for tests.
package gfxtest

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/gotrees/pkg/geometry"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

// Draw is one recorded DrawArrays call with the state bound at the time.
type Draw struct {
	Mode      geometry.Mode
	First     int32
	Count     int32
	VAO       uint32
	Program   uint32
	PointSize float32
}

// Device records every call and keeps enough state to answer questions about
// what was uploaded and what is still allocated. It never talks to a GPU.
type Device struct {
	// BuildErr, when set, makes BuildProgram fail for every pass.
	BuildErr error
	// PendingErr is returned once by the next CheckError.
	PendingErr error

	Calls []Call
	Draws []Draw

	// Uploads maps a buffer to its data and attribute index.
	Uploads    map[uint32][]float32
	Attributes map[uint32]uint32
	Uniforms   map[int32]any
	Programs   map[uint32]string

	liveVAOs    map[uint32]bool
	liveBuffers map[uint32]bool
	locations   map[string]int32

	nextID    uint32
	program   uint32
	vao       uint32
	pointSize float32
}

func NewDevice() *Device {
	return &Device{
		Uploads:     make(map[uint32][]float32),
		Attributes:  make(map[uint32]uint32),
		Uniforms:    make(map[int32]any),
		Programs:    make(map[uint32]string),
		liveVAOs:    make(map[uint32]bool),
		liveBuffers: make(map[uint32]bool),
		locations:   make(map[string]int32),
		pointSize:   1,
	}
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

// Count returns how many times the named call was recorded.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded call names in order.
func (d *Device) Names() []string {
	out := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		out[i] = c.Name
	}
	return out
}

// Reset forgets recorded calls and draws but keeps allocations.
func (d *Device) Reset() {
	d.Calls = nil
	d.Draws = nil
}

func (d *Device) LiveVertexArrays() int { return len(d.liveVAOs) }

func (d *Device) LiveBuffers() int { return len(d.liveBuffers) }

func (d *Device) LivePrograms() int { return len(d.Programs) }

// Location returns the location handed out for name, or -1.
func (d *Device) Location(program uint32, name string) int32 {
	if loc, ok := d.locations[fmt.Sprintf("%d/%s", program, name)]; ok {
		return loc
	}
	return -1
}

func (d *Device) BuildProgram(source, pass string) (uint32, error) {
	d.record("BuildProgram", pass)
	if d.BuildErr != nil {
		return 0, d.BuildErr
	}
	p := d.id()
	d.Programs[p] = pass
	return p, nil
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation", program, name)
	key := fmt.Sprintf("%d/%s", program, name)
	loc, ok := d.locations[key]
	if !ok {
		loc = int32(len(d.locations))
		d.locations[key] = loc
	}
	return loc
}

func (d *Device) UseProgram(program uint32) {
	d.record("UseProgram", program)
	d.program = program
}

func (d *Device) DeleteProgram(program uint32) {
	d.record("DeleteProgram", program)
	delete(d.Programs, program)
}

func (d *Device) GenVertexArray() uint32 {
	vao := d.id()
	d.record("GenVertexArray", vao)
	d.liveVAOs[vao] = true
	return vao
}

func (d *Device) BindVertexArray(vao uint32) {
	d.record("BindVertexArray", vao)
	d.vao = vao
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.record("DeleteVertexArray", vao)
	delete(d.liveVAOs, vao)
}

func (d *Device) GenBuffer() uint32 {
	b := d.id()
	d.record("GenBuffer", b)
	d.liveBuffers[b] = true
	return b
}

func (d *Device) UploadAttribute(buffer, index uint32, data []float32) {
	d.record("UploadAttribute", buffer, index, len(data))
	d.Uploads[buffer] = slices.Clone(data)
	d.Attributes[buffer] = index
}

func (d *Device) DeleteBuffer(buffer uint32) {
	d.record("DeleteBuffer", buffer)
	delete(d.liveBuffers, buffer)
}

func (d *Device) Uniform3f(location int32, v [3]float32) {
	d.record("Uniform3f", location, v)
	d.Uniforms[location] = v
}

func (d *Device) Uniform4f(location int32, v [4]float32) {
	d.record("Uniform4f", location, v)
	d.Uniforms[location] = v
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	d.record("UniformMatrix4", location, m)
	d.Uniforms[location] = m
}

func (d *Device) PointSize(size float32) {
	d.record("PointSize", size)
	d.pointSize = size
}

func (d *Device) DrawArrays(mode geometry.Mode, first, count int32) {
	d.record("DrawArrays", mode, first, count)
	d.Draws = append(d.Draws, Draw{
		Mode:      mode,
		First:     first,
		Count:     count,
		VAO:       d.vao,
		Program:   d.program,
		PointSize: d.pointSize,
	})
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
}

func (d *Device) Clear(r, g, b, a float32) {
	d.record("Clear", r, g, b, a)
}

func (d *Device) CheckError() error {
	d.record("CheckError")
	err := d.PendingErr
	d.PendingErr = nil
	return err
}
