package luagfx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/kjkrol/gotrees/pkg/geometry"
	"github.com/kjkrol/gotrees/pkg/gfx"
	"github.com/kjkrol/gotrees/pkg/gfx/gfxtest"
)

type fixture struct {
	L      *lua.LState
	dev    *gfxtest.Device
	arrays *gfx.VertexArrays
	lines  *gfx.Lines
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dev := gfxtest.NewDevice()
	conf := gfx.RendererConfig{ShaderSource: "shader"}
	arrays := gfx.NewVertexArrays(dev, conf)
	lines := gfx.NewLines(dev, conf)
	ident := func(loc int32) { dev.UniformMatrix4(loc, mgl32.Ident4()) }
	arrays.SetMVPCallback(ident)
	arrays.SetNormalCallback(ident)
	lines.SetTransformCallback(ident)

	L := lua.NewState()
	t.Cleanup(L.Close)
	Register(L, arrays, lines)
	return &fixture{L: L, dev: dev, arrays: arrays, lines: lines}
}

func (f *fixture) run(t *testing.T, script string) {
	t.Helper()
	require.NoError(t, f.L.DoString(script))
}

func (f *fixture) fail(t *testing.T, script string) error {
	t.Helper()
	err := f.L.DoString(script)
	require.Error(t, err)
	return err
}

const triangle = `{0,0,0, 1,0,0, 0,1,0}`

func TestNew_CreatesInstanceWithDefaults(t *testing.T) {
	f := newFixture(t)

	f.run(t, `v = VertexArray:new(`+triangle+`, 'triangles')`)

	ud, ok := f.L.GetGlobal("v").(*lua.LUserData)
	require.True(t, ok)
	v, ok := ud.Value.(*gfx.VertexArray)
	require.True(t, ok)
	assert.Equal(t, 3, v.VertexCount())
	assert.Equal(t, geometry.ModeTriangles, v.Mode())
	assert.Equal(t, gfx.DefaultColor, v.Color())
	assert.Equal(t, 1, f.arrays.Len())
}

func TestNew_ReadsColorAndNumericStrings(t *testing.T) {
	f := newFixture(t)

	f.run(t, `v = VertexArray:new({'0', '0.5', 0}, 'points', {0.1, '0.2', 0.3}, 4)`)

	v := f.L.GetGlobal("v").(*lua.LUserData).Value.(*gfx.VertexArray)
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, v.Color())
	assert.Equal(t, float32(4), v.PointSize())
}

func TestNew_ReadsHexNumericStrings(t *testing.T) {
	f := newFixture(t)

	f.run(t, `v = VertexArray:new({'0x10', ' 2 ', 0}, 'points', {'0x0', 1, 0})`)

	v := f.L.GetGlobal("v").(*lua.LUserData).Value.(*gfx.VertexArray)
	assert.Equal(t, [3]float32{0, 1, 0}, v.Color())
	var uploads [][]float32
	for _, data := range f.dev.Uploads {
		uploads = append(uploads, data)
	}
	assert.Contains(t, uploads, []float32{16, 2, 0})
}

func TestNew_IgnoresPointSizeOutsidePointsMode(t *testing.T) {
	f := newFixture(t)

	f.run(t, `v = VertexArray:new(`+triangle+`, 'triangles', nil, 9)`)

	v := f.L.GetGlobal("v").(*lua.LUserData).Value.(*gfx.VertexArray)
	assert.Equal(t, float32(1), v.PointSize())
	assert.Equal(t, gfx.DefaultColor, v.Color())
}

func TestNew_StopsAtFirstHole(t *testing.T) {
	f := newFixture(t)

	f.run(t, `v = VertexArray:new({0,0,0, 1,1,1, nil, 5,5,5}, 'points')`)

	v := f.L.GetGlobal("v").(*lua.LUserData).Value.(*gfx.VertexArray)
	assert.Equal(t, 2, v.VertexCount())
}

func TestNew_ReadsIndexableUserValues(t *testing.T) {
	f := newFixture(t)

	f.run(t, `
		local src = setmetatable({}, {__index = function(_, i)
			if i <= 6 then return i end
		end})
		v = VertexArray:new(src, 'lines')
	`)

	v := f.L.GetGlobal("v").(*lua.LUserData).Value.(*gfx.VertexArray)
	assert.Equal(t, 2, v.VertexCount())
}

func TestNew_ArgumentErrors(t *testing.T) {
	cases := []struct {
		name   string
		script string
		want   []string
	}{
		{"not indexable", `VertexArray:new(42, 'points')`,
			[]string{"bad argument #2", "expected an indexable value such as a table"}},
		{"string instead of table", `VertexArray:new('abcdef', 'points')`,
			[]string{"bad argument #2", "expected an indexable value such as a table"}},
		{"non numeric element", `VertexArray:new({1, 2, 'x'}, 'points')`,
			[]string{"bad argument #2", "Expected a flat array."}},
		{"nan string element", `VertexArray:new({'nan', 0, 0}, 'points')`,
			[]string{"bad argument #2", "Expected a flat array."}},
		{"inf string element", `VertexArray:new({'inf', 0, 0}, 'points')`,
			[]string{"bad argument #2", "Expected a flat array."}},
		{"digit separator element", `VertexArray:new({'1_0', 0, 0}, 'points')`,
			[]string{"bad argument #2", "Expected a flat array."}},
		{"infinite element", `VertexArray:new({1/0, 0, 0}, 'points')`,
			[]string{"bad argument #2", "Expected a flat array."}},
		{"partial vertex", `VertexArray:new({1, 2, 3, 4}, 'points')`,
			[]string{"bad argument #2", "Expected a flat array of 3D points."}},
		{"unknown mode", `VertexArray:new(` + triangle + `, 'quads')`,
			[]string{"bad argument #3", geometry.ModeHint}},
		{"mode not a string", `VertexArray:new(` + triangle + `, 7)`,
			[]string{"bad argument #3", "string expected, got number"}},
		{"bad color", `VertexArray:new(` + triangle + `, 'triangles', {1, 'red', 0})`,
			[]string{"bad argument #4", "Expected color to contain numeric values"}},
		{"nan color", `VertexArray:new(` + triangle + `, 'triangles', {'nan', 0, 0})`,
			[]string{"bad argument #4", "Expected color to contain numeric values"}},
		{"short color", `VertexArray:new(` + triangle + `, 'triangles', {1, 0})`,
			[]string{"bad argument #4", "Expected color to contain numeric values"}},
		{"non positive point size", `VertexArray:new(` + triangle + `, 'points', nil, 0)`,
			[]string{"bad argument #5", "Expected a positive point size."}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			err := f.fail(t, tc.script)

			for _, want := range tc.want {
				assert.Contains(t, err.Error(), want)
			}
			assert.Zero(t, f.arrays.Len())
			assert.Zero(t, f.dev.LiveVertexArrays())
		})
	}
}

func TestNew_ArgumentErrorIsCatchableByPcall(t *testing.T) {
	f := newFixture(t)

	f.run(t, `ok, msg = pcall(VertexArray.new, VertexArray, {1, 2}, 'points')`)

	assert.Equal(t, lua.LFalse, f.L.GetGlobal("ok"))
	assert.Contains(t, f.L.GetGlobal("msg").String(), "Expected a flat array of 3D points.")
}

func TestNew_GPUFailureUnwrapsToTypedError(t *testing.T) {
	f := newFixture(t)
	f.dev.BuildErr = assert.AnError

	err := f.fail(t, `VertexArray:new(`+triangle+`, 'triangles')`)

	inner := Unwrap(err)
	assert.ErrorIs(t, inner, gfx.ErrGPUResource)
	assert.ErrorIs(t, inner, assert.AnError)
}

func TestDraw_UsesStoredModeOrStringOverride(t *testing.T) {
	f := newFixture(t)
	f.run(t, `v = VertexArray:new(`+triangle+`, 'triangles')`)
	f.dev.Reset()

	f.run(t, `
		v:draw()
		v:draw('points')
		v:draw(5)
		v:draw()
	`)

	require.Len(t, f.dev.Draws, 4)
	assert.Equal(t, geometry.ModeTriangles, f.dev.Draws[0].Mode)
	assert.Equal(t, geometry.ModePoints, f.dev.Draws[1].Mode)
	assert.Equal(t, geometry.ModeTriangles, f.dev.Draws[2].Mode)
	assert.Equal(t, geometry.ModeTriangles, f.dev.Draws[3].Mode)
}

func TestDraw_RejectsUnknownOverride(t *testing.T) {
	f := newFixture(t)
	f.run(t, `v = VertexArray:new(`+triangle+`, 'triangles')`)
	f.dev.Reset()

	err := f.fail(t, `v:draw('fan')`)

	assert.Contains(t, err.Error(), "bad argument #2")
	assert.Contains(t, err.Error(), geometry.ModeHint)
	assert.Empty(t, f.dev.Draws)
}

func TestSetupDrawing_SharesStateAcrossDraws(t *testing.T) {
	f := newFixture(t)
	f.run(t, `
		arrays = {
			VertexArray:new(`+triangle+`, 'triangles'),
			VertexArray:new(`+triangle+`, 'points'),
		}
	`)
	f.dev.Reset()

	f.run(t, `
		VertexArray:setup_drawing()
		for _, v in ipairs(arrays) do
			v:draw_without_setup()
		end
	`)

	assert.Equal(t, 1, f.dev.Count("UseProgram"))
	assert.Equal(t, 2, f.dev.Count("UniformMatrix4"))
	require.Len(t, f.dev.Draws, 2)
	assert.Equal(t, geometry.ModePoints, f.dev.Draws[1].Mode)
}

func TestSetupDrawing_BeforeAnyInstanceIsPrecondition(t *testing.T) {
	f := newFixture(t)

	err := f.fail(t, `VertexArray:setup_drawing()`)

	assert.ErrorIs(t, Unwrap(err), gfx.ErrPrecondition)
}

func TestRelease_LaterDrawFails(t *testing.T) {
	f := newFixture(t)
	f.run(t, `
		v = VertexArray:new(`+triangle+`, 'triangles')
		v:release()
		v:release()
		s = tostring(v)
	`)

	assert.Zero(t, f.dev.LiveVertexArrays())
	assert.Contains(t, f.L.GetGlobal("s").String(), "released")

	err := f.fail(t, `v:draw()`)
	assert.ErrorIs(t, Unwrap(err), gfx.ErrPrecondition)
}

func TestToString(t *testing.T) {
	f := newFixture(t)

	f.run(t, `s = tostring(VertexArray:new(`+triangle+`, 'triangle strip'))`)

	assert.Equal(t, "VertexArray(triangle strip, 3 vertices)", f.L.GetGlobal("s").String())
}

func TestRegister_Twice(t *testing.T) {
	f := newFixture(t)
	before := f.L.GetGlobal("VertexArray")

	Register(f.L, f.arrays, f.lines)

	assert.Same(t, before.(*lua.LTable), f.L.GetGlobal("VertexArray").(*lua.LTable))
}

func TestUnwrap_PassesThroughOtherErrors(t *testing.T) {
	f := newFixture(t)

	err := f.fail(t, `error('boom')`)

	assert.Same(t, err, Unwrap(err))
}
