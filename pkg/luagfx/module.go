package luagfx

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/kjkrol/gotrees/pkg/geometry"
	"github.com/kjkrol/gotrees/pkg/gfx"
)

const (
	VertexArrayTypeName = "Trees.VertexArray"
	errorTypeName       = "Trees.Error"
)

// Argument positions of VertexArray:new. Position 1 is the VertexArray table.
var newArgPositions = map[string]int{
	"points":     2,
	"mode":       3,
	"color":      4,
	"point_size": 5,
}

type binding struct {
	arrays *gfx.VertexArrays
	lines  *gfx.Lines
}

// Register installs VertexArray and lines into L. A second call on the same
// state does nothing.
func Register(L *lua.LState, arrays *gfx.VertexArrays, lines *gfx.Lines) {
	if L.GetTypeMetatable(VertexArrayTypeName) != lua.LNil {
		return
	}
	b := &binding{arrays: arrays, lines: lines}

	errMt := L.NewTypeMetatable(errorTypeName)
	L.SetField(errMt, "__tostring", L.NewFunction(errorToString))

	mt := L.NewTypeMetatable(VertexArrayTypeName)
	L.SetField(mt, "__index", mt)
	L.SetFuncs(mt, map[string]lua.LGFunction{
		"draw":               b.draw,
		"draw_without_setup": b.drawWithoutSetup,
		"release":            b.release,
		"__tostring":         vertexArrayToString,
	})

	cls := L.NewTable()
	L.SetFuncs(cls, map[string]lua.LGFunction{
		"new":           b.newVertexArray,
		"setup_drawing": b.setupDrawing,
	})
	L.SetGlobal("VertexArray", cls)

	lt := L.NewTable()
	L.SetFuncs(lt, map[string]lua.LGFunction{
		"add":       b.linesAdd,
		"draw_all":  b.linesDrawAll,
		"reset":     b.linesReset,
		"set_scale": b.linesSetScale,
	})
	L.SetGlobal("lines", lt)
}

// Unwrap returns the Go error carried by a Lua error raised from this
// package, or err itself.
func Unwrap(err error) error {
	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) {
		return err
	}
	if ud, ok := apiErr.Object.(*lua.LUserData); ok {
		if inner, ok := ud.Value.(error); ok {
			return inner
		}
	}
	return err
}

// raise never returns. Argument errors become regular Lua errors; anything
// else travels as a userdata so Unwrap can recover it.
func raise(L *lua.LState, err error) {
	var argErr *gfx.ArgError
	if errors.As(err, &argErr) && argErr.Arg > 0 {
		L.ArgError(argErr.Arg, argErr.Msg)
		return
	}
	ud := L.NewUserData()
	ud.Value = err
	L.SetMetatable(ud, L.GetTypeMetatable(errorTypeName))
	L.Error(ud, 1)
}

func errorToString(L *lua.LState) int {
	ud := L.CheckUserData(1)
	if err, ok := ud.Value.(error); ok {
		L.Push(lua.LString(err.Error()))
	} else {
		L.Push(lua.LString("error"))
	}
	return 1
}

func (b *binding) newVertexArray(L *lua.LState) int {
	const fn = "new"
	src, err := requireIndexable(L, fn, 2)
	if err != nil {
		raise(L, err)
	}
	points, err := toFlatFloats(L, fn, 2, src)
	if err != nil {
		raise(L, err)
	}

	name, ok := L.Get(3).(lua.LString)
	if !ok {
		raise(L, argError(fn, 3, "string expected, got "+L.Get(3).Type().String()))
	}
	mode, err := resolveModeName(fn, 3, string(name))
	if err != nil {
		raise(L, err)
	}

	var opts []gfx.Option
	color, hasColor, err := optColor(L, fn, 4)
	if err != nil {
		raise(L, err)
	}
	if hasColor {
		opts = append(opts, gfx.WithColor(color))
	}
	if size, ok := toNumber(L.Get(5)); ok && mode == geometry.ModePoints {
		opts = append(opts, gfx.WithPointSize(float32(size)))
	}

	v, err := b.arrays.New(points, mode, opts...)
	if err != nil {
		var argErr *gfx.ArgError
		if errors.As(err, &argErr) && argErr.Arg == 0 {
			argErr.Arg = newArgPositions[argErr.Param]
		}
		raise(L, err)
	}

	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(VertexArrayTypeName))
	L.Push(ud)
	return 1
}

func (b *binding) setupDrawing(L *lua.LState) int {
	if err := b.arrays.SetupDrawing(); err != nil {
		raise(L, err)
	}
	return 0
}

func (b *binding) draw(L *lua.LState) int {
	v := checkVertexArray(L, "draw")
	override, err := optModeOverride(L, "draw", 2)
	if err != nil {
		raise(L, err)
	}
	if err := v.Draw(override); err != nil {
		raise(L, err)
	}
	return 0
}

func (b *binding) drawWithoutSetup(L *lua.LState) int {
	v := checkVertexArray(L, "draw_without_setup")
	override, err := optModeOverride(L, "draw_without_setup", 2)
	if err != nil {
		raise(L, err)
	}
	if err := v.DrawWithoutSetup(override); err != nil {
		raise(L, err)
	}
	return 0
}

func (b *binding) release(L *lua.LState) int {
	checkVertexArray(L, "release").Release()
	return 0
}

func checkVertexArray(L *lua.LState, fn string) *gfx.VertexArray {
	ud, ok := L.Get(1).(*lua.LUserData)
	if ok {
		if v, ok := ud.Value.(*gfx.VertexArray); ok {
			return v
		}
	}
	raise(L, argError(fn, 1, "VertexArray expected"))
	return nil
}

func vertexArrayToString(L *lua.LState) int {
	v := checkVertexArray(L, "__tostring")
	state := ""
	if v.Released() {
		state = ", released"
	}
	L.Push(lua.LString(fmt.Sprintf("VertexArray(%s, %d vertices%s)", v.Mode(), v.VertexCount(), state)))
	return 1
}

func (b *binding) linesAdd(L *lua.LState) int {
	from, err := checkPoint(L, "add", 1)
	if err != nil {
		raise(L, err)
	}
	to, err := checkPoint(L, "add", 2)
	if err != nil {
		raise(L, err)
	}
	b.lines.Add(from, to)
	return 0
}

func (b *binding) linesDrawAll(L *lua.LState) int {
	if err := b.lines.DrawAll(); err != nil {
		raise(L, err)
	}
	return 0
}

func (b *binding) linesReset(L *lua.LState) int {
	b.lines.Reset()
	return 0
}

func (b *binding) linesSetScale(L *lua.LState) int {
	b.lines.SetScale(float32(L.CheckNumber(1)))
	return 0
}
