package luarender

import (
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/kjkrol/gotrees/internal/config"
	"github.com/kjkrol/gotrees/pkg/gfx"
	"github.com/kjkrol/gotrees/pkg/luagfx"
)

// Background is the clear color of every frame.
var Background = [4]float32{0, 0.3, 0.1, 1}

type Options struct {
	ShaderSource string
	// Script is Lua source that returns the render table. ScriptName is used
	// as its chunk name in error messages.
	Script     string
	ScriptName string
	Tree       config.Tree
}

// Renderer runs a render script against a gfx.Device: the script's init once,
// then its draw every frame.
type Renderer struct {
	L      *lua.LState
	device gfx.Device
	arrays *gfx.VertexArrays
	lines  *gfx.Lines
	camera *Camera
}

var _ gfx.Renderer = (*Renderer)(nil)

func New(device gfx.Device, opts Options) (*Renderer, error) {
	conf := gfx.RendererConfig{ShaderSource: opts.ShaderSource}
	r := &Renderer{
		L:      lua.NewState(),
		device: device,
		arrays: gfx.NewVertexArrays(device, conf),
		lines:  gfx.NewLines(device, conf),
		camera: NewCamera(opts.Tree.IsTree2D, float32(opts.Tree.ZoomScale)),
	}
	r.arrays.SetMVPCallback(func(loc int32) { device.UniformMatrix4(loc, r.camera.MVP()) })
	r.arrays.SetNormalCallback(func(loc int32) { device.UniformMatrix4(loc, r.camera.NormalTransform()) })
	r.lines.SetTransformCallback(func(loc int32) { device.UniformMatrix4(loc, r.camera.MVP()) })

	setGlobals(r.L, opts.Tree)
	luagfx.Register(r.L, r.arrays, r.lines)

	if err := r.load(opts.Script, opts.ScriptName); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.call("init"); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func setGlobals(L *lua.LState, tree config.Tree) {
	L.SetGlobal("max_tree_height", lua.LNumber(tree.MaxTreeHeight))
	L.SetGlobal("branch_size_factor", lua.LNumber(tree.BranchSizeFactor))
	L.SetGlobal("is_tree_2d", lua.LBool(tree.IsTree2D))
	L.SetGlobal("max_ring_corners", lua.LNumber(tree.MaxRingCorners))
}

func (r *Renderer) load(script, name string) error {
	if name == "" {
		name = "render.lua"
	}
	fn, err := r.L.Load(strings.NewReader(script), name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	r.L.Push(fn)
	if err := r.L.PCall(0, 1, nil); err != nil {
		return fmt.Errorf("run %s: %w", name, luagfx.Unwrap(err))
	}
	ret := r.L.Get(-1)
	r.L.Pop(1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return fmt.Errorf("%s must return a table, got %s", name, ret.Type())
	}
	if _, ok := tbl.RawGetString("draw").(*lua.LFunction); !ok {
		return fmt.Errorf("%s: render.draw is not a function", name)
	}
	r.L.SetGlobal("render", tbl)
	return nil
}

// call runs render.<fn>. Script errors are logged and swallowed so one bad
// frame does not end the program; GPU and precondition failures are returned.
func (r *Renderer) call(fn string) error {
	tbl, ok := r.L.GetGlobal("render").(*lua.LTable)
	if !ok {
		return fmt.Errorf("render.%s: render table is not loaded", fn)
	}
	f, ok := tbl.RawGetString(fn).(*lua.LFunction)
	if !ok {
		gfx.Logger().Debug("render function not defined", "fn", fn)
		return nil
	}
	err := r.L.CallByParam(lua.P{Fn: f, NRet: 0, Protect: true})
	if err == nil {
		return nil
	}
	inner := luagfx.Unwrap(err)
	if errors.Is(inner, gfx.ErrGPUResource) || errors.Is(inner, gfx.ErrPrecondition) {
		return fmt.Errorf("render.%s: %w", fn, inner)
	}
	gfx.Logger().Warn("error in render script", "fn", fn, "err", inner)
	return nil
}

// Frame draws one frame into a viewport of the given size.
func (r *Renderer) Frame(width, height int) error {
	r.device.Viewport(0, 0, int32(width), int32(height))
	r.device.Clear(Background[0], Background[1], Background[2], Background[3])
	r.camera.Advance()
	r.camera.Update(width, height)
	return r.call("draw")
}

func (r *Renderer) Render(w *gfx.Window) error {
	width, height := w.Size()
	return r.Frame(width, height)
}

func (r *Renderer) Camera() *Camera { return r.camera }

// Close releases every GPU object the script created and the Lua state.
func (r *Renderer) Close() {
	if r.L == nil {
		return
	}
	r.arrays.Close()
	r.lines.Close()
	r.L.Close()
	r.L = nil
}
