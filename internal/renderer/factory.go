package renderer

import (
	"github.com/kjkrol/gotrees/internal/luarender"
	"github.com/kjkrol/gotrees/pkg/gfx"
)

// NewRendererFactory builds the GL device and the Lua renderer once the
// window's context is current.
func NewRendererFactory(opts luarender.Options) gfx.RendererFactory {
	return func(w *gfx.Window) (gfx.Renderer, error) {
		device, err := NewDevice()
		if err != nil {
			return nil, err
		}
		r, err := luarender.New(device, opts)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}
