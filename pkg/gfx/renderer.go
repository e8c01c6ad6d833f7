package gfx

// Renderer draws one frame per call. An error stops the window loop.
type Renderer interface {
	Render(w *Window) error
	Close()
}

// RendererFactory runs after the window's GL context is current.
type RendererFactory func(w *Window) (Renderer, error)
