package gfx

import (
	"context"
	"errors"
	"math"
	"runtime"
	"time"

	"github.com/kjkrol/gotrees/internal/platform"
)

type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

func (w WindowConfig) convert() platform.WindowConfig {
	return platform.WindowConfig{Width: w.Width, Height: w.Height, Title: w.Title}
}

// PlatformOpener opens a native window and makes its GL context current.
type PlatformOpener func(conf platform.WindowConfig) (platform.PlatformWindowWrapper, error)

type Window struct {
	platformWinWrapper platform.PlatformWindowWrapper
	renderer           Renderer
	refreshDelay       time.Duration
	eventsPerFrame     int
	width              int
	height             int
	ctx                context.Context
	cancel             context.CancelFunc
}

const maxEventWait = 50 * time.Millisecond

// NewWindow opens the platform window and creates its renderer on the
// calling thread.
func NewWindow(conf WindowConfig, open PlatformOpener, factory RendererFactory) (*Window, error) {
	if open == nil {
		return nil, errors.New("platform opener is required")
	}
	wrapper, err := open(conf.convert())
	if err != nil {
		return nil, err
	}
	window := &Window{
		platformWinWrapper: wrapper,
		width:              conf.Width,
		height:             conf.Height,
	}
	if width, height := wrapper.Size(); width > 0 && height > 0 {
		window.width, window.height = width, height
	}
	window.ctx, window.cancel = context.WithCancel(context.Background())
	if factory != nil {
		renderer, err := factory(window)
		if err != nil {
			wrapper.Close()
			return nil, err
		}
		window.renderer = renderer
	}
	return window, nil
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (int, int) {
	if w == nil {
		return 0, 0
	}
	return w.width, w.height
}

func (w *Window) Show() {
	w.platformWinWrapper.Show()
}

func (w *Window) RefreshRate(fps int) {
	if fps <= 0 {
		fps = 60
	}
	ms := int(math.Abs(float64(1000.0 / fps)))
	w.refreshDelay = time.Duration(ms) * time.Millisecond
}

func (w *Window) Stop() {
	w.cancel()
}

// Close releases the renderer before the platform window so GPU objects are
// deleted while the context is still alive.
func (w *Window) Close() {
	if w.renderer != nil {
		w.renderer.Close()
		w.renderer = nil
	}
	w.platformWinWrapper.Close()
}

// EventsPerFrame caps the events handled between two frames. Non-positive
// values select DefaultEventsPerFrame.
func (w *Window) EventsPerFrame(n int) {
	w.eventsPerFrame = n
}

// ListenEvents runs the frame loop until Stop is called or a frame fails.
// Resize events update Size before they reach handleEvent.
func (w *Window) ListenEvents(handleEvent func(event Event)) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if handleEvent == nil {
		handleEvent = func(Event) {}
	}
	poll := func(timeoutMs int) (Event, bool) {
		platformEvent := w.platformWinWrapper.NextEventTimeout(timeoutMs)
		if _, ok := platformEvent.(platform.TimeoutEvent); ok {
			return nil, false
		}
		return convert(platformEvent), true
	}
	handle := func(event Event) {
		if r, ok := event.(Resize); ok {
			w.width, w.height = r.Width, r.Height
		}
		handleEvent(event)
	}
	updater := newRenderUpdater(w.refreshDelay, w.renderFrame)

	for {
		select {
		case <-w.ctx.Done():
			return nil
		default:
			drainEvents(poll, handle, updater.timeout(maxEventWait), w.eventsPerFrame)
			if w.ctx.Err() != nil {
				return nil
			}
			if err := updater.run(); err != nil {
				return err
			}
		}
	}
}

func (w *Window) renderFrame() error {
	w.platformWinWrapper.BeginFrame()
	if w.renderer != nil {
		if err := w.renderer.Render(w); err != nil {
			return err
		}
	}
	w.platformWinWrapper.EndFrame()
	return nil
}
