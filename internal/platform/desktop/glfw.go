// Package desktop implements platform.PlatformWindowWrapper with glfw.
package desktop

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/kjkrol/gotrees/internal/platform"
)

type glfwWindowWrapper struct {
	window *glfw.Window
	queue  platform.Queue
}

var _ platform.PlatformWindowWrapper = (*glfwWindowWrapper)(nil)

// NewPlatformWindowWrapper opens a hidden window with a forward-compatible
// GL 3.3 core context and makes the context current. The calling goroutine
// stays locked to its OS thread until Close.
func NewPlatformWindowWrapper(conf platform.WindowConfig) (platform.PlatformWindowWrapper, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	window, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	w := &glfwWindowWrapper{window: window}
	window.SetKeyCallback(w.onKey)
	window.SetCloseCallback(func(*glfw.Window) { w.queue.Push(platform.DestroyNotify{}) })
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.queue.Push(platform.Resize{Width: width, Height: height})
	})
	window.SetRefreshCallback(func(*glfw.Window) { w.queue.Push(platform.Expose{}) })
	return w, nil
}

func (w *glfwWindowWrapper) onKey(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
	label := keyLabel(key, scancode)
	switch action {
	case glfw.Press:
		w.queue.Push(platform.KeyPress{Code: uint64(key), Label: label})
	case glfw.Release:
		w.queue.Push(platform.KeyRelease{Code: uint64(key), Label: label})
	}
}

func keyLabel(key glfw.Key, scancode int) string {
	switch key {
	case glfw.KeyEscape:
		return "Escape"
	case glfw.KeySpace:
		return "Space"
	case glfw.KeyEnter:
		return "Return"
	}
	return glfw.GetKeyName(key, scancode)
}

func (w *glfwWindowWrapper) Show() {
	w.window.Show()
}

func (w *glfwWindowWrapper) Close() {
	w.window.Destroy()
	glfw.Terminate()
	runtime.UnlockOSThread()
}

func (w *glfwWindowWrapper) NextEventTimeout(timeoutMs int) platform.Event {
	if w.queue.Len() == 0 {
		if timeoutMs > 0 {
			glfw.WaitEventsTimeout(float64(timeoutMs) / 1000)
		} else {
			glfw.PollEvents()
		}
	}
	if e, ok := w.queue.Pop(); ok {
		return e
	}
	return platform.TimeoutEvent{}
}

func (w *glfwWindowWrapper) BeginFrame() {}

func (w *glfwWindowWrapper) EndFrame() {
	w.window.SwapBuffers()
}

func (w *glfwWindowWrapper) Size() (int, int) {
	return w.window.GetFramebufferSize()
}
