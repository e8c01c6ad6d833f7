package platform

type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

// PlatformWindowWrapper is a native window owning a current GL 3.3 core
// context. All methods must be called from the thread that created it.
type PlatformWindowWrapper interface {
	Show()
	Close()
	// NextEventTimeout waits up to timeoutMs for an event and returns
	// TimeoutEvent when none arrived.
	NextEventTimeout(timeoutMs int) Event
	BeginFrame()
	// EndFrame presents the frame.
	EndFrame()
	// Size returns the framebuffer size in pixels.
	Size() (int, int)
}
