package gfx

import (
	"github.com/kjkrol/gotrees/internal/platform"
)

type Event interface{}

type Expose struct{}
type KeyPress struct {
	Code  uint64
	Label string
}
type KeyRelease struct {
	Code  uint64
	Label string
}
type Resize struct {
	Width, Height int
}
type DestroyNotify struct{}
type UnexpectedEvent struct{}

func convert(event platform.Event) Event {
	switch e := event.(type) {
	case platform.Expose:
		return Expose{}
	case platform.KeyPress:
		return KeyPress{Code: e.Code, Label: e.Label}
	case platform.KeyRelease:
		return KeyRelease{Code: e.Code, Label: e.Label}
	case platform.Resize:
		return Resize{Width: e.Width, Height: e.Height}
	case platform.DestroyNotify:
		return DestroyNotify{}
	default:
		return UnexpectedEvent{}
	}
}
