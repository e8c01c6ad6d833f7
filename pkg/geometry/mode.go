package geometry

import (
	"errors"
	"fmt"
)

// Mode is the primitive topology used to group consecutive vertices.
type Mode uint8

const (
	ModeTriangleStrip Mode = iota
	ModeTriangles
	ModePoints
	ModeLines
)

// Modes lists every recognized mode in declaration order.
var Modes = [...]Mode{ModeTriangleStrip, ModeTriangles, ModePoints, ModeLines}

var modeNames = [...]string{
	ModeTriangleStrip: "triangle strip",
	ModeTriangles:     "triangles",
	ModePoints:        "points",
	ModeLines:         "lines",
}

// ErrUnknownMode is returned by ParseMode for a name outside the four modes.
var ErrUnknownMode = errors.New("unknown draw mode")

// ModeHint is the user-facing message for an unrecognized mode name.
const ModeHint = "Expected mode to be 'triangle strip', 'triangles', 'points', or 'lines'."

// String returns the script-facing name, e.g. "triangle strip".
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Valid reports whether m is one of the four draw modes.
func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

// ParseMode matches name exactly against the script-facing mode names.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes {
		if modeNames[m] == name {
			return m, nil
		}
	}
	return 0, ErrUnknownMode
}

// Resolve returns override when present and def otherwise. The override only
// applies to a single call.
func Resolve(def Mode, override *Mode) Mode {
	if override != nil {
		return *override
	}
	return def
}
