package luagfx

import (
	"math"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/kjkrol/gotrees/pkg/geometry"
	"github.com/kjkrol/gotrees/pkg/gfx"
)

// indexable reads a Lua value by integer key. Tables are read raw; any other
// value goes through its __index metamethod.
type indexable struct {
	L *lua.LState
	v lua.LValue
}

var _ geometry.IndexedReadable[lua.LValue] = indexable{}

func (x indexable) At(i int) (lua.LValue, bool) {
	var lv lua.LValue
	if tb, ok := x.v.(*lua.LTable); ok {
		lv = tb.RawGetInt(i)
	} else {
		lv = x.L.GetTable(x.v, lua.LNumber(i))
	}
	return lv, lv != lua.LNil
}

func argError(fn string, arg int, msg string) *gfx.ArgError {
	return &gfx.ArgError{Func: fn, Arg: arg, Msg: msg}
}

// requireIndexable accepts tables and values whose metatable has __index.
// Strings are rejected even though the string library gives them one.
func requireIndexable(L *lua.LState, fn string, arg int) (lua.LValue, error) {
	v := L.Get(arg)
	switch v.(type) {
	case *lua.LTable:
		return v, nil
	case lua.LString:
		return nil, argError(fn, arg, "expected an indexable value such as a table")
	}
	if L.GetMetaField(v, "__index") == lua.LNil {
		return nil, argError(fn, arg, "expected an indexable value such as a table")
	}
	return v, nil
}

// toNumber coerces numbers and numeric strings the way the runtime does.
// Go-only literal forms and non-finite results are not numeric.
func toNumber(v lua.LValue) (float64, bool) {
	if s, ok := v.(lua.LString); ok && !luaNumeral(string(s)) {
		return 0, false
	}
	if !lua.LVCanConvToNumber(v) {
		return 0, false
	}
	f := float64(lua.LVAsNumber(v))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// luaNumeral rejects spellings strconv accepts but Lua does not: digit
// separators and binary or octal prefixes.
func luaNumeral(s string) bool {
	if strings.ContainsRune(s, '_') {
		return false
	}
	s = strings.TrimLeft(strings.TrimSpace(s), "+-")
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'b', 'B', 'o', 'O':
			return false
		}
	}
	return true
}

// toFlatFloats reads v from index 1 until the first nil. Every element must be
// numeric.
func toFlatFloats(L *lua.LState, fn string, arg int, v lua.LValue) (geometry.Points, error) {
	values := geometry.Collect[lua.LValue](indexable{L: L, v: v})
	out := make(geometry.Points, 0, len(values))
	for _, lv := range values {
		f, ok := toNumber(lv)
		if !ok {
			return nil, argError(fn, arg, "Expected a flat array.")
		}
		out = append(out, float32(f))
	}
	return out, nil
}

func resolveModeName(fn string, arg int, name string) (geometry.Mode, error) {
	m, err := geometry.ParseMode(name)
	if err != nil {
		return 0, argError(fn, arg, geometry.ModeHint)
	}
	return m, nil
}

// optModeOverride returns the call-scoped mode at arg. Only a string triggers
// an override; any other value keeps the stored mode.
func optModeOverride(L *lua.LState, fn string, arg int) (*geometry.Mode, error) {
	name, ok := L.Get(arg).(lua.LString)
	if !ok {
		return nil, nil
	}
	m, err := resolveModeName(fn, arg, string(name))
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// optColor reads an {r, g, b} table at arg. Non-table values leave ok false.
func optColor(L *lua.LState, fn string, arg int) (color [3]float32, ok bool, err error) {
	tb, isTable := L.Get(arg).(*lua.LTable)
	if !isTable {
		return color, false, nil
	}
	for i := range color {
		f, isNum := toNumber(tb.RawGetInt(i + 1))
		if !isNum {
			return color, false, argError(fn, arg, "Expected color to contain numeric values")
		}
		color[i] = float32(f)
	}
	return color, true, nil
}

// checkPoint reads an {x, y, z} value at arg, honoring metamethods.
func checkPoint(L *lua.LState, fn string, arg int) ([3]float32, error) {
	var pt [3]float32
	if L.GetTop() < arg {
		return pt, argError(fn, arg, "expected an {x, y, z} point")
	}
	v := L.Get(arg)
	if _, err := requireIndexable(L, fn, arg); err != nil {
		return pt, argError(fn, arg, "expected an {x, y, z} point")
	}
	for i := range pt {
		lv := L.GetTable(v, lua.LNumber(i+1))
		f, ok := toNumber(lv)
		if !ok {
			return pt, argError(fn, arg, "expected an {x, y, z} point")
		}
		pt[i] = float32(f)
	}
	return pt, nil
}
