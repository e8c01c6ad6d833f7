// Package assets holds the built-in shader and render script.
package assets

import _ "embed"

//go:embed shader.glsl
var ShaderSource string

//go:embed render.lua
var RenderScript string
