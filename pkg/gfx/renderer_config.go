package gfx

// Shader pass defines understood by RendererConfig.ShaderSource.
const (
	PassBark  = "PASS_BARK"
	PassSolid = "PASS_SOLID"
)

// RendererConfig describes GPU shader inputs provided by the caller.
// ShaderSource must be a single-source shader that supports:
// - stage defines: VERTEX, FRAGMENT
// - pass defines: PASS_BARK, PASS_SOLID
// - uniforms: PASS_BARK expects mvp, normal_xform, color; PASS_SOLID expects vp, color
// - attributes: position at AttribPosition, normal at AttribNormal
type RendererConfig struct {
	ShaderSource string
}
