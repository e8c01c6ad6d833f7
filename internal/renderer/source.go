package renderer

import "strings"

// buildShaderSource prefixes the single-source shader with the version and
// the stage and pass defines it branches on.
func buildShaderSource(source, stage, pass string) string {
	var sb strings.Builder
	sb.WriteString("#version 330 core\n")
	sb.WriteString("#define " + stage + "\n")
	sb.WriteString("#define " + pass + "\n")
	sb.WriteString(source)
	if !strings.HasSuffix(source, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}
