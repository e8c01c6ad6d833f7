package geometry

import "errors"

// ComponentsPerVertex is the number of floats that encode one vertex position.
const ComponentsPerVertex = 3

// ErrNotTriples is returned by Validate for a buffer with a partial vertex.
var ErrNotTriples = errors.New("point buffer length is not a multiple of 3")

// Points is a flat point buffer: x, y, z of each vertex in order.
type Points []float32

// VertexCount returns the number of whole vertices in p.
func (p Points) VertexCount() int {
	return len(p) / ComponentsPerVertex
}

// Validate rejects buffers that do not hold whole vertices. Partial trailing
// vertices are never truncated.
func (p Points) Validate() error {
	if len(p)%ComponentsPerVertex != 0 {
		return ErrNotTriples
	}
	return nil
}

// Vertex returns the i-th vertex position.
func (p Points) Vertex(i int) [3]float32 {
	j := i * ComponentsPerVertex
	return [3]float32{p[j], p[j+1], p[j+2]}
}
