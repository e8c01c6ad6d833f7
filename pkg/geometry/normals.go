package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ComputeNormals derives one normal per vertex of points. The first two
// vertices get a zero normal; every later vertex gets the unit normal of the
// triangle it closes with its two predecessors. Strip topology alternates its
// winding, so the sign flips after each strip triangle.
func ComputeNormals(points Points, mode Mode) Points {
	n := points.VertexCount()
	normals := make(Points, n*ComponentsPerVertex)
	sign := float32(1)
	for k := 2; k < n; k++ {
		p0 := mgl32.Vec3(points.Vertex(k - 2))
		p1 := mgl32.Vec3(points.Vertex(k - 1))
		p2 := mgl32.Vec3(points.Vertex(k))

		normal := faceNormal(p0, p1, p2).Mul(sign)
		copy(normals[k*ComponentsPerVertex:], normal[:])

		if mode == ModeTriangleStrip {
			sign = -sign
		}
	}
	return normals
}

// faceNormal returns the unit normal of p0, p1, p2, or a zero vector for a
// collinear triangle or one whose edges overflow float32. Both edges are
// divided by their largest component first, so the result does not depend on
// the triangle's size.
func faceNormal(p0, p1, p2 mgl32.Vec3) mgl32.Vec3 {
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p1)
	s := max(maxAbs(e1), maxAbs(e2))
	if s == 0 || !finite(s) {
		return mgl32.Vec3{}
	}
	c := e1.Mul(1 / s).Cross(e2.Mul(1 / s))
	l := c.Len()
	if l == 0 || !finite(l) {
		return mgl32.Vec3{}
	}
	n := c.Mul(1 / l)
	if !finite(n[0]) || !finite(n[1]) || !finite(n[2]) {
		return mgl32.Vec3{}
	}
	return n
}

func maxAbs(v mgl32.Vec3) float32 {
	return max(abs(v[0]), abs(v[1]), abs(v[2]))
}

func abs(f float32) float32 {
	return float32(math.Abs(float64(f)))
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
