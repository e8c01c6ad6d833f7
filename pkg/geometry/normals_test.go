package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zigzag is a strip in the z=0 plane whose triangles alternate winding.
var zigzag = Points{
	0, 0, 0,
	0, 1, 0,
	1, 0, 0,
	1, 1, 0,
	2, 0, 0,
	2, 1, 0,
}

func normalAt(normals Points, i int) mgl32.Vec3 {
	return mgl32.Vec3(normals.Vertex(i))
}

func TestComputeNormals_OnePerVertex(t *testing.T) {
	for _, mode := range Modes {
		normals := ComputeNormals(zigzag, mode)
		require.Len(t, normals, len(zigzag), mode.String())
		assert.Equal(t, mgl32.Vec3{}, normalAt(normals, 0), mode.String())
		assert.Equal(t, mgl32.Vec3{}, normalAt(normals, 1), mode.String())
	}
}

func TestComputeNormals_StripCorrectsWinding(t *testing.T) {
	normals := ComputeNormals(zigzag, ModeTriangleStrip)

	// Raw cross products of a zigzag alternate between -z and +z; the strip
	// sign flip makes every face point the same way.
	for k := 2; k < zigzag.VertexCount(); k++ {
		n := normalAt(normals, k)
		assert.InDelta(t, 1, n.Len(), 1e-6, "vertex %d", k)
		assert.InDelta(t, -1, n.Z(), 1e-6, "vertex %d", k)
	}
}

func TestComputeNormals_NonStripKeepsSign(t *testing.T) {
	for _, mode := range []Mode{ModeTriangles, ModePoints, ModeLines} {
		normals := ComputeNormals(zigzag, mode)
		for k := 2; k < zigzag.VertexCount(); k++ {
			want := float32(-1)
			if k%2 == 1 {
				want = 1
			}
			assert.InDelta(t, want, normalAt(normals, k).Z(), 1e-6, "%s vertex %d", mode, k)
		}
	}
}

func TestComputeNormals_StripSignsAlternateOnFlatRun(t *testing.T) {
	// Every triangle here has the same raw winding, so the strip sign alone
	// drives the alternation.
	fan := Points{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
		-1, 0, 0,
	}
	raw := ComputeNormals(fan, ModeTriangles)
	strip := ComputeNormals(fan, ModeTriangleStrip)
	sign := float32(1)
	for k := 2; k < fan.VertexCount(); k++ {
		assert.Equal(t, normalAt(raw, k).Mul(sign), normalAt(strip, k), "vertex %d", k)
		sign = -sign
	}
}

func TestComputeNormals_DegenerateTriangleIsZero(t *testing.T) {
	collinear := Points{
		0, 0, 0,
		1, 1, 1,
		2, 2, 2,
		3, 3, 3,
	}
	normals := ComputeNormals(collinear, ModeTriangleStrip)
	for _, v := range normals {
		assert.Zero(t, v)
		assert.False(t, v != v, "NaN leaked into normals")
	}
}

func TestComputeNormals_ShortBuffers(t *testing.T) {
	assert.Empty(t, ComputeNormals(nil, ModeTriangles))
	assert.Equal(t, Points{0, 0, 0}, ComputeNormals(Points{1, 2, 3}, ModePoints))
	assert.Equal(t, Points{0, 0, 0, 0, 0, 0}, ComputeNormals(Points{1, 2, 3, 4, 5, 6}, ModeLines))
}

func TestComputeNormals_ScaleIndependent(t *testing.T) {
	for _, side := range []float32{1e-5, 1, 1e20} {
		tri := Points{
			0, 0, 0,
			side, 0, 0,
			0, side, 0,
		}
		n := normalAt(ComputeNormals(tri, ModeTriangles), 2)
		assert.True(t, n.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-6), "side %g: %v", side, n)
	}
}

func TestComputeNormals_OverflowingEdgesAreZero(t *testing.T) {
	tri := Points{
		-3e38, 0, 0,
		3e38, 0, 0,
		0, 3e38, 0,
	}
	n := normalAt(ComputeNormals(tri, ModeTriangles), 2)
	assert.Equal(t, mgl32.Vec3{}, n)
}
