package brush

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trenchworks/brushgeo/math32"
	"github.com/trenchworks/brushgeo/texture"
)

func worldBounds() math32.Box3 {
	return *math32.NewBox3(
		math32.NewVector3(-4096, -4096, -4096),
		math32.NewVector3(4096, 4096, 4096),
	)
}

func boxBrush(min, max float32) *Brush {
	tex := &texture.Texture{Name: "wall", Width: 64, Height: 64}
	bb := math32.NewBox3(math32.NewVector3(min, min, min), math32.NewVector3(max, max, max))
	return NewBox(worldBounds(), *bb, tex)
}

func TestNewBoxSeedsSixFaces(t *testing.T) {
	b := boxBrush(0, 64)

	assert.Len(t, b.Faces, 6)
	assert.True(t, b.Geometry.Closed())
	assert.InDelta(t, 0, b.Geometry.Bounds.Min.X, 1e-3)
	assert.InDelta(t, 64, b.Geometry.Bounds.Max.X, 1e-3)

	for _, f := range b.Faces {
		assert.Equal(t, 6, f.Tex.UsageCount, "all six faces hold a reference to the one shared texture")
	}
}

func TestAddFaceSplitsAndDropsTop(t *testing.T) {
	b := boxBrush(0, 64)

	f := texture.MustNewFace(
		math32.Vector3{X: 0, Y: 0, Z: 32},
		math32.Vector3{X: 0, Y: 64, Z: 32},
		math32.Vector3{X: 64, Y: 0, Z: 32},
	)
	ok := b.AddFace(f)
	assert.True(t, ok)
	assert.InDelta(t, 32, b.Geometry.Bounds.Max.Z, 1e-3)
	assert.Len(t, b.Faces, 6, "the old top face is dropped, the new one added: count unchanged")

	var found bool
	for _, face := range b.Faces {
		if face.ID == f.ID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAddFaceNullifyingRejected(t *testing.T) {
	b := boxBrush(0, 64)

	// a plane below the whole brush, normal pointing up at it: every
	// vertex lies above it and would be dropped.
	f := texture.MustNewFace(
		math32.Vector3{X: 0, Y: 64, Z: -10},
		math32.Vector3{X: 64, Y: 64, Z: -10},
		math32.Vector3{X: 0, Y: 0, Z: -10},
	)
	ok := b.AddFace(f)
	assert.False(t, ok)
}

func TestRotate90CWAboutZ(t *testing.T) {
	b := boxBrush(0, 64)
	center := math32.Vector3{X: 32, Y: 32, Z: 32}

	b.Rotate90CW(math32.AxisZ, center, false)

	assert.InDelta(t, 0, b.Geometry.Bounds.Min.X, 1e-3)
	assert.InDelta(t, 64, b.Geometry.Bounds.Max.X, 1e-3)
	assert.True(t, b.Geometry.Closed())
}

func TestTextureLockInvariantUnderRotation(t *testing.T) {
	b := boxBrush(0, 64)

	var top *texture.Face
	for _, f := range b.Faces {
		n := f.Plane.Normal()
		if n.Z > 0.9 {
			top = f
		}
	}
	assert.NotNil(t, top, "expected a +Z face among the seeded six")

	center3 := top.P0.Clone()
	center3.Add(&top.P1)
	center3.Add(&top.P2)
	center3.MultiplyScalar(1.0 / 3.0)

	beforeU, beforeV := top.TexCoord(center3)

	pivot := math32.Vector3{X: 32, Y: 32, Z: 32}
	b.Rotate90CW(math32.AxisZ, pivot, true)

	var topAfter *texture.Face
	for _, f := range b.Faces {
		if f.ID == top.ID {
			topAfter = f
		}
	}
	assert.NotNil(t, topAfter)

	rotatedCenter := *center3
	rotatedCenter.Sub(&pivot)
	math32.RotateComponents90(&rotatedCenter, math32.AxisZ, true)
	rotatedCenter.Add(&pivot)

	afterU, afterV := topAfter.TexCoord(&rotatedCenter)

	// offsets are kept modulo the 64x64 texture, so compare texels.
	assert.InDelta(t, wrapTexel(beforeU, 64), wrapTexel(afterU, 64), 1e-2)
	assert.InDelta(t, wrapTexel(beforeV, 64), wrapTexel(afterV, 64), 1e-2)
}

// wrapTexel reduces a texture coordinate modulo period into [0, period).
func wrapTexel(v, period float32) float64 {
	m := math.Mod(float64(v), float64(period))
	if m < 0 {
		m += float64(period)
	}
	return m
}

func TestIntersectsBrushSymmetric(t *testing.T) {
	a := boxBrush(0, 64)
	bOverlap := boxBrush(32, 96)
	cApart := boxBrush(200, 264)

	assert.True(t, a.IntersectsBrush(bOverlap))
	assert.True(t, bOverlap.IntersectsBrush(a))

	assert.False(t, a.IntersectsBrush(cApart))
	assert.False(t, cApart.IntersectsBrush(a))
}

func TestIntersectsBrushDetectsOrientedContainment(t *testing.T) {
	// A cube rotated 45 degrees about Z has edges that aren't axis-aligned,
	// so this exercises the edge-pair loop of the SAT test with genuinely
	// non-degenerate cross products (an all-axis-aligned pair never does,
	// since every edge-cross axis there collapses onto a face normal
	// already tested by the face-normal loops).
	outer := boxBrush(-100, 100)
	inner := boxBrush(-10, 10)

	var q math32.Quaternion
	q.SetFromAxisAngle(&math32.Vector3{X: 0, Y: 0, Z: 1}, math32.Pi/4)
	inner.Rotate(q, math32.Vector3{}, false)

	assert.True(t, outer.ContainsBrush(inner))
	assert.True(t, outer.IntersectsBrush(inner))
	assert.True(t, inner.IntersectsBrush(outer))
}

func TestContainsBrushImpliesIntersects(t *testing.T) {
	outer := boxBrush(-10, 74)
	inner := boxBrush(0, 64)

	assert.True(t, outer.ContainsBrush(inner))
	assert.True(t, outer.IntersectsBrush(inner))
}

func TestIntersectsEntityNoOverlapReturnsFalse(t *testing.T) {
	b := boxBrush(0, 64)

	far := *math32.NewBox3(
		math32.NewVector3(1000, 1000, 1000),
		math32.NewVector3(1010, 1010, 1010),
	)
	assert.False(t, b.IntersectsEntity(far))
}

func TestIntersectsEntityCornerInside(t *testing.T) {
	b := boxBrush(0, 64)

	straddling := *math32.NewBox3(
		math32.NewVector3(32, 32, 32),
		math32.NewVector3(200, 200, 200),
	)
	assert.True(t, b.IntersectsEntity(straddling))
}

func TestContainsEntityRequiresAllCorners(t *testing.T) {
	b := boxBrush(-10, 74)

	inside := *math32.NewBox3(
		math32.NewVector3(0, 0, 0),
		math32.NewVector3(64, 64, 64),
	)
	assert.True(t, b.ContainsEntity(inside))

	straddling := *math32.NewBox3(
		math32.NewVector3(0, 0, 0),
		math32.NewVector3(200, 200, 200),
	)
	assert.False(t, b.ContainsEntity(straddling))
}

func TestMoveVertexTruncatesOrRefusesButStaysValid(t *testing.T) {
	b := boxBrush(0, 64)

	var idx = -1
	for i := range b.Geometry.Vertices {
		v := b.Geometry.Vertices[i].Position
		if v.X == 0 && v.Y == 0 && v.Z == 0 {
			idx = i
		}
	}
	assert.NotEqual(t, -1, idx)

	_, _ = b.MoveVertex(idx, math32.Vector3{X: 100, Y: 0, Z: 0})

	assert.True(t, b.Geometry.Closed())
	for i := range b.Geometry.Vertices {
		assert.True(t, b.Geometry.Bounds.ContainsPoint(&b.Geometry.Vertices[i].Position))
	}
}

func TestCanDeleteFaceOfASealedBoxIsRejected(t *testing.T) {
	b := boxBrush(0, 64)
	f := b.Faces[0]
	// removing any one of a sealed box's six faces leaves the remaining
	// five bounded only by the huge world-bounds walls, which carry no
	// Face of their own: the trial geometry is not closed.
	assert.False(t, b.CanDeleteFace(f))
}

func TestEnlargeGrowsBounds(t *testing.T) {
	b := boxBrush(0, 64)
	before := b.Geometry.Bounds

	b.Enlarge(4, false)

	assert.Less(t, b.Geometry.Bounds.Min.X, before.Min.X)
	assert.Greater(t, b.Geometry.Bounds.Max.X, before.Max.X)
	assert.True(t, b.Geometry.Closed())
}

func TestCanResizeRejectsEscapingWorldBounds(t *testing.T) {
	tiny := worldBoundsSmall()
	tex := &texture.Texture{Name: "wall", Width: 64, Height: 64}
	bb := math32.NewBox3(math32.NewVector3(0, 0, 0), math32.NewVector3(64, 64, 64))
	b := NewBox(tiny, *bb, tex)

	var top *texture.Face
	for _, f := range b.Faces {
		n := f.Plane.Normal()
		if n.Z > 0.9 {
			top = f
		}
	}
	assert.NotNil(t, top)

	ok := b.CanResize(top, 10000)
	assert.False(t, ok, "moving the top face far past the tiny world bounds must be rejected")
}

func worldBoundsSmall() math32.Box3 {
	return *math32.NewBox3(
		math32.NewVector3(-128, -128, -128),
		math32.NewVector3(128, 128, 128),
	)
}
