package polyhedron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trenchworks/brushgeo/math32"
)

func cube(min, max float32) *Polyhedron {
	return NewBox(*math32.NewBox3(
		math32.NewVector3(min, min, min),
		math32.NewVector3(max, max, max),
	))
}

func TestNewBoxSeed(t *testing.T) {
	p := cube(-4096, 4096)

	assert.Len(t, p.Vertices, 8)
	assert.Len(t, p.Edges, 12)
	assert.Len(t, p.Sides, 6)
	assert.False(t, p.Closed(), "a freshly seeded box has no faces bound to its sides")

	assert.InDelta(t, -4096, p.Bounds.Min.X, 1e-5)
	assert.InDelta(t, 4096, p.Bounds.Max.X, 1e-5)

	for i := range p.Sides {
		assert.Len(t, p.Sides[i].Edges, 4)
		assert.Len(t, p.Sides[i].Vertices, 4)
	}
	for i := range p.Edges {
		assert.NotEqual(t, none, p.Edges[i].Left)
		assert.NotEqual(t, none, p.Edges[i].Right)
		assert.NotEqual(t, p.Edges[i].Left, p.Edges[i].Right)
	}
}

func TestCutRedundant(t *testing.T) {
	p := cube(0, 64)

	// A plane far above the brush whose normal points away from it:
	// every vertex is BELOW (kept), so the cut is redundant.
	plane := math32.PlaneFromPoints(
		&math32.Vector3{X: 0, Y: 0, Z: 200},
		&math32.Vector3{X: 0, Y: 64, Z: 200},
		&math32.Vector3{X: 64, Y: 0, Z: 200},
	)

	var dropped []int
	result := p.Cut(plane, 0, &dropped)
	assert.Equal(t, Redundant, result)
	assert.Len(t, p.Vertices, 8)
	assert.Empty(t, dropped)
}

func TestCutNullified(t *testing.T) {
	p := cube(0, 64)

	// A plane entirely below the brush (z = -10) whose normal points up
	// at it: every vertex is ABOVE (dropped), so the brush is emptied.
	plane := math32.PlaneFromPoints(
		&math32.Vector3{X: 0, Y: 64, Z: -10},
		&math32.Vector3{X: 64, Y: 64, Z: -10},
		&math32.Vector3{X: 0, Y: 0, Z: -10},
	)

	var dropped []int
	result := p.Cut(plane, 0, &dropped)
	assert.Equal(t, Nullified, result)
}

func TestCutSplitsTopFace(t *testing.T) {
	p := cube(0, 64)

	// Cut at z=32 keeping the bottom half: winding
	// (0,0,32),(0,64,32),(64,0,32) gives normal (p2-p0)x(p1-p0) = +Z, so
	// the top vertices are ABOVE the plane and dropped.
	plane := math32.PlaneFromPoints(
		&math32.Vector3{X: 0, Y: 0, Z: 32},
		&math32.Vector3{X: 0, Y: 64, Z: 32},
		&math32.Vector3{X: 64, Y: 0, Z: 32},
	)

	var dropped []int
	result := p.Cut(plane, 99, &dropped)
	assert.Equal(t, Split, result)
	assert.Empty(t, dropped, "the seeded cube has no bound face to drop, so nothing is reported")

	assert.InDelta(t, 32, p.Bounds.Max.Z, 1e-5)
	assert.InDelta(t, 0, p.Bounds.Min.Z, 1e-5)

	for i := range p.Vertices {
		assert.LessOrEqual(t, p.Vertices[i].Position.Z, float32(32.001))
	}

	var newSideIdx = -1
	for i := range p.Sides {
		if p.Sides[i].FaceID == 99 {
			newSideIdx = i
		}
	}
	assert.NotEqual(t, -1, newSideIdx, "the cutting face must be bound to a new side")
	assert.GreaterOrEqual(t, len(p.Sides[newSideIdx].Edges), 3)

	assertValidMesh(t, p)
}

func TestCutReaddSameFaceIsRedundant(t *testing.T) {
	p := cube(0, 64)

	plane := math32.PlaneFromPoints(
		&math32.Vector3{X: 0, Y: 0, Z: 32},
		&math32.Vector3{X: 64, Y: 0, Z: 32},
		&math32.Vector3{X: 0, Y: 64, Z: 32},
	)
	var dropped []int
	require := p.Cut(plane, 1, &dropped)
	assert.Equal(t, Split, require)

	before := snapshotCounts(p)
	var dropped2 []int
	result := p.Cut(plane, 1, &dropped2)
	assert.Equal(t, Redundant, result)
	assert.Equal(t, before, snapshotCounts(p))
}

type counts struct{ v, e, s int }

func snapshotCounts(p *Polyhedron) counts {
	return counts{len(p.Vertices), len(p.Edges), len(p.Sides)}
}

// assertValidMesh checks invariants 1, 2, 4 and 6 from the spec: two
// distinct sides per edge, vertex/edge cycles agreeing, bounds matching
// the vertex set, and no stale marks.
func assertValidMesh(t *testing.T, p *Polyhedron) {
	t.Helper()

	for i := range p.Edges {
		e := p.Edges[i]
		assert.NotEqual(t, none, e.Left, "edge %d missing left side", i)
		assert.NotEqual(t, none, e.Right, "edge %d missing right side", i)
		assert.NotEqual(t, e.Left, e.Right, "edge %d shared by only one side", i)
		assert.Equal(t, EdgeUndecided, e.Mark)
	}
	for i := range p.Sides {
		side := p.Sides[i]
		assert.GreaterOrEqual(t, len(side.Edges), 3)
		assert.Equal(t, len(side.Edges), len(side.Vertices))
		assert.Equal(t, SideUnknown, side.Mark)
		for j, eIdx := range side.Edges {
			assert.Equal(t, side.Vertices[j], p.Edges[eIdx].startVertex(i),
				"side %d edge %d disagrees with vertex cycle", i, j)
		}
	}
	for i := range p.Vertices {
		assert.Equal(t, VertexUndecided, p.Vertices[i].Mark)
	}

	var box math32.Box3
	pts := make([]math32.Vector3, len(p.Vertices))
	for i := range p.Vertices {
		pts[i] = p.Vertices[i].Position
	}
	box.SetFromPoints(pts)
	assert.InDelta(t, box.Min.X, p.Bounds.Min.X, 1e-4)
	assert.InDelta(t, box.Max.Z, p.Bounds.Max.Z, 1e-4)
}

func TestRotate90CWPermutesCorners(t *testing.T) {
	p := cube(0, 64)
	center := math32.Vector3{X: 32, Y: 32, Z: 32}

	before := make([]math32.Vector3, len(p.Vertices))
	for i := range p.Vertices {
		before[i] = p.Vertices[i].Position
	}

	p.Rotate90CW(AxisZ, &center)

	for i := range p.Vertices {
		want := math32.Vector3{
			X: before[i].Y,
			Y: 64 - before[i].X,
			Z: before[i].Z,
		}
		assert.InDelta(t, want.X, p.Vertices[i].Position.X, 1e-4)
		assert.InDelta(t, want.Y, p.Vertices[i].Position.Y, 1e-4)
		assert.InDelta(t, want.Z, p.Vertices[i].Position.Z, 1e-4)
	}
	assert.InDelta(t, 0, p.Bounds.Min.X, 1e-4)
	assert.InDelta(t, 64, p.Bounds.Max.X, 1e-4)
}

func TestTranslateRoundTrip(t *testing.T) {
	p := cube(0, 64)
	before := make([]math32.Vector3, len(p.Vertices))
	for i := range p.Vertices {
		before[i] = p.Vertices[i].Position
	}

	delta := math32.Vector3{X: 17, Y: -4, Z: 9}
	neg := delta
	neg.Negate()

	p.Translate(&delta)
	p.Translate(&neg)

	for i := range p.Vertices {
		assert.InDelta(t, before[i].X, p.Vertices[i].Position.X, 1e-4)
		assert.InDelta(t, before[i].Y, p.Vertices[i].Position.Y, 1e-4)
		assert.InDelta(t, before[i].Z, p.Vertices[i].Position.Z, 1e-4)
	}
}

func TestFlipTwiceIsIdentity(t *testing.T) {
	p := cube(0, 64)
	center := math32.Vector3{X: 32, Y: 32, Z: 32}

	before := make([]math32.Vector3, len(p.Vertices))
	for i := range p.Vertices {
		before[i] = p.Vertices[i].Position
	}

	p.Flip(AxisX, &center)
	p.Flip(AxisX, &center)

	for i := range p.Vertices {
		assert.InDelta(t, before[i].X, p.Vertices[i].Position.X, 1e-4)
		assert.InDelta(t, before[i].Y, p.Vertices[i].Position.Y, 1e-4)
		assert.InDelta(t, before[i].Z, p.Vertices[i].Position.Z, 1e-4)
	}
	assertValidMesh(t, p)
}

func TestMoveVertexZeroDeltaNoOp(t *testing.T) {
	p := cube(0, 64)
	result, newSides, dropped := p.MoveVertex(0, math32.Vector3{})
	assert.False(t, result.Moved)
	assert.Empty(t, newSides)
	assert.Empty(t, dropped)
}

func TestMoveVertexSimpleTranslation(t *testing.T) {
	p := cube(0, 64)

	var originIdx = -1
	for i := range p.Vertices {
		v := p.Vertices[i].Position
		if v.X == 0 && v.Y == 0 && v.Z == 0 {
			originIdx = i
		}
	}
	assert.NotEqual(t, -1, originIdx)

	result, _, dropped := p.MoveVertex(originIdx, math32.Vector3{X: 16, Y: 16, Z: 0})
	assert.True(t, result.Moved)
	assert.Empty(t, dropped)

	moved := p.Vertices[result.FinalIndex].Position
	assert.InDelta(t, 16, moved.X, 1e-3)
	assert.InDelta(t, 16, moved.Y, 1e-3)
	assert.InDelta(t, 0, moved.Z, 1e-3)

	assertValidMesh(t, p)
}

func TestMoveVertexBitForBitUnchangedOnFailure(t *testing.T) {
	p := cube(0, 64)
	before := p.Clone()

	// delta zero always fails: the brush must come back untouched.
	_, _, _ = p.MoveVertex(0, math32.Vector3{})
	assert.Equal(t, before.Vertices, p.Vertices)
	assert.Equal(t, before.Edges, p.Edges)
	assert.Equal(t, before.Sides, p.Sides)
}

func TestMoveVertexOutOfRangeIndexPanics(t *testing.T) {
	p := cube(0, 64)
	assert.Panics(t, func() {
		p.MoveVertex(len(p.Vertices), math32.Vector3{X: 1})
	})
}

func TestContainsVsBoundsAfterCut(t *testing.T) {
	p := cube(0, 64)
	plane := math32.PlaneFromPoints(
		&math32.Vector3{X: 0, Y: 0, Z: 32},
		&math32.Vector3{X: 0, Y: 64, Z: 32},
		&math32.Vector3{X: 64, Y: 0, Z: 32},
	)
	var dropped []int
	p.Cut(plane, 1, &dropped)

	assertValidMesh(t, p)
	assert.InDelta(t, 32, p.Bounds.Max.Z, 1e-4)
}
