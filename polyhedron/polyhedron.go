package polyhedron

import (
	"github.com/trenchworks/brushgeo/logging"
	"github.com/trenchworks/brushgeo/math32"
)

// none is the sentinel used for absent vertex/edge/side indices (an
// unbound edge side, or an unbound side face id).
const none = -1

// Vertex is a position in the mesh plus its transient cut mark.
type Vertex struct {
	Position math32.Vector3
	Mark     VertexMark
	deleted  bool
}

// Edge is an ordered pair of vertex indices plus the two sides that share
// it. Left/Right are index fields standing in for the source's raw
// Side pointers; none marks an edge not yet closed on that side.
type Edge struct {
	Start, End  int
	Left, Right int
	Mark        EdgeMark
	deleted     bool
}

// startVertex returns the vertex index seen as the start of this edge from
// the given side, giving a consistent clockwise traversal per side.
func (e *Edge) startVertex(side int) int {
	if e.Left == side {
		return e.End
	}
	if e.Right == side {
		return e.Start
	}
	return none
}

// endVertex is the complement of startVertex.
func (e *Edge) endVertex(side int) int {
	if e.Left == side {
		return e.Start
	}
	if e.Right == side {
		return e.End
	}
	return none
}

// Side is an ordered cycle of edges and the parallel cycle of vertices
// forming one convex polygon face of the mesh. FaceID is an opaque owner
// tag set by the brush package (none if the side has no bound Face yet).
type Side struct {
	Vertices []int
	Edges    []int
	FaceID   int
	Mark     SideMark
	deleted  bool
}

// Polyhedron is the doubly-linked convex mesh of a single brush.
type Polyhedron struct {
	Vertices []Vertex
	Edges    []Edge
	Sides    []Side
	Bounds   math32.Box3

	Log *logging.Logger
}

func (p *Polyhedron) logger() *logging.Logger {
	if p.Log != nil {
		return p.Log
	}
	return logging.Default
}

// NewBox seeds a polyhedron as the axis-aligned box described by bounds:
// 8 vertices, 12 edges, 6 sides, no faces bound to any side. This mirrors
// the six-quad cube construction of the original geometry constructor,
// generalized from a fixed world-bounds cube to an arbitrary box so it can
// also seed a brush's initial bounding volume.
func NewBox(bounds math32.Box3) *Polyhedron {

	min, max := bounds.Min, bounds.Max

	p := &Polyhedron{Bounds: bounds}

	// Corner order matches the source: l/r (x), f/b (y), d/u (z).
	lfd := p.addVertex(min.X, min.Y, min.Z)
	lfu := p.addVertex(min.X, min.Y, max.Z)
	lbd := p.addVertex(min.X, max.Y, min.Z)
	lbu := p.addVertex(min.X, max.Y, max.Z)
	rfd := p.addVertex(max.X, min.Y, min.Z)
	rfu := p.addVertex(max.X, min.Y, max.Z)
	rbd := p.addVertex(max.X, max.Y, min.Z)
	rbu := p.addVertex(max.X, max.Y, max.Z)

	lfdlbd := p.addEdge(lfd, lbd)
	lbdlbu := p.addEdge(lbd, lbu)
	lbulfu := p.addEdge(lbu, lfu)
	lfulfd := p.addEdge(lfu, lfd)
	rfdrfu := p.addEdge(rfd, rfu)
	rfurbu := p.addEdge(rfu, rbu)
	rburbd := p.addEdge(rbu, rbd)
	rbdrfd := p.addEdge(rbd, rfd)
	lfurfu := p.addEdge(lfu, rfu)
	rfdlfd := p.addEdge(rfd, lfd)
	lbdrbd := p.addEdge(lbd, rbd)
	rbulbu := p.addEdge(rbu, lbu)

	invertNone := [4]bool{false, false, false, false}
	invertAll := [4]bool{true, true, true, true}
	invertOdd := [4]bool{false, true, false, true}

	p.addSide([4]int{lfdlbd, lbdlbu, lbulfu, lfulfd}, invertNone)
	p.addSide([4]int{rfdrfu, rfurbu, rburbd, rbdrfd}, invertNone)
	p.addSide([4]int{lfurfu, rfdrfu, rfdlfd, lfulfd}, invertOdd)
	p.addSide([4]int{rbulbu, lbdlbu, lbdrbd, rburbd}, invertOdd)
	p.addSide([4]int{lbulfu, rbulbu, rfurbu, lfurfu}, invertAll)
	p.addSide([4]int{rfdlfd, rbdrfd, lbdrbd, lfdlbd}, invertAll)

	return p
}

func (p *Polyhedron) addVertex(x, y, z float32) int {
	p.Vertices = append(p.Vertices, Vertex{
		Position: *math32.NewVector3(x, y, z),
		Mark:     VertexUndecided,
	})
	return len(p.Vertices) - 1
}

func (p *Polyhedron) addEdge(start, end int) int {
	p.Edges = append(p.Edges, Edge{Start: start, End: end, Left: none, Right: none, Mark: EdgeUndecided})
	return len(p.Edges) - 1
}

// addSide builds a side from 4 edges and their invert flags (cube seed
// helper): an inverted edge contributes its end vertex and sets Left,
// an upright edge contributes its start vertex and sets Right.
func (p *Polyhedron) addSide(edges [4]int, invert [4]bool) int {
	s := Side{FaceID: none, Mark: SideUnknown}
	for i, eIdx := range edges {
		e := &p.Edges[eIdx]
		s.Edges = append(s.Edges, eIdx)
		if invert[i] {
			e.Left = len(p.Sides)
			s.Vertices = append(s.Vertices, e.End)
		} else {
			e.Right = len(p.Sides)
			s.Vertices = append(s.Vertices, e.Start)
		}
	}
	p.Sides = append(p.Sides, s)
	return len(p.Sides) - 1
}

// RecomputeBounds sets Bounds to the AABB of all live vertices.
func (p *Polyhedron) RecomputeBounds() {

	if len(p.Vertices) == 0 {
		p.Bounds = math32.Box3{}
		return
	}
	points := make([]math32.Vector3, len(p.Vertices))
	for i := range p.Vertices {
		points[i] = p.Vertices[i].Position
	}
	var box math32.Box3
	box.SetFromPoints(points)
	p.Bounds = box
}

// SideRing returns the ordered vertex positions of side sideIdx, for
// callers (the texture layer) that need to re-derive a Face's plane and
// defining points from the mesh after a cut, snap or merge.
func (p *Polyhedron) SideRing(sideIdx int) []math32.Vector3 {
	verts := p.Sides[sideIdx].Vertices
	ring := make([]math32.Vector3, len(verts))
	for i, v := range verts {
		ring[i] = p.Vertices[v].Position
	}
	return ring
}

// SideFaceID returns the FaceID bound to side sideIdx (none if unbound).
func (p *Polyhedron) SideFaceID(sideIdx int) int {
	return p.Sides[sideIdx].FaceID
}

// SetSideFaceID rebinds side sideIdx to faceID, for a caller (the brush
// package) that has just created a new Face for a side produced by a cut
// or a face-centroid split.
func (p *Polyhedron) SetSideFaceID(sideIdx, faceID int) {
	p.Sides[sideIdx].FaceID = faceID
}

// SideCount returns the number of live sides.
func (p *Polyhedron) SideCount() int {
	return len(p.Sides)
}

// Closed reports whether every side has a bound face.
func (p *Polyhedron) Closed() bool {

	for i := range p.Sides {
		if p.Sides[i].FaceID == none {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of this polyhedron, safe to mutate
// independently (used by moves and trial cuts, which must leave the
// original untouched on failure).
func (p *Polyhedron) Clone() *Polyhedron {

	cp := &Polyhedron{
		Vertices: make([]Vertex, len(p.Vertices)),
		Edges:    make([]Edge, len(p.Edges)),
		Sides:    make([]Side, len(p.Sides)),
		Bounds:   p.Bounds,
		Log:      p.Log,
	}
	copy(cp.Vertices, p.Vertices)
	copy(cp.Edges, p.Edges)
	for i, s := range p.Sides {
		cp.Sides[i] = Side{
			Vertices: append([]int(nil), s.Vertices...),
			Edges:    append([]int(nil), s.Edges...),
			FaceID:   s.FaceID,
			Mark:     s.Mark,
		}
	}
	return cp
}
