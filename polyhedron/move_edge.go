package polyhedron

import "github.com/trenchworks/brushgeo/math32"

// MoveEdge drags both endpoints of an existing edge by the same delta. The
// two vertices are moved one at a time rather than simultaneously: moving
// whichever endpoint trails delta's direction first gives the leading
// endpoint room to slide before it is dragged itself, exactly as the
// source's edge/side movers depend on a fixed drag order rather than
// moving every vertex in one shot.
func (p *Polyhedron) MoveEdge(v0, v1 int, delta math32.Vector3) (finalV0, finalV1 int, moved bool, newSides, droppedFaceIDs []int) {

	p.checkVertexIndex(v0)
	p.checkVertexIndex(v1)

	if delta.LengthSq() == 0 {
		return v0, v1, false, nil, nil
	}

	work := p.Clone()

	var dir math32.Vector3
	dir.SubVectors(&work.Vertices[v1].Position, &work.Vertices[v0].Position)

	first, second := v0, v1
	if dir.Dot(&delta) < 0 {
		first, second = v1, v0
	}

	r1, ok1, ns1, df1 := work.moveVertexIterative(first, delta)
	if !ok1 {
		return v0, v1, false, nil, nil
	}
	r2, ok2, ns2, df2 := work.moveVertexIterative(second, delta)
	if !ok2 {
		return v0, v1, false, nil, nil
	}

	*p = *work
	newSides = append(ns1, ns2...)
	droppedFaceIDs = append(df1, df2...)

	if first == v0 {
		return r1, r2, true, newSides, droppedFaceIDs
	}
	return r2, r1, true, newSides, droppedFaceIDs
}

// EdgeBetween returns the index of the edge connecting vertices a and b,
// or none if they are not adjacent. Exported for callers (the brush
// package) that only know two endpoint indices and need the edge index
// SplitAndMoveEdge expects.
func (p *Polyhedron) EdgeBetween(a, b int) int {
	return p.edgeBetween(a, b)
}

// edgeBetween returns the index of the edge connecting a and b, or none.
func (p *Polyhedron) edgeBetween(a, b int) int {
	for i := range p.Edges {
		e := &p.Edges[i]
		if e.deleted {
			continue
		}
		if (e.Start == a && e.End == b) || (e.Start == b && e.End == a) {
			return i
		}
	}
	return none
}

// SplitAndMoveEdge inserts a new vertex at eIdx's midpoint, splitting the
// edge (and the two sides bordering it) in two, then drags the new vertex
// by delta. Nothing is committed to the receiver unless the resulting
// drag actually makes progress.
func (p *Polyhedron) SplitAndMoveEdge(eIdx int, delta math32.Vector3) (result MoveResult, newSides, droppedFaceIDs []int) {

	p.checkEdgeIndex(eIdx)

	work := p.Clone()
	newV := work.splitEdgeTopology(eIdx)

	finalIdx, ok, ns, df := work.moveVertexIterative(newV, delta)
	if !ok {
		return MoveResult{-1, false}, nil, nil
	}

	*p = *work
	return MoveResult{finalIdx, true}, ns, df
}

// splitEdgeTopology inserts a new vertex at the midpoint of eIdx, without
// moving anything: eIdx now runs from its original start to the new
// vertex, a freshly appended edge runs from the new vertex to eIdx's
// original end, and both sides bordering eIdx have the new vertex and
// edge spliced into their cycles. Returns the new vertex's index.
func (p *Polyhedron) splitEdgeTopology(eIdx int) int {

	e := p.Edges[eIdx]
	var mid math32.Vector3
	mid.AddVectors(&p.Vertices[e.Start].Position, &p.Vertices[e.End].Position)
	mid.MultiplyScalar(0.5)

	newV := p.addVertex(mid.X, mid.Y, mid.Z)

	newEdge := len(p.Edges)
	p.Edges = append(p.Edges, Edge{Start: newV, End: e.End, Left: e.Left, Right: e.Right, Mark: EdgeNew})
	p.Edges[eIdx].End = newV

	if e.Left != none {
		p.spliceEdgeIntoSide(e.Left, eIdx, newEdge, false)
	}
	if e.Right != none {
		p.spliceEdgeIntoSide(e.Right, eIdx, newEdge, true)
	}

	return newV
}

// spliceEdgeIntoSide inserts newEdge next to eIdx in sideIdx's cycle
// (before eIdx when after is false, after it when true), then rebuilds
// the side's vertex ring from the updated edge order.
func (p *Polyhedron) spliceEdgeIntoSide(sideIdx, eIdx, newEdge int, after bool) {

	side := &p.Sides[sideIdx]
	pos := -1
	for i, e := range side.Edges {
		if e == eIdx {
			pos = i
			break
		}
	}
	if pos == -1 {
		return
	}

	edges := make([]int, 0, len(side.Edges)+1)
	for i, e := range side.Edges {
		if i == pos && !after {
			edges = append(edges, newEdge)
		}
		edges = append(edges, e)
		if i == pos && after {
			edges = append(edges, newEdge)
		}
	}
	side.Edges = edges

	vertices := make([]int, len(edges))
	for i, e := range edges {
		vertices[i] = p.Edges[e].startVertex(sideIdx)
	}
	side.Vertices = vertices
}
