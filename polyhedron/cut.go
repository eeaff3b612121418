package polyhedron

import "github.com/trenchworks/brushgeo/math32"

// Cut intersects the polyhedron with the half-space bounded by plane (the
// normal points out of the kept volume: vertices above the plane are
// removed). faceID is the opaque owner tag installed on the new side when
// the cut splits the mesh. dropped receives the FaceID of every side
// removed by the cut, for the caller to delete its associated Face; a
// removed side with no FaceID bound is not reported.
//
// The implementation follows the source's seven-step cut algorithm: mark
// vertices against the plane, bail out on the two trivial cases, mark and
// split edges, dispatch sides by their own split(), stitch the orphaned
// edges into one new seam side, then clean up dropped elements and marks.
func (p *Polyhedron) Cut(plane *math32.Plane, faceID int, dropped *[]int) CutResult {

	keep, drop, undecided := 0, 0, 0
	for i := range p.Vertices {
		switch plane.ClassifyPoint(&p.Vertices[i].Position) {
		case math32.Above:
			p.Vertices[i].Mark = VertexDrop
			drop++
		case math32.Below:
			p.Vertices[i].Mark = VertexKeep
			keep++
		default:
			p.Vertices[i].Mark = VertexUndecided
			undecided++
		}
	}

	if keep+undecided == len(p.Vertices) {
		p.resetVertexMarks()
		p.logger().Debug("face %d redundant: no vertex dropped", faceID)
		return Redundant
	}
	if drop+undecided == len(p.Vertices) {
		p.resetVertexMarks()
		p.logger().Debug("face %d nullifies geometry: no vertex kept", faceID)
		return Nullified
	}

	for i := range p.Edges {
		p.updateEdgeMark(i)
		if p.Edges[i].Mark == EdgeSplit {
			p.splitEdge(i, plane)
		}
	}

	var newEdges []int
	// Side indices must stay stable for Left/Right references while this
	// loop runs, so drops are tombstoned in place and compacted after.
	numOriginalSides := len(p.Sides)
	for sideIdx := 0; sideIdx < numOriginalSides; sideIdx++ {
		newEdge := p.splitSide(sideIdx)

		switch mark := p.Sides[sideIdx].Mark; {
		case mark == SideDrop:
			if faceID := p.Sides[sideIdx].FaceID; faceID != none {
				*dropped = append(*dropped, faceID)
			}
			p.Sides[sideIdx].deleted = true
		case mark == SideSplit:
			newEdges = append(newEdges, newEdge)
		case mark == SideKeep && newEdge != none:
			if p.Edges[newEdge].Right != sideIdx {
				p.flipEdge(newEdge)
			}
			newEdges = append(newEdges, newEdge)
		}
	}

	newSideEdges := sortSeamEdges(p, newEdges)
	newSideIdx := p.buildSideFromFace(faceID, newSideEdges)
	_ = newSideIdx

	p.compactSides()

	// delete dropped vertices, reset the rest
	keptVertices := p.Vertices[:0]
	remap := make([]int, len(p.Vertices))
	w := 0
	for i := range p.Vertices {
		if p.Vertices[i].Mark == VertexDrop {
			remap[i] = none
			continue
		}
		remap[i] = w
		p.Vertices[i].Mark = VertexUndecided
		keptVertices = append(keptVertices, p.Vertices[i])
		w++
	}
	p.Vertices = keptVertices
	p.remapVertexIndices(remap)

	// delete dropped edges, reset the rest
	keptEdges := p.Edges[:0]
	edgeRemap := make([]int, len(p.Edges))
	w = 0
	for i := range p.Edges {
		if p.Edges[i].Mark == EdgeDrop {
			edgeRemap[i] = none
			continue
		}
		edgeRemap[i] = w
		p.Edges[i].Mark = EdgeUndecided
		keptEdges = append(keptEdges, p.Edges[i])
		w++
	}
	p.Edges = keptEdges
	p.remapEdgeIndices(edgeRemap)

	for i := range p.Sides {
		p.Sides[i].Mark = SideUnknown
	}

	p.RecomputeBounds()
	return Split
}

func (p *Polyhedron) resetVertexMarks() {
	for i := range p.Vertices {
		p.Vertices[i].Mark = VertexUndecided
	}
}

func (p *Polyhedron) updateEdgeMark(edgeIdx int) {
	e := &p.Edges[edgeIdx]
	keep, drop, undecided := 0, 0, 0
	for _, v := range [2]int{e.Start, e.End} {
		switch p.Vertices[v].Mark {
		case VertexKeep:
			keep++
		case VertexDrop:
			drop++
		case VertexUndecided:
			undecided++
		}
	}
	switch {
	case keep == 1 && drop == 1:
		e.Mark = EdgeSplit
	case keep > 0:
		e.Mark = EdgeKeep
	case drop > 0:
		e.Mark = EdgeDrop
	default:
		e.Mark = EdgeUndecided
	}
}

// splitEdge replaces the DROP endpoint of a SPLIT-marked edge with a new
// NEW-marked vertex at the edge's intersection with plane, snapped to the
// integer grid, and returns the new vertex's index.
func (p *Polyhedron) splitEdge(edgeIdx int, plane *math32.Plane) int {
	e := &p.Edges[edgeIdx]
	start := p.Vertices[e.Start].Position
	end := p.Vertices[e.End].Position
	line := math32.NewLine3(&start, &end)

	point := plane.IntersectLine(line, nil)
	if point == nil {
		// Coplanar or parallel within the epsilon band used upstream to
		// classify the endpoints SPLIT; fall back to the midpoint so the
		// cut always produces a usable seam vertex.
		point = line.Center(nil)
	}
	math32.Snap(point)

	vIdx := p.addVertex(point.X, point.Y, point.Z)
	p.Vertices[vIdx].Mark = VertexNew

	e = &p.Edges[edgeIdx]
	if p.Vertices[e.Start].Mark == VertexDrop {
		e.Start = vIdx
	} else {
		e.End = vIdx
	}
	return vIdx
}

func (p *Polyhedron) flipEdge(edgeIdx int) {
	e := &p.Edges[edgeIdx]
	e.Left, e.Right = e.Right, e.Left
	e.Start, e.End = e.End, e.Start
}

// splitSide walks one side's edge cycle and classifies it KEEP / DROP /
// SPLIT, splicing a new seam edge into the cycle when the cycle contains
// both kept and dropped edges. Returns the seam edge index (none if the
// side needed no new edge), following the exact index bookkeeping of the
// source's Side::split.
func (p *Polyhedron) splitSide(sideIdx int) int {
	side := &p.Sides[sideIdx]
	n := len(side.Edges)

	keep, drop, split, undecided := 0, 0, 0, 0
	undecidedEdge := none
	splitIndex1, splitIndex2 := -2, -2

	lastMark := p.Edges[side.Edges[n-1]].Mark
	for i := 0; i < n; i++ {
		eIdx := side.Edges[i]
		mark := p.Edges[eIdx].Mark
		switch mark {
		case EdgeSplit:
			if p.Edges[eIdx].startVertex(sideIdx) != none && p.Vertices[p.Edges[eIdx].startVertex(sideIdx)].Mark == VertexKeep {
				splitIndex1 = i
			} else {
				splitIndex2 = i
			}
			split++
		case EdgeUndecided:
			undecided++
			undecidedEdge = eIdx
		case EdgeKeep:
			if lastMark == EdgeDrop {
				splitIndex2 = i
			}
			keep++
		case EdgeDrop:
			if lastMark == EdgeKeep {
				if i > 0 {
					splitIndex1 = i - 1
				} else {
					splitIndex1 = n - 1
				}
			}
			drop++
		}
		lastMark = mark
	}

	if keep == n {
		side.Mark = SideKeep
		return none
	}
	if undecided == 1 && keep == n-1 {
		side.Mark = SideKeep
		return undecidedEdge
	}
	if drop+undecided == n {
		side.Mark = SideDrop
		return none
	}

	side.Mark = SideSplit

	startV := p.Edges[side.Edges[splitIndex1]].endVertex(sideIdx)
	endV := p.Edges[side.Edges[splitIndex2]].startVertex(sideIdx)

	newEdgeIdx := len(p.Edges)
	p.Edges = append(p.Edges, Edge{
		Start: startV,
		End:   endV,
		Left:  none,
		Right: sideIdx,
		Mark:  EdgeNew,
	})

	p.replaceSideEdges(sideIdx, splitIndex1, splitIndex2, newEdgeIdx)
	return newEdgeIdx
}

// replaceSideEdges splices newEdge into side's cycle between splitIndex1
// and splitIndex2 (inclusive boundaries as used by the source), dropping
// everything strictly between them.
func (p *Polyhedron) replaceSideEdges(sideIdx, index1, index2, newEdge int) {
	side := &p.Sides[sideIdx]
	var newEdges, newVertices []int

	if index2 > index1 {
		for i := 0; i <= index1; i++ {
			newEdges = append(newEdges, side.Edges[i])
			newVertices = append(newVertices, p.Edges[side.Edges[i]].startVertex(sideIdx))
		}
		newEdges = append(newEdges, newEdge)
		newVertices = append(newVertices, p.Edges[newEdge].startVertex(sideIdx))
		for i := index2; i < len(side.Edges); i++ {
			newEdges = append(newEdges, side.Edges[i])
			newVertices = append(newVertices, p.Edges[side.Edges[i]].startVertex(sideIdx))
		}
	} else {
		for i := index2; i <= index1; i++ {
			newEdges = append(newEdges, side.Edges[i])
			newVertices = append(newVertices, p.Edges[side.Edges[i]].startVertex(sideIdx))
		}
		newEdges = append(newEdges, newEdge)
		newVertices = append(newVertices, p.Edges[newEdge].startVertex(sideIdx))
	}

	side.Edges = newEdges
	side.Vertices = newVertices
}

// sortSeamEdges reorders the seam edges produced by the cut (drop order is
// arbitrary) so consecutive edges share a vertex head-to-tail, forming a
// simple closed ring in clockwise order. This is the adjacency sort the
// source performs in place over newEdges before constructing the new side.
func sortSeamEdges(p *Polyhedron, edges []int) []int {
	result := append([]int(nil), edges...)
	for i := 0; i < len(result)-1; i++ {
		eEnd := p.Edges[result[i]].Start
		for j := i + 2; j < len(result); j++ {
			if p.Edges[result[j]].End == eEnd {
				result[j], result[i+1] = result[i+1], result[j]
				break
			}
		}
	}
	return result
}

// buildSideFromFace builds the new seam side bound to faceID from the
// sorted seam edges, setting each edge's Left pointer to the new side.
func (p *Polyhedron) buildSideFromFace(faceID int, edges []int) int {
	newSideIdx := len(p.Sides)
	side := Side{FaceID: faceID, Mark: SideNew}
	for _, eIdx := range edges {
		p.Edges[eIdx].Left = newSideIdx
		side.Edges = append(side.Edges, eIdx)
		side.Vertices = append(side.Vertices, p.Edges[eIdx].startVertex(newSideIdx))
	}
	p.Sides = append(p.Sides, side)
	return newSideIdx
}

// compactSides removes tombstoned sides and remaps every edge's
// Left/Right side reference accordingly.
func (p *Polyhedron) compactSides() {
	remap := make([]int, len(p.Sides))
	kept := p.Sides[:0]
	w := 0
	for i := range p.Sides {
		if p.Sides[i].deleted {
			remap[i] = none
			continue
		}
		remap[i] = w
		kept = append(kept, p.Sides[i])
		w++
	}
	p.Sides = kept

	for i := range p.Edges {
		if p.Edges[i].Left != none {
			p.Edges[i].Left = remap[p.Edges[i].Left]
		}
		if p.Edges[i].Right != none {
			p.Edges[i].Right = remap[p.Edges[i].Right]
		}
	}
}

func (p *Polyhedron) remapVertexIndices(remap []int) {
	for i := range p.Edges {
		p.Edges[i].Start = remap[p.Edges[i].Start]
		p.Edges[i].End = remap[p.Edges[i].End]
	}
	for i := range p.Sides {
		for j, v := range p.Sides[i].Vertices {
			p.Sides[i].Vertices[j] = remap[v]
		}
	}
}

func (p *Polyhedron) remapEdgeIndices(remap []int) {
	for i := range p.Sides {
		for j, e := range p.Sides[i].Edges {
			p.Sides[i].Edges[j] = remap[e]
		}
	}
}

// AddFaces cuts the polyhedron by each plane in order, tagging the cut
// with faceIDs[i] and collecting dropped FaceIDs into dropped.
// If any cut is Nullified, AddFaces stops and returns false: the caller
// must discard the whole batch (the geometry itself is left in whatever
// partial state the prior cuts produced, matching the source's behavior
// of only ever being called against a scratch geometry when atomicity
// matters).
func (p *Polyhedron) AddFaces(planes []*math32.Plane, faceIDs []int, dropped *[]int) bool {
	for i, plane := range planes {
		if p.Cut(plane, faceIDs[i], dropped) == Nullified {
			return false
		}
	}
	return true
}
