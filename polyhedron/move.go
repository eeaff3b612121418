package polyhedron

import "github.com/trenchworks/brushgeo/math32"

// MoveResult reports the outcome of a vertex/edge/face drag.
type MoveResult struct {
	// FinalIndex is the vertex index the moved element ended up at; it
	// may differ from the index passed in if a merge occurred.
	FinalIndex int
	// Moved is false iff the brush is unchanged (delta was zero, or no
	// safe motion was possible at all).
	Moved bool
}

const maxMoveIterations = 64

// SidePlane derives the plane of a side purely from its own vertex ring,
// using the same least-collinear-triple search as the texture layer's
// Face.updatePoints so a Side's derived plane agrees with its bound
// Face's boundary (invariant 5).
func (p *Polyhedron) SidePlane(sideIdx int) *math32.Plane {

	side := &p.Sides[sideIdx]
	ring := make([]math32.Vector3, len(side.Vertices))
	for i, v := range side.Vertices {
		ring[i] = p.Vertices[v].Position
	}
	p0, p1, p2 := math32.BestTriple(ring)
	return math32.PlaneFromPoints(&p0, &p1, &p2)
}

func (p *Polyhedron) sideHasVertex(sideIdx, vIdx int) bool {
	for _, v := range p.Sides[sideIdx].Vertices {
		if v == vIdx {
			return true
		}
	}
	return false
}

func (p *Polyhedron) incidentSides(vIdx int) []int {
	var out []int
	for i := range p.Sides {
		if p.sideHasVertex(i, vIdx) {
			out = append(out, i)
		}
	}
	return out
}

// farthestFraction returns the largest t in [0,1] by which vIdx can travel
// along remaining before crossing the plane of a non-incident side,
// i.e. the distance the vertex can move before the polyhedron would
// become non-convex.
func (p *Polyhedron) farthestFraction(vIdx int, remaining *math32.Vector3) float32 {

	pos := p.Vertices[vIdx].Position
	var end math32.Vector3
	end.AddVectors(&pos, remaining)

	best := float32(1)
	for sideIdx := range p.Sides {
		if p.sideHasVertex(sideIdx, vIdx) {
			continue
		}
		plane := p.SidePlane(sideIdx)
		d0 := plane.DistanceToPoint(&pos)
		d1 := plane.DistanceToPoint(&end)
		if d1 <= math32.DotEpsilon {
			continue
		}
		if d0 >= d1 {
			continue
		}
		t := (math32.DotEpsilon - d0) / (d1 - d0)
		if t < 0 {
			t = 0
		}
		if t < best {
			best = t
		}
	}
	if best < 0 {
		best = 0
	}
	return best
}

// MoveVertex drags the vertex at index idx by delta, working on an
// internal copy so the receiver is left untouched on failure. idx is a
// plain vertex index: edge midpoints and face centroids are not addressed
// through it (SplitAndMoveEdge and SplitAndMoveFace move those). newSides
// is always empty, since no merge creates a side; droppedFaceIDs lists
// the FaceID of every side removed by a merge (the caller must delete the
// corresponding Face).
func (p *Polyhedron) MoveVertex(idx int, delta math32.Vector3) (result MoveResult, newSides, droppedFaceIDs []int) {

	p.checkVertexIndex(idx)

	if delta.LengthSq() == 0 {
		return MoveResult{idx, false}, nil, nil
	}

	work := p.Clone()
	finalIdx, moved, ns, df := work.moveVertexIterative(idx, delta)
	if !moved {
		return MoveResult{idx, false}, nil, nil
	}

	*p = *work
	return MoveResult{finalIdx, true}, ns, df
}

func (p *Polyhedron) moveVertexIterative(vIdx int, delta math32.Vector3) (finalIdx int, moved bool, newSides, droppedFaceIDs []int) {

	var target math32.Vector3
	target.AddVectors(&p.Vertices[vIdx].Position, &delta)

	cur := vIdx
	anyProgress := false

	for i := 0; i < maxMoveIterations; i++ {
		var remaining math32.Vector3
		remaining.SubVectors(&target, &p.Vertices[cur].Position)
		if remaining.LengthSq() < math32.PositionEpsilon*math32.PositionEpsilon {
			break
		}

		t := p.farthestFraction(cur, &remaining)
		if t <= 0 {
			break
		}

		step := remaining
		step.MultiplyScalar(t)
		p.Vertices[cur].Position.Add(&step)
		anyProgress = true

		newCur, ns, df, mergedAny := p.mergeIncidentDegeneracies(cur)
		newSides = append(newSides, ns...)
		droppedFaceIDs = append(droppedFaceIDs, df...)
		cur = newCur
		if !mergedAny && t >= 1 {
			break
		}
	}

	p.RecomputeBounds()
	return cur, anyProgress, newSides, droppedFaceIDs
}

// mergeIncidentDegeneracies inspects the edges incident to vIdx after a
// partial move and collapses any that have become shorter than
// MergeEpsilon: the two endpoints are unified, the zero-length edge is
// removed, and each side that edge belonged to has it spliced out of its
// cycle. A side that collapses to fewer than 3 edges is itself removed
// (its FaceID, if any, reported in droppedFaceIDs). Sides that have
// become coplanar across the collapsed edge are not merged, and newSides
// is always empty.
func (p *Polyhedron) mergeIncidentDegeneracies(vIdx int) (finalIdx int, newSides, droppedFaceIDs []int, mergedAny bool) {

	for pass := 0; pass < 8; pass++ {
		collapsed := false
		for eIdx := range p.Edges {
			e := p.Edges[eIdx]
			if e.deleted || (e.Start != vIdx && e.End != vIdx) {
				continue
			}
			a, b := e.Start, e.End
			if p.Vertices[a].Position.DistanceTo(&p.Vertices[b].Position) >= MergeEpsilon {
				continue
			}

			survivor, victim := a, b
			if victim == vIdx {
				survivor, victim = b, a
			}

			p.logger().Debug("vertex %d merging into %d: edge %d collapsed below MergeEpsilon", victim, survivor, eIdx)
			df, newVIdx := p.collapseEdge(eIdx, survivor, victim)
			droppedFaceIDs = append(droppedFaceIDs, df...)
			vIdx = newVIdx
			collapsed = true
			mergedAny = true
			break
		}
		if !collapsed {
			break
		}
	}

	return vIdx, newSides, droppedFaceIDs, mergedAny
}

// collapseEdge removes eIdx (whose endpoints are survivor and victim),
// replaces every reference to victim with survivor, and splices the edge
// out of the two sides it bordered. A side reduced below 3 edges is
// dropped (its FaceID reported); otherwise the side's ring is simply
// shortened by one edge and one vertex, which is the degenerate-triangle
// collapse the direct-manipulation contract requires.
func (p *Polyhedron) collapseEdge(eIdx, survivor, victim int) (droppedFaceIDs []int, newSurvivor int) {

	e := p.Edges[eIdx]
	p.Edges[eIdx].deleted = true

	for i := range p.Edges {
		if p.Edges[i].deleted {
			continue
		}
		if p.Edges[i].Start == victim {
			p.Edges[i].Start = survivor
		}
		if p.Edges[i].End == victim {
			p.Edges[i].End = survivor
		}
	}
	for s := range p.Sides {
		for j, v := range p.Sides[s].Vertices {
			if v == victim {
				p.Sides[s].Vertices[j] = survivor
			}
		}
	}

	for _, sideIdx := range [2]int{e.Left, e.Right} {
		if sideIdx == none {
			continue
		}
		if dropped := p.removeEdgeFromSide(sideIdx, eIdx, victim, survivor); dropped {
			p.logger().Debug("side %d collapsed below 3 edges during merge, dropping", sideIdx)
			if faceID := p.Sides[sideIdx].FaceID; faceID != none {
				droppedFaceIDs = append(droppedFaceIDs, faceID)
			}
			p.Sides[sideIdx].deleted = true
		}
	}

	p.Vertices[victim].deleted = true
	vRemap, _, _ := p.compactAll()
	return droppedFaceIDs, vRemap[survivor]
}

// removeEdgeFromSide splices edge eIdx out of sideIdx's cycle, replacing
// every occurrence of victim with survivor in its vertex ring, and
// reports whether the side collapsed below a valid polygon (<3 edges).
func (p *Polyhedron) removeEdgeFromSide(sideIdx, eIdx, victim, survivor int) (collapsed bool) {

	side := &p.Sides[sideIdx]
	newEdges := make([]int, 0, len(side.Edges))
	for _, e := range side.Edges {
		if e != eIdx {
			newEdges = append(newEdges, e)
		}
	}
	newVertices := make([]int, 0, len(side.Vertices))
	for _, v := range side.Vertices {
		if v == victim {
			v = survivor
		}
		newVertices = append(newVertices, v)
	}
	// a collapsed edge shares both its endpoints with its neighbors in the
	// ring, so survivor now appears twice consecutively; drop the repeat.
	deduped := newVertices[:0]
	for i, v := range newVertices {
		if i > 0 && v == deduped[len(deduped)-1] {
			continue
		}
		deduped = append(deduped, v)
	}
	if len(deduped) > 1 && deduped[0] == deduped[len(deduped)-1] {
		deduped = deduped[:len(deduped)-1]
	}

	side.Edges = newEdges
	side.Vertices = deduped
	return len(side.Edges) < 3
}

// compactAll removes tombstoned vertices, edges and sides, remapping
// every index reference, and returns the three remap tables (old index
// -> new index, none if removed) so a caller holding on to indices
// captured before compaction can translate them.
func (p *Polyhedron) compactAll() (vRemap, eRemap, sRemap []int) {

	vRemap = make([]int, len(p.Vertices))
	kv := p.Vertices[:0]
	w := 0
	for i := range p.Vertices {
		if p.Vertices[i].deleted {
			vRemap[i] = none
			continue
		}
		vRemap[i] = w
		kv = append(kv, p.Vertices[i])
		w++
	}
	p.Vertices = kv

	eRemap = make([]int, len(p.Edges))
	ke := p.Edges[:0]
	w = 0
	for i := range p.Edges {
		if p.Edges[i].deleted {
			eRemap[i] = none
			continue
		}
		eRemap[i] = w
		ke = append(ke, p.Edges[i])
		w++
	}
	p.Edges = ke

	for i := range p.Edges {
		p.Edges[i].Start = vRemap[p.Edges[i].Start]
		p.Edges[i].End = vRemap[p.Edges[i].End]
	}

	sRemap = make([]int, len(p.Sides))
	ks := p.Sides[:0]
	w = 0
	for i := range p.Sides {
		if p.Sides[i].deleted {
			sRemap[i] = none
			continue
		}
		sRemap[i] = w
		ks = append(ks, p.Sides[i])
		w++
	}
	p.Sides = ks

	for i := range p.Edges {
		if p.Edges[i].Left != none {
			p.Edges[i].Left = sRemap[p.Edges[i].Left]
		}
		if p.Edges[i].Right != none {
			p.Edges[i].Right = sRemap[p.Edges[i].Right]
		}
	}
	for i := range p.Sides {
		for j, v := range p.Sides[i].Vertices {
			p.Sides[i].Vertices[j] = vRemap[v]
		}
		for j, e := range p.Sides[i].Edges {
			p.Sides[i].Edges[j] = eRemap[e]
		}
	}
	return vRemap, eRemap, sRemap
}
