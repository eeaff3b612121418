package polyhedron

import "github.com/trenchworks/brushgeo/math32"

// MoveFace drags every vertex of an existing side by the same delta. The
// vertices are sorted by their projection onto delta and moved in that
// order (lowest projection first) so a vertex already trailing the drag
// never has to pass through one still in its way, mirroring the bubble
// sort the source's side mover performs before applying any single
// vertex move.
func (p *Polyhedron) MoveFace(vertexIdxs []int, delta math32.Vector3) (finalIdxs []int, moved bool, newSides, droppedFaceIDs []int) {

	for _, v := range vertexIdxs {
		p.checkVertexIndex(v)
	}

	if delta.LengthSq() == 0 || len(vertexIdxs) == 0 {
		return append([]int(nil), vertexIdxs...), false, nil, nil
	}

	work := p.Clone()

	order := append([]int(nil), vertexIdxs...)
	proj := make([]float32, len(order))
	for i, v := range order {
		proj[i] = work.Vertices[v].Position.Dot(&delta)
	}
	for i := 0; i < len(order); i++ {
		for j := 0; j < len(order)-i-1; j++ {
			if proj[j] > proj[j+1] {
				proj[j], proj[j+1] = proj[j+1], proj[j]
				order[j], order[j+1] = order[j+1], order[j]
			}
		}
	}

	origPos := make(map[int]int, len(vertexIdxs))
	for i, v := range vertexIdxs {
		origPos[v] = i
	}

	finalIdxs = make([]int, len(vertexIdxs))
	for _, v := range order {
		r, ok, ns, df := work.moveVertexIterative(v, delta)
		if !ok {
			return append([]int(nil), vertexIdxs...), false, nil, nil
		}
		finalIdxs[origPos[v]] = r
		newSides = append(newSides, ns...)
		droppedFaceIDs = append(droppedFaceIDs, df...)
	}

	*p = *work
	return finalIdxs, true, newSides, droppedFaceIDs
}

// SplitAndMoveFace replaces the single side sideIdx with a fan of
// triangles meeting at a new centroid vertex, then drags the centroid by
// delta. The source leaves this case an empty stub; fanning the face into
// triangles is the natural reading of the written specification, since
// dragging a point out of a planar face's interior can only be
// represented by sides that are still individually planar. The caller
// must bind a fresh Face to every side in newSides and delete the Face
// that owned sideIdx (reported in droppedFaceIDs, followed by the FaceID
// of any side a merge removed during the drag).
func (p *Polyhedron) SplitAndMoveFace(sideIdx int, delta math32.Vector3) (result MoveResult, newSides, droppedFaceIDs []int) {

	p.checkSideIndex(sideIdx)

	work := p.Clone()
	centroidIdx, fanSides, splitDropped := work.splitSideTopology(sideIdx)

	finalIdx, ok, ns, df := work.moveVertexIterative(centroidIdx, delta)
	if !ok {
		return MoveResult{-1, false}, nil, nil
	}

	*p = *work
	newSides = append(fanSides, ns...)
	droppedFaceIDs = append(splitDropped, df...)
	return MoveResult{finalIdx, true}, newSides, droppedFaceIDs
}

// splitSideTopology replaces sideIdx with n triangular sides (n being the
// side's vertex count) fanned around a new centroid vertex, preserving
// the original winding so every triangle's outward normal still matches
// the polygon it replaces. Returns the centroid's vertex index and the
// indices of the new triangular sides.
func (p *Polyhedron) splitSideTopology(sideIdx int) (centroidIdx int, fanSides []int, droppedFaceIDs []int) {

	side := p.Sides[sideIdx]
	n := len(side.Vertices)

	var centroid math32.Vector3
	for _, v := range side.Vertices {
		centroid.Add(&p.Vertices[v].Position)
	}
	centroid.MultiplyScalar(1 / float32(n))
	centroidIdx = p.addVertex(centroid.X, centroid.Y, centroid.Z)

	base := len(p.Sides)
	spokes := make([]int, n)
	for k, v := range side.Vertices {
		spokes[k] = len(p.Edges)
		p.Edges = append(p.Edges, Edge{Start: v, End: centroidIdx, Left: base + k, Right: base + (k-1+n)%n, Mark: EdgeNew})
	}

	faceID := side.FaceID
	for i := 0; i < n; i++ {
		ringEdge := side.Edges[i]
		p.rebindEdgeSide(ringEdge, sideIdx, base+i)

		triEdges := []int{ringEdge, spokes[(i+1)%n], spokes[i]}
		tri := Side{FaceID: faceID, Mark: SideNew, Edges: triEdges}
		for _, e := range triEdges {
			tri.Vertices = append(tri.Vertices, p.Edges[e].startVertex(base+i))
		}
		p.Sides = append(p.Sides, tri)
		fanSides = append(fanSides, base+i)
	}

	p.Sides[sideIdx].deleted = true
	if faceID != none {
		droppedFaceIDs = append(droppedFaceIDs, faceID)
	}
	vRemap, _, sRemap := p.compactAll()

	centroidIdx = vRemap[centroidIdx]
	for i, s := range fanSides {
		fanSides[i] = sRemap[s]
	}

	return centroidIdx, fanSides, droppedFaceIDs
}

// rebindEdgeSide repoints whichever of eIdx's Left/Right fields equals
// oldSide to newSide.
func (p *Polyhedron) rebindEdgeSide(eIdx, oldSide, newSide int) {
	e := &p.Edges[eIdx]
	if e.Left == oldSide {
		e.Left = newSide
	}
	if e.Right == oldSide {
		e.Right = newSide
	}
}
