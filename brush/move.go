package brush

import (
	"github.com/trenchworks/brushgeo/math32"
	"github.com/trenchworks/brushgeo/polyhedron"
	"github.com/trenchworks/brushgeo/texture"
)

// dropFaces removes every face whose ID appears in ids.
func (b *Brush) dropFaces(ids []int) {
	for _, id := range ids {
		if _, i := b.faceByID(id); i >= 0 {
			b.removeFaceAt(i)
		}
	}
}

// bindNewSides creates a fresh Face for every side in sides that has no
// Face bound yet (a split's fanned-out triangles all still carry the
// split side's old, now-dropped FaceID), cloning template's texture
// frame so the new faces render the same surface the split came from.
func (b *Brush) bindNewSides(sides []int, template *texture.Face) {

	for _, sideIdx := range sides {
		if _, i := b.faceByID(b.Geometry.SideFaceID(sideIdx)); i >= 0 {
			continue
		}
		ring := b.Geometry.SideRing(sideIdx)
		if len(ring) < 3 {
			continue
		}
		p0, p1, p2 := math32.BestTriple(ring)
		f := texture.MustNewFace(p0, p1, p2)
		if template != nil {
			f.SetTexture(template.Tex)
			f.XOffset, f.YOffset = template.XOffset, template.YOffset
			f.Rotation = template.Rotation
			f.XScale, f.YScale = template.XScale, template.YScale
		}
		b.Geometry.SetSideFaceID(sideIdx, f.ID)
		b.Faces = append(b.Faces, f)
	}
}

// MoveVertex drags the vertex at idx by delta, applying any consequent
// degeneracy merges to the brush's face list.
func (b *Brush) MoveVertex(idx int, delta math32.Vector3) (polyhedron.MoveResult, bool) {

	result, newSides, dropped := b.Geometry.MoveVertex(idx, delta)
	if !result.Moved {
		return result, false
	}
	b.dropFaces(dropped)
	b.bindNewSides(newSides, nil)
	b.rebindSideIDs()
	b.notify()
	return result, true
}

// MoveEdge drags both endpoints of the edge between v0 and v1 by delta.
func (b *Brush) MoveEdge(v0, v1 int, delta math32.Vector3) (finalV0, finalV1 int, ok bool) {

	r0, r1, moved, newSides, dropped := b.Geometry.MoveEdge(v0, v1, delta)
	if !moved {
		return v0, v1, false
	}
	b.dropFaces(dropped)
	b.bindNewSides(newSides, nil)
	b.rebindSideIDs()
	b.notify()
	return r0, r1, true
}

// MoveFace drags every vertex of the side bound to face by delta.
func (b *Brush) MoveFace(face *texture.Face, delta math32.Vector3) bool {

	if face.SideID < 0 {
		return false
	}
	verts := append([]int(nil), b.Geometry.Sides[face.SideID].Vertices...)
	_, moved, newSides, dropped := b.Geometry.MoveFace(verts, delta)
	if !moved {
		return false
	}
	b.dropFaces(dropped)
	b.bindNewSides(newSides, nil)
	b.rebindSideIDs()
	b.notify()
	return true
}

// SplitAndMoveEdge inserts a new vertex at the midpoint of the edge
// between v0 and v1, then drags it by delta.
func (b *Brush) SplitAndMoveEdge(v0, v1 int, delta math32.Vector3) (polyhedron.MoveResult, bool) {

	eIdx := b.Geometry.EdgeBetween(v0, v1)
	if eIdx < 0 {
		return polyhedron.MoveResult{}, false
	}
	result, newSides, dropped := b.Geometry.SplitAndMoveEdge(eIdx, delta)
	if !result.Moved {
		return result, false
	}
	b.dropFaces(dropped)
	b.bindNewSides(newSides, nil)
	b.rebindSideIDs()
	b.notify()
	return result, true
}

// SplitAndMoveFace fans face's side into triangles around a new centroid
// vertex, then drags the centroid by delta. The fanned triangles inherit
// face's texture frame; face itself is removed.
func (b *Brush) SplitAndMoveFace(face *texture.Face, delta math32.Vector3) bool {

	if face.SideID < 0 {
		return false
	}
	template := *face
	result, newSides, dropped := b.Geometry.SplitAndMoveFace(face.SideID, delta)
	if !result.Moved {
		return false
	}
	b.dropFaces(dropped)
	b.bindNewSides(newSides, &template)
	b.rebindSideIDs()
	b.notify()
	return true
}
