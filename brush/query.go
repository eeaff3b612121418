package brush

import "github.com/trenchworks/brushgeo/math32"

// ContainsPoint reports whether point lies inside every face's half-space
// (bounds-check first, since that is by far the cheaper rejection).
func (b *Brush) ContainsPoint(point math32.Vector3) bool {

	if !b.Geometry.Bounds.ContainsPoint(&point) {
		return false
	}
	for _, f := range b.Faces {
		if f.Plane.ClassifyPoint(&point) == math32.Above {
			return false
		}
	}
	return true
}

// vertexPositions returns every live vertex position of the brush's mesh.
func (b *Brush) vertexPositions() []math32.Vector3 {
	vs := make([]math32.Vector3, len(b.Geometry.Vertices))
	for i := range b.Geometry.Vertices {
		vs[i] = b.Geometry.Vertices[i].Position
	}
	return vs
}

// vertexStatusFromRay classifies an entire vertex set against the plane
// through origin with normal dir: ABOVE if every vertex is strictly above
// (or exactly on) the plane, BELOW symmetrically, INSIDE as soon as the
// set straddles both sides. A set lying entirely on the plane is BELOW.
// This is the 3-state classification the
// separating-axis test needs (not a simple "all above" bool): a
// candidate axis only separates two brushes when neither vertex set
// straddles it and the two sets land on opposite sides.
func vertexStatusFromRay(origin, dir math32.Vector3, points []math32.Vector3) math32.PointStatus {
	above, below := 0, 0
	for _, p := range points {
		switch math32.RayClassify(&origin, &dir, &p) {
		case math32.Above:
			above++
		case math32.Below:
			below++
		}
		if above > 0 && below > 0 {
			return math32.Inside
		}
	}
	if above > 0 {
		return math32.Above
	}
	return math32.Below
}

// IntersectsBrush reports whether b and other overlap, via separating-axis
// test: bounds reject, then each brush's own face normals against the
// other's vertices, then every pair of edges' cross product as a
// candidate separating axis.
func (b *Brush) IntersectsBrush(other *Brush) bool {

	if !b.Geometry.Bounds.IsIntersectionBox(&other.Geometry.Bounds) {
		return false
	}

	otherPoints := other.vertexPositions()
	for _, f := range b.Faces {
		if vertexStatusFromRay(f.P0, f.Plane.Normal(), otherPoints) == math32.Above {
			return false
		}
	}

	myPoints := b.vertexPositions()
	for _, f := range other.Faces {
		if vertexStatusFromRay(f.P0, f.Plane.Normal(), myPoints) == math32.Above {
			return false
		}
	}

	myEdges := b.Geometry.Edges
	theirEdges := other.Geometry.Edges
	for i := range myEdges {
		myDir := b.edgeDirection(i)
		for j := range theirEdges {
			theirDir := other.edgeDirection(j)

			var axis math32.Vector3
			axis.CrossVectors(&myDir, &theirDir)
			if axis.LengthSq() < math32.DotEpsilon {
				continue
			}

			origin := b.Geometry.Vertices[myEdges[i].Start].Position
			myStatus := vertexStatusFromRay(origin, axis, myPoints)
			if myStatus == math32.Inside {
				continue
			}
			theirStatus := vertexStatusFromRay(origin, axis, otherPoints)
			if theirStatus == math32.Inside {
				continue
			}
			if myStatus != theirStatus {
				return false
			}
		}
	}

	return true
}

func (b *Brush) edgeDirection(eIdx int) math32.Vector3 {
	e := b.Geometry.Edges[eIdx]
	var d math32.Vector3
	d.SubVectors(&b.Geometry.Vertices[e.End].Position, &b.Geometry.Vertices[e.Start].Position)
	return d
}

// ContainsBrush reports whether other lies entirely within b.
func (b *Brush) ContainsBrush(other *Brush) bool {

	if !b.Geometry.Bounds.ContainsBox(&other.Geometry.Bounds) {
		return false
	}
	for _, p := range other.vertexPositions() {
		if !b.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// IntersectsEntity reports whether b overlaps entityBounds, approximated
// (as the source does) by testing the box's 8 corners against b's faces:
// if any corner is contained, the box and the brush overlap.
func (b *Brush) IntersectsEntity(entityBounds math32.Box3) bool {

	if !b.Geometry.Bounds.IsIntersectionBox(&entityBounds) {
		return false
	}

	min, max := entityBounds.Min, entityBounds.Max
	corners := [8]math32.Vector3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
	}
	for _, c := range corners {
		if b.ContainsPoint(c) {
			return true
		}
	}
	return false
}

// ContainsEntity reports whether entityBounds lies entirely within b:
// every one of its 8 corners must be contained.
func (b *Brush) ContainsEntity(entityBounds math32.Box3) bool {

	if !b.Geometry.Bounds.ContainsBox(&entityBounds) {
		return false
	}

	min, max := entityBounds.Min, entityBounds.Max
	corners := [8]math32.Vector3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
	}
	for _, c := range corners {
		if !b.ContainsPoint(c) {
			return false
		}
	}
	return true
}
