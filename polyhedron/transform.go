package polyhedron

import "github.com/trenchworks/brushgeo/math32"

// Axis re-exports math32's axis identifier so callers need not import
// math32 just to name a rotation/flip axis.
type Axis = math32.Axis

const (
	AxisX = math32.AxisX
	AxisY = math32.AxisY
	AxisZ = math32.AxisZ
)

// Translate adds delta to every vertex position and to Bounds. No
// topology change occurs; Face planes must be re-derived by the caller
// (the brush/texture layer), since the polyhedron mesh carries no texture
// state of its own.
func (p *Polyhedron) Translate(delta *math32.Vector3) {

	for i := range p.Vertices {
		p.Vertices[i].Position.Add(delta)
	}
	p.Bounds.Translate(delta)
}

// Rotate90CW rotates every vertex (and Bounds) by 90 degrees clockwise
// about axis, pivoting at center.
func (p *Polyhedron) Rotate90CW(axis Axis, center *math32.Vector3) {
	p.rotate90All(axis, center, true)
}

// Rotate90CCW is the counter-clockwise complement of Rotate90CW.
func (p *Polyhedron) Rotate90CCW(axis Axis, center *math32.Vector3) {
	p.rotate90All(axis, center, false)
}

func (p *Polyhedron) rotate90All(axis Axis, center *math32.Vector3, cw bool) {

	for i := range p.Vertices {
		v := &p.Vertices[i].Position
		v.Sub(center)
		math32.RotateComponents90(v, axis, cw)
		v.Add(center)
	}
	rotateBounds90(&p.Bounds, axis, center, cw)
}

func rotateBounds90(b *math32.Box3, axis Axis, center *math32.Vector3, cw bool) {

	min, max := b.Min, b.Max
	min.Sub(center)
	math32.RotateComponents90(&min, axis, cw)
	min.Add(center)
	max.Sub(center)
	math32.RotateComponents90(&max, axis, cw)
	max.Add(center)
	b.SetFromPoints([]math32.Vector3{min, max})
}

// Rotate applies the arbitrary rotation q about center to every vertex and
// recomputes Bounds from the rotated positions (a 90-degree-permutation
// fast path does not apply here, so Bounds is rebuilt rather than
// mirrored in place).
func (p *Polyhedron) Rotate(q *math32.Quaternion, center *math32.Vector3) {

	for i := range p.Vertices {
		v := &p.Vertices[i].Position
		v.Sub(center)
		v.ApplyQuaternion(q)
		v.Add(center)
	}
	p.RecomputeBounds()
}

// Flip reflects every vertex coordinate on axis about center, then
// reverses the winding of every edge and side: reflection inverts
// orientation, and every side's normal must remain outward, so the cycles
// must be reversed to compensate.
func (p *Polyhedron) Flip(axis Axis, center *math32.Vector3) {

	for i := range p.Vertices {
		v := &p.Vertices[i].Position
		switch axis {
		case AxisX:
			v.X = 2*center.X - v.X
		case AxisY:
			v.Y = 2*center.Y - v.Y
		default:
			v.Z = 2*center.Z - v.Z
		}
	}

	min, max := p.Bounds.Min, p.Bounds.Max
	switch axis {
	case AxisX:
		min.X, max.X = 2*center.X-max.X, 2*center.X-min.X
	case AxisY:
		min.Y, max.Y = 2*center.Y-max.Y, 2*center.Y-min.Y
	default:
		min.Z, max.Z = 2*center.Z-max.Z, 2*center.Z-min.Z
	}
	p.Bounds.Set(&min, &max)

	for i := range p.Edges {
		e := &p.Edges[i]
		e.Left, e.Right = e.Right, e.Left
	}
	for i := range p.Sides {
		p.flipSideWinding(i)
	}
}

// flipSideWinding reverses a side's edge cycle in place and rebuilds its
// vertex cycle from it. Flip has already swapped every edge's Left/Right,
// so each edge's startVertex/endVertex from this side are exchanged and
// agree with the reversed cycle.
func (p *Polyhedron) flipSideWinding(sideIdx int) {
	side := &p.Sides[sideIdx]
	es := side.Edges
	for i, j := 0, len(es)-1; i < j; i, j = i+1, j-1 {
		es[i], es[j] = es[j], es[i]
	}
	for i, e := range es {
		side.Vertices[i] = p.Edges[e].startVertex(sideIdx)
	}
}

// Snap rounds every vertex to the integer grid and recomputes Bounds.
// Face planes must be re-derived by the caller from the snapped
// vertices (Face.updatePoints in the texture layer).
func (p *Polyhedron) Snap() {

	for i := range p.Vertices {
		math32.Snap(&p.Vertices[i].Position)
	}
	p.RecomputeBounds()
}
