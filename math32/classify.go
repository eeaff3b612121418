// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// PointStatus classifies a point's position relative to a plane.
type PointStatus int

const (
	// Above means the point lies on the side the plane's normal points to.
	Above PointStatus = iota
	// Below means the point lies on the opposite side from the plane's normal.
	Below
	// Inside means the point lies within DotEpsilon of the plane.
	Inside
)

// DotEpsilon is the tolerance used by ClassifyPoint and RayClassify when
// comparing a signed distance against zero. It must be generous enough to
// swallow the float32 error accumulated by repeated plane cuts.
var DotEpsilon float32 = 0.0001

// PositionEpsilon is the tolerance used when comparing vertex positions,
// e.g. to decide that a dragged vertex has reached its target; it is also
// the default of polyhedron.MergeEpsilon.
var PositionEpsilon float32 = 0.001

// ClassifyPoint returns the point's status relative to this plane.
func (p *Plane) ClassifyPoint(point *Vector3) PointStatus {

	dist := p.DistanceToPoint(point)
	if dist > DotEpsilon {
		return Above
	}
	if dist < -DotEpsilon {
		return Below
	}
	return Inside
}

// RayClassify classifies point against the plane through origin with
// normal dir, without constructing a Plane explicitly.
func RayClassify(origin, dir, point *Vector3) PointStatus {

	var rel Vector3
	rel.SubVectors(point, origin)
	dist := dir.Dot(&rel)
	if dist > DotEpsilon {
		return Above
	}
	if dist < -DotEpsilon {
		return Below
	}
	return Inside
}

// Snap rounds v's coordinates to the nearest integer grid point in place
// and returns v.
func Snap(v *Vector3) *Vector3 {

	return v.Round()
}

// BestTriple scans the closed ring of vertex positions (as ordered by a
// side's vertex cycle) and picks the consecutive triple (prev, cur, next)
// whose two edges are closest to perpendicular, i.e. minimizing the
// absolute dot product of their normalized directions. Re-deriving a
// plane from this triple, rather than an arbitrary one, is the numerically
// stable choice after repeated cuts have nudged the ring's vertices.
// Returns the triple as (p0, p1, p2) = (cur, next, prev), the point order
// PlaneFromPoints expects.
func BestTriple(ring []Vector3) (p0, p1, p2 Vector3) {

	n := len(ring)
	bestDot := float32(1)
	best := 0
	for i := 0; i < n && bestDot > 0; i++ {
		cur := ring[i]
		prev := ring[(i-1+n)%n]
		next := ring[(i+1)%n]

		var v1, v2 Vector3
		v1.SubVectors(&prev, &cur).Normalize()
		v2.SubVectors(&next, &cur).Normalize()
		dot := Abs(v1.Dot(&v2))
		if dot < bestDot {
			bestDot = dot
			best = i
		}
	}

	cur := ring[best]
	prev := ring[(best-1+n)%n]
	next := ring[(best+1)%n]
	return cur, next, prev
}

// Axis identifies a coordinate axis for 90-degree rotations, mirrors and
// grid-aligned flips shared by the polyhedron, texture and brush layers.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// RotateComponents90 permutes the two components of v orthogonal to axis
// by 90 degrees, clockwise when cw is true, looking down the positive
// axis. This is an exact component permutation with sign flips, never
// trig, so grid-snapped coordinates stay snapped.
func RotateComponents90(v *Vector3, axis Axis, cw bool) {

	switch axis {
	case AxisX:
		y, z := v.Y, v.Z
		if cw {
			v.Y, v.Z = z, -y
		} else {
			v.Y, v.Z = -z, y
		}
	case AxisY:
		x, z := v.X, v.Z
		if cw {
			v.X, v.Z = -z, x
		} else {
			v.X, v.Z = z, -x
		}
	case AxisZ:
		x, y := v.X, v.Y
		if cw {
			v.X, v.Y = y, -x
		} else {
			v.X, v.Y = -y, x
		}
	}
}

// PlaneFromPoints builds the plane through p0, p1, p2 with normal
// (p2-p0)x(p1-p0), i.e. the winding of the input triple gives an
// outward-pointing normal by the face-plane convention used throughout
// this package.
func PlaneFromPoints(p0, p1, p2 *Vector3) *Plane {

	var plane Plane
	plane.SetFromCoplanarPoints(p1, p0, p2)
	return &plane
}
