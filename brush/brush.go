// Package brush is the façade over a polyhedron mesh and its bound
// textured faces: it owns both, keeps them in lock-step across cuts,
// transforms and direct-manipulation drags, and notifies its owning
// entity of every change.
package brush

import (
	"sync/atomic"

	"github.com/trenchworks/brushgeo/logging"
	"github.com/trenchworks/brushgeo/math32"
	"github.com/trenchworks/brushgeo/notify"
	"github.com/trenchworks/brushgeo/polyhedron"
	"github.com/trenchworks/brushgeo/texture"
)

var nextBrushID int64

func allocBrushID() int {
	return int(atomic.AddInt64(&nextBrushID, 1) - 1)
}

// Entity is the minimal contract a brush's owner must satisfy: it learns
// about every successful mutation so it can recompute its own bounds.
// Map I/O, selection state and undo/redo live above this interface, not
// inside it.
type Entity interface {
	BrushChanged(*Brush)
	Bounds() math32.Box3
}

// Brush owns a set of textured half-spaces and the one convex polyhedron
// they intersect to. WorldBounds is the very large axis-aligned box that
// bounds the entire map universe; every brush's own Bounds must nest
// inside it.
type Brush struct {
	ID          int
	WorldBounds math32.Box3

	Faces    []*texture.Face
	Geometry *polyhedron.Polyhedron

	entity Entity
	Hub    *notify.Hub
	Log    *logging.Logger
}

func (b *Brush) logger() *logging.Logger {
	if b.Log != nil {
		return b.Log
	}
	return logging.Default
}

func (b *Brush) notify() {
	if b.Hub != nil {
		b.Hub.NotifyBrushChanged(uint64(b.ID))
	}
	if b.entity != nil {
		b.entity.BrushChanged(b)
	}
}

// SetEntity binds the owning entity notified of every change.
func (b *Brush) SetEntity(e Entity) {
	b.entity = e
}

// Entity returns the currently bound owning entity, or nil.
func (b *Brush) Entity() Entity {
	return b.entity
}

// NewBox seeds a brush as a six-faced box over boundingBox, all faces
// sharing tex. The point triples are the source's exact per-face
// orderings (front/left/bottom/back/right/top), chosen so each face's
// derived normal already points outward without any extra bookkeeping.
func NewBox(worldBounds, boundingBox math32.Box3, tex *texture.Texture) *Brush {

	b := &Brush{
		ID:          allocBrushID(),
		WorldBounds: worldBounds,
		Geometry:    polyhedron.NewBox(worldBounds),
	}

	min, max := boundingBox.Min, boundingBox.Max

	mk := func(p0, p1, p2 math32.Vector3) *texture.Face {
		f := texture.MustNewFace(p0, p1, p2)
		f.SetTexture(tex)
		return f
	}

	p1 := min
	front := mk(p1, math32.Vector3{X: p1.X, Y: p1.Y, Z: max.Z}, math32.Vector3{X: max.X, Y: p1.Y, Z: p1.Z})
	left := mk(p1, math32.Vector3{X: p1.X, Y: max.Y, Z: p1.Z}, math32.Vector3{X: p1.X, Y: p1.Y, Z: max.Z})
	bottom := mk(p1, math32.Vector3{X: max.X, Y: p1.Y, Z: p1.Z}, math32.Vector3{X: p1.X, Y: max.Y, Z: p1.Z})

	p1 = max
	back := mk(p1, math32.Vector3{X: min.X, Y: p1.Y, Z: p1.Z}, math32.Vector3{X: p1.X, Y: p1.Y, Z: min.Z})
	right := mk(p1, math32.Vector3{X: p1.X, Y: p1.Y, Z: min.Z}, math32.Vector3{X: p1.X, Y: min.Y, Z: p1.Z})
	top := mk(p1, math32.Vector3{X: p1.X, Y: min.Y, Z: p1.Z}, math32.Vector3{X: min.X, Y: p1.Y, Z: p1.Z})

	for _, f := range []*texture.Face{front, left, bottom, back, right, top} {
		b.AddFace(f)
	}
	return b
}

// NewFromTemplate deep-copies every face of template into a fresh brush
// against worldBounds, rebuilding the geometry by re-cutting each copied
// face in turn (the source's BrushGeometry has no generic deep-copy path
// either; it is always reconstructed from the face list).
func NewFromTemplate(worldBounds math32.Box3, tmpl *Brush) *Brush {

	b := &Brush{
		ID:          allocBrushID(),
		WorldBounds: worldBounds,
		Geometry:    polyhedron.NewBox(worldBounds),
	}
	for _, f := range tmpl.Faces {
		cp := texture.MustNewFace(f.P0, f.P1, f.P2)
		cp.SetTexture(f.Tex)
		cp.XOffset, cp.YOffset = f.XOffset, f.YOffset
		cp.Rotation = f.Rotation
		cp.XScale, cp.YScale = f.XScale, f.YScale
		b.AddFace(cp)
	}
	return b
}

// faceByID finds a bound face by its texture.Face.ID.
func (b *Brush) faceByID(id int) (*texture.Face, int) {
	for i, f := range b.Faces {
		if f.ID == id {
			return f, i
		}
	}
	return nil, -1
}

func (b *Brush) removeFaceAt(i int) {
	b.Faces = append(b.Faces[:i], b.Faces[i+1:]...)
}

// rebindSideIDs refreshes every live face's SideID and defining points
// from the current geometry, and re-derives each face's plane from its
// side's vertex ring. Called after any operation that may have changed
// which sides exist or how they're numbered.
func (b *Brush) rebindSideIDs() {

	for i := 0; i < b.Geometry.SideCount(); i++ {
		faceID := b.Geometry.SideFaceID(i)
		if faceID < 0 {
			continue
		}
		if f, _ := b.faceByID(faceID); f != nil {
			f.SideID = i
			f.UpdatePoints(b.Geometry.SideRing(i))
		}
	}
}

// AddFace cuts the brush by face's half-space. Returns false iff the cut
// would nullify the brush (the caller must not retry with this face).
func (b *Brush) AddFace(face *texture.Face) bool {

	var dropped []int
	result := b.Geometry.Cut(&face.Plane, face.ID, &dropped)

	switch result {
	case polyhedron.Nullified:
		b.logger().Warn("brush %d: face %d nullifies geometry, rejected", b.ID, face.ID)
		return false
	case polyhedron.Redundant:
		b.logger().Debug("brush %d: face %d redundant, not added", b.ID, face.ID)
		return true
	}

	for _, id := range dropped {
		if _, i := b.faceByID(id); i >= 0 {
			b.removeFaceAt(i)
		}
	}
	b.Faces = append(b.Faces, face)
	b.rebindSideIDs()
	return true
}

// rebuildGeometry recuts the brush's current face list from scratch
// against a fresh box seeded at WorldBounds, following the source's
// rebuildGeometry/resize/enlarge pattern: face edits that only move
// existing half-spaces are always applied by discarding the geometry and
// re-adding every face rather than patching the mesh in place.
func (b *Brush) rebuildGeometry() {

	b.Geometry = polyhedron.NewBox(b.WorldBounds)
	faces := b.Faces
	b.Faces = nil
	for _, f := range faces {
		if !b.AddFace(f) {
			b.logger().Warn("brush %d: face %d dropped during geometry rebuild", b.ID, f.ID)
		}
	}
}

// CanDeleteFace reports whether removing face would still leave a closed
// polyhedron, by trial-cutting every other face against a scratch box.
func (b *Brush) CanDeleteFace(face *texture.Face) bool {

	trial := polyhedron.NewBox(b.WorldBounds)
	var dropped []int
	for _, f := range b.Faces {
		if f.ID == face.ID {
			continue
		}
		trial.Cut(&f.Plane, f.ID, &dropped)
	}
	return trial.Closed()
}

// DeleteFace removes face and rebuilds the geometry from what remains.
func (b *Brush) DeleteFace(face *texture.Face) {

	if _, i := b.faceByID(face.ID); i >= 0 {
		b.removeFaceAt(i)
	}
	b.rebuildGeometry()
	b.notify()
}

// Translate shifts every face and the geometry by delta.
func (b *Brush) Translate(delta math32.Vector3, lockTextures bool) {

	t := translateTransform(delta)
	for _, f := range b.Faces {
		applyFaceTransform(f, t, lockTextures, false)
	}
	b.Geometry.Translate(&delta)
	b.notify()
}

// Rotate90CW rotates every face and the geometry 90 degrees clockwise
// about axis, pivoting at center.
func (b *Brush) Rotate90CW(axis math32.Axis, center math32.Vector3, lockTextures bool) {
	b.rotate90(axis, center, true, lockTextures)
}

// Rotate90CCW is Rotate90CW's counter-clockwise complement.
func (b *Brush) Rotate90CCW(axis math32.Axis, center math32.Vector3, lockTextures bool) {
	b.rotate90(axis, center, false, lockTextures)
}

func (b *Brush) rotate90(axis math32.Axis, center math32.Vector3, cw, lockTextures bool) {

	t := rotate90Transform(axis, center, cw)
	for _, f := range b.Faces {
		applyFaceTransform(f, t, lockTextures, false)
	}
	if cw {
		b.Geometry.Rotate90CW(axis, &center)
	} else {
		b.Geometry.Rotate90CCW(axis, &center)
	}
	b.notify()
}

// Rotate applies an arbitrary quaternion rotation about center.
func (b *Brush) Rotate(q math32.Quaternion, center math32.Vector3, lockTextures bool) {

	t := rotateTransform(q, center)
	for _, f := range b.Faces {
		applyFaceTransform(f, t, lockTextures, false)
	}
	b.Geometry.Rotate(&q, &center)
	b.notify()
}

// Flip mirrors every face and the geometry across center on axis,
// reversing each face's winding (mandatory: reflection inverts
// orientation, so every side's normal must be recomputed the long way).
func (b *Brush) Flip(axis math32.Axis, center math32.Vector3, lockTextures bool) {

	t := flipTransform(axis, center)
	for _, f := range b.Faces {
		applyFaceTransform(f, t, lockTextures, true)
	}
	b.Geometry.Flip(axis, &center)
	b.notify()
}

// Snap rounds every vertex to the integer grid and re-derives every
// face's plane and points from the snapped geometry.
func (b *Brush) Snap() {

	b.Geometry.Snap()
	b.rebindSideIDs()
	b.notify()
}

// CanResize reports whether moving face by dist would still yield a
// valid, in-world-bounds geometry with nothing dropped. A moved face that
// no longer cuts the trial geometry (it lies at or beyond the world
// bounds) is rejected too.
func (b *Brush) CanResize(face *texture.Face, dist float32) bool {

	trial := *face
	trial.Move(dist, false)
	if trial.Plane.Equals(&face.Plane) {
		return false
	}

	testGeom := polyhedron.NewBox(b.WorldBounds)
	var dropped []int
	for _, f := range b.Faces {
		if f.ID == face.ID {
			continue
		}
		testGeom.Cut(&f.Plane, f.ID, &dropped)
	}
	result := testGeom.Cut(&trial.Plane, trial.ID, &dropped)

	if len(dropped) != 0 || result != polyhedron.Split {
		return false
	}
	return containsBounds(b.WorldBounds, testGeom.Bounds)
}

// Resize moves face by dist and rebuilds the geometry around it.
func (b *Brush) Resize(face *texture.Face, dist float32, lockTextures bool) {

	face.Move(dist, lockTextures)
	b.rebuildGeometry()
	b.notify()
}

// Enlarge thickens every face outward by delta and rebuilds the geometry.
func (b *Brush) Enlarge(delta float32, lockTextures bool) {

	for _, f := range b.Faces {
		f.Move(delta, lockTextures)
	}
	b.rebuildGeometry()
	b.notify()
}

func containsBounds(outer, inner math32.Box3) bool {
	return outer.ContainsBox(&inner)
}
