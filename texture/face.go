// Package texture implements the half-space "intent" layer of a brush: a
// Face carries the three defining points of a plane plus the texture
// coordinate frame projected onto it, and knows how to keep that frame
// locked to the surface under any transform.
package texture

import (
	"errors"
	"math"
	"sync/atomic"

	"github.com/trenchworks/brushgeo/math32"
)

// ErrDegenerateFace is returned by NewFace when its three defining points
// are coincident or collinear, so no plane normal can be derived (a
// programmer/input error: a parser handing malformed map geometry to the
// engine, never a condition a valid cut or transform can produce).
var ErrDegenerateFace = errors.New("texture: face points are coincident or collinear")

var nextFaceID int64

func allocFaceID() int {
	return int(atomic.AddInt64(&nextFaceID, 1) - 1)
}

// Texture is the opaque asset a Face projects onto its surface. UsageCount
// is maintained by SetTexture exactly like the source's reference count:
// callers decide when a zero count means the asset can be freed.
type Texture struct {
	Name          string
	Width, Height int
	UsageCount    int
}

// Face is a half-space boundary (three non-collinear points, winding
// p0,p1,p2 giving outward normal (p2-p0)x(p1-p0)) plus its texture frame.
// SideID is the back-reference to the polyhedron.Side realizing this half
// space; it is none (-1) until the face has been cut into a brush.
type Face struct {
	ID int

	P0, P1, P2 math32.Vector3
	Plane      math32.Plane

	Tex              *Texture
	XOffset, YOffset float32
	Rotation         float32
	XScale, YScale   float32

	SideID int
}

// NewFace builds a face from its three defining points with the default
// identity texture frame (no lock-relevant state to compensate yet).
// Returns ErrDegenerateFace if the points don't determine a plane.
func NewFace(p0, p1, p2 math32.Vector3) (*Face, error) {

	plane := math32.PlaneFromPoints(&p0, &p1, &p2)
	n := plane.Normal()
	if n.LengthSq() < math32.DotEpsilon*math32.DotEpsilon {
		return nil, ErrDegenerateFace
	}

	f := &Face{
		ID:     allocFaceID(),
		P0:     p0,
		P1:     p1,
		P2:     p2,
		XScale: 1,
		YScale: 1,
		SideID: -1,
	}
	f.Plane = *plane
	return f, nil
}

// MustNewFace is NewFace for call sites re-deriving a face from points
// already known to be non-degenerate (a cut's own ring, an existing
// face's own points copied verbatim): it panics on ErrDegenerateFace
// instead of threading an error through call paths that cannot
// meaningfully recover from one, matching spec.md §7's treatment of such
// a case as an invariant violation rather than an expected outcome.
func MustNewFace(p0, p1, p2 math32.Vector3) *Face {

	f, err := NewFace(p0, p1, p2)
	if err != nil {
		panic(err)
	}
	return f
}

// SetTexture rebinds the face's texture asset, maintaining the outgoing
// and incoming assets' usage counts the way the source's Face::setTexture
// does (decrement-then-increment, so rebinding to the same texture is a
// harmless no-op on the count).
func (f *Face) SetTexture(t *Texture) {

	if f.Tex != nil {
		f.Tex.UsageCount--
	}
	f.Tex = t
	if f.Tex != nil {
		f.Tex.UsageCount++
	}
}

// baseAxis is one row of the six-entry table mapping a cardinal face
// normal to its base in-plane U/V directions.
type baseAxis struct {
	normal, u, v math32.Vector3
}

var baseAxes = [6]baseAxis{
	{math32.Vector3{X: 0, Y: 0, Z: 1}, math32.Vector3{X: 1, Y: 0, Z: 0}, math32.Vector3{X: 0, Y: -1, Z: 0}},
	{math32.Vector3{X: 0, Y: 0, Z: -1}, math32.Vector3{X: 1, Y: 0, Z: 0}, math32.Vector3{X: 0, Y: -1, Z: 0}},
	{math32.Vector3{X: 1, Y: 0, Z: 0}, math32.Vector3{X: 0, Y: 1, Z: 0}, math32.Vector3{X: 0, Y: 0, Z: -1}},
	{math32.Vector3{X: -1, Y: 0, Z: 0}, math32.Vector3{X: 0, Y: 1, Z: 0}, math32.Vector3{X: 0, Y: 0, Z: -1}},
	{math32.Vector3{X: 0, Y: 1, Z: 0}, math32.Vector3{X: 1, Y: 0, Z: 0}, math32.Vector3{X: 0, Y: 0, Z: -1}},
	{math32.Vector3{X: 0, Y: -1, Z: 0}, math32.Vector3{X: 1, Y: 0, Z: 0}, math32.Vector3{X: 0, Y: 0, Z: -1}},
}

// selectBaseAxis returns the table row whose normal maximizes dot(n, row).
func selectBaseAxis(n *math32.Vector3) baseAxis {

	best := 0
	bestDot := float32(-2)
	for i := range baseAxes {
		d := n.Dot(&baseAxes[i].normal)
		if d > bestDot {
			bestDot = d
			best = i
		}
	}
	return baseAxes[best]
}

// texAxes returns this face's current on-surface U, V axes: the selected
// row's base directions, rotated about the row's normal by Rotation
// degrees and divided by scale, plus the row used to derive them.
func (f *Face) texAxes() (u, v math32.Vector3, base baseAxis) {

	n := f.Plane.Normal()
	base = selectBaseAxis(&n)

	u, v = base.u, base.v
	angle := f.Rotation * math.Pi / 180
	u.ApplyAxisAngle(&base.normal, float32(angle))
	v.ApplyAxisAngle(&base.normal, float32(angle))

	if f.XScale != 0 {
		u.MultiplyScalar(1 / f.XScale)
	}
	if f.YScale != 0 {
		v.MultiplyScalar(1 / f.YScale)
	}
	return u, v, base
}

// TexCoord returns the texture coordinate of 3D point v on this face.
func (f *Face) TexCoord(v *math32.Vector3) (s, t float32) {

	u, vAxis, _ := f.texAxes()
	s = v.Dot(&u) + f.XOffset
	t = v.Dot(&vAxis) + f.YOffset
	return s, t
}

// UpdatePoints re-derives this face's defining points and plane from the
// side's current vertex ring, after a cut or a snap has changed it: the
// consecutive triple whose two edges are closest to perpendicular is
// chosen, since re-deriving the plane from a near-collinear triple is
// numerically unstable.
func (f *Face) UpdatePoints(ring []math32.Vector3) {

	p0, p1, p2 := math32.BestTriple(ring)
	f.P0, f.P1, f.P2 = p0, p1, p2
	f.Plane = *math32.PlaneFromPoints(&p0, &p1, &p2)
}

// Transform is the minimal shape of an affine transform a Face must
// compensate for: apply moves a point, applyDir moves a free direction
// vector (no translation component), and translation records T's pure
// translation part. ApplyLocked does not read translation: applyDir
// already leaves it out of transformed direction vectors.
type Transform struct {
	Apply       func(p math32.Vector3) math32.Vector3
	ApplyDir    func(d math32.Vector3) math32.Vector3
	Translation math32.Vector3
}

// ApplyGeometry moves this face's three defining points and plane through
// T, with no texture-lock compensation (texture-lock=false path, or the
// geometry half of any transform regardless of lock state).
func (f *Face) ApplyGeometry(t Transform) {

	f.P0 = t.Apply(f.P0)
	f.P1 = t.Apply(f.P1)
	f.P2 = t.Apply(f.P2)
	f.Plane = *math32.PlaneFromPoints(&f.P0, &f.P1, &f.P2)
}

// Flip is ApplyGeometry's complement for a mirror transform: reflection
// inverts winding, so points[1] and points[2] swap in addition to being
// individually reflected by t.Apply.
func (f *Face) Flip(t Transform) {

	f.P0 = t.Apply(f.P0)
	p1 := t.Apply(f.P1)
	p2 := t.Apply(f.P2)
	f.P1, f.P2 = p2, p1
	f.Plane = *math32.PlaneFromPoints(&f.P0, &f.P1, &f.P2)
}

// Move offsets this face's boundary along its own normal by dist
// (positive dist pushes the half-space boundary outward), the
// translation canResize/resize/enlarge apply to a single face.
func (f *Face) Move(dist float32, lockTextures bool) {

	n := f.Plane.Normal()
	var delta math32.Vector3
	delta.Copy(&n).MultiplyScalar(dist)

	t := Transform{
		Apply: func(p math32.Vector3) math32.Vector3 {
			p.Add(&delta)
			return p
		},
		ApplyDir:    func(d math32.Vector3) math32.Vector3 { return d },
		Translation: delta,
	}
	if lockTextures {
		f.ApplyLocked(t, false)
	} else {
		f.ApplyGeometry(t)
	}
}

// centroid is the simple average of the face's three defining points,
// used only as the lock procedure's snapshot center — it does not need
// to be the polygon's true centroid since it is consistently recomputed
// before and after the transform.
func (f *Face) centroid() math32.Vector3 {

	var c math32.Vector3
	c.Add(&f.P0)
	c.Add(&f.P1)
	c.Add(&f.P2)
	c.MultiplyScalar(1.0 / 3.0)
	return c
}

// ApplyLocked moves this face's geometry through t and recomputes the
// texture frame so every surface point keeps the same texel, following
// the ten-step procedure of the texture-lock contract. reverse selects
// Flip's winding-reversing geometry update instead of ApplyGeometry's,
// for a mirror transform.
func (f *Face) ApplyLocked(t Transform, reverse bool) {

	// 1. snapshot center and current texture coordinates.
	oldCenter := f.centroid()
	au, av := f.TexCoord(&oldCenter)

	// 2. unscaled pre-transform axes, projected into the current plane
	// along the base normal.
	u, v, base := f.texAxes()
	u.MultiplyScalar(f.XScale)
	v.MultiplyScalar(f.YScale)
	curNormal := f.Plane.Normal()
	if bn := base.normal.Dot(&curNormal); bn != 0 {
		var off math32.Vector3
		off.Copy(&base.normal).MultiplyScalar(-u.Dot(&curNormal) / bn)
		u.Add(&off)
		off.Copy(&base.normal).MultiplyScalar(-v.Dot(&curNormal) / bn)
		v.Add(&off)
	}

	// 3. transform U, V as free directions (ApplyDir never carries T's
	// translation, so there is nothing left to subtract back out), and
	// the center as a point.
	newU := t.ApplyDir(u)
	newV := t.ApplyDir(v)
	newCenter := t.Apply(oldCenter)

	if reverse {
		f.Flip(t)
	} else {
		f.ApplyGeometry(t)
	}
	newNormal := f.Plane.Normal()

	// 4. re-select the base row for the transformed normal.
	newBase := selectBaseAxis(&newNormal)

	// 5. project transformed U, V onto the new texture plane by zeroing
	// their component along the new base normal.
	projectOntoPlane(&newU, &newBase.normal)
	projectOntoPlane(&newV, &newBase.normal)

	// 6. new scales are the projected axes' lengths; normalize in place.
	newXScale := newU.Length()
	newYScale := newV.Length()
	if newXScale != 0 {
		newU.MultiplyScalar(1 / newXScale)
	}
	if newYScale != 0 {
		newV.MultiplyScalar(1 / newYScale)
	}

	// 7. signed angle from newBase.u to newU about newBase.normal.
	rotation := signedAngle(&newBase.u, &newU, &newBase.normal)

	// 8. rotate the base axes by that angle; flip a scale if the result
	// still disagrees in sign with the transformed axis.
	rotU := newBase.u
	rotV := newBase.v
	rotU.ApplyAxisAngle(&newBase.normal, rotation)
	rotV.ApplyAxisAngle(&newBase.normal, rotation)
	if rotU.Dot(&newU) < 0 {
		newXScale = -newXScale
	}
	if rotV.Dot(&newV) < 0 {
		newYScale = -newYScale
	}

	f.Rotation = rotation * 180 / math.Pi
	f.XScale = newXScale
	f.YScale = newYScale

	// 9. re-derive U, V from the stored rotation/scale (texAxes reflects
	// the state set in steps 7-8 exactly).
	finalU, finalV, _ := f.texAxes()

	// 10. new offsets so the snapshot center still maps to A, reduced
	// modulo the texture's dimensions when one is bound.
	bu := newCenter.Dot(&finalU)
	bv := newCenter.Dot(&finalV)
	f.XOffset = wrapOffset(au-bu, f.textureWidth())
	f.YOffset = wrapOffset(av-bv, f.textureHeight())
}

func (f *Face) textureWidth() float32 {
	if f.Tex != nil && f.Tex.Width > 0 {
		return float32(f.Tex.Width)
	}
	return 0
}

func (f *Face) textureHeight() float32 {
	if f.Tex != nil && f.Tex.Height > 0 {
		return float32(f.Tex.Height)
	}
	return 0
}

func wrapOffset(v, period float32) float32 {
	if period == 0 {
		return v
	}
	m := float32(math.Mod(float64(v), float64(period)))
	if m < 0 {
		m += period
	}
	return m
}

func projectOntoPlane(v, planeNormal *math32.Vector3) {
	d := v.Dot(planeNormal)
	var along math32.Vector3
	along.Copy(planeNormal).MultiplyScalar(d)
	v.Sub(&along)
}

// signedAngle returns the angle (radians) to rotate a onto b about axis,
// using the sign of (a x b) . axis to pick direction.
func signedAngle(a, b, axis *math32.Vector3) float32 {

	var an, bn math32.Vector3
	an.Copy(a).Normalize()
	bn.Copy(b).Normalize()

	cosA := an.Dot(&bn)
	if cosA > 1 {
		cosA = 1
	}
	if cosA < -1 {
		cosA = -1
	}
	angle := float32(math.Acos(float64(cosA)))

	var cross math32.Vector3
	cross.CrossVectors(&an, &bn)
	if cross.Dot(axis) < 0 {
		angle = -angle
	}
	return angle
}

// TranslateOffsets shifts xOffset or yOffset by delta, whichever axis
// (U or V) the drag direction dir aligns with more strongly.
func (f *Face) TranslateOffsets(delta float32, dir *math32.Vector3) {

	u, v, _ := f.texAxes()
	if math32.Abs(dir.Dot(&u)) >= math32.Abs(dir.Dot(&v)) {
		f.XOffset += delta
	} else {
		f.YOffset += delta
	}
}

// RotateTexture adds angle (degrees) to Rotation, or subtracts it when
// this face's selected base row has U x V pointing against the row's
// normal (the +Z, +X and -Y rows), so a positive rotation would
// otherwise appear to spin backwards relative to the face normal.
func (f *Face) RotateTexture(angle float32) {

	n := f.Plane.Normal()
	base := selectBaseAxis(&n)

	var cross math32.Vector3
	cross.CrossVectors(&base.u, &base.v)
	if cross.Dot(&base.normal) < 0 {
		angle = -angle
	}
	f.Rotation += angle
}
