package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trenchworks/brushgeo/math32"
)

func topFace() *Face {
	return MustNewFace(
		math32.Vector3{X: 0, Y: 0, Z: 32},
		math32.Vector3{X: 0, Y: 64, Z: 32},
		math32.Vector3{X: 64, Y: 0, Z: 32},
	)
}

func TestNewFaceOutwardNormal(t *testing.T) {
	f := topFace()
	n := f.Plane.Normal()
	assert.InDelta(t, 1, n.Z, 1e-4, "winding p0,p1,p2 must give an outward (+Z) normal here")
}

func TestSelectBaseAxisPicksMatchingRow(t *testing.T) {
	n := math32.Vector3{X: 0, Y: 0, Z: 1}
	row := selectBaseAxis(&n)
	assert.InDelta(t, 1, row.normal.Z, 1e-4)
	assert.InDelta(t, 1, row.u.X, 1e-4)
	assert.InDelta(t, -1, row.v.Y, 1e-4)
}

func TestTexCoordIdentityFrame(t *testing.T) {
	f := topFace()
	f.XScale, f.YScale = 1, 1

	s, tcoord := f.TexCoord(&math32.Vector3{X: 5, Y: 3, Z: 32})
	assert.InDelta(t, 5, s, 1e-4)
	assert.InDelta(t, -3, tcoord, 1e-4)
}

func TestApplyLockedTranslationInvariant(t *testing.T) {
	f := topFace()
	f.SetTexture(&Texture{Name: "t", Width: 64, Height: 64})

	point := math32.Vector3{X: 10, Y: 20, Z: 32}
	beforeU, beforeV := f.TexCoord(&point)

	delta := math32.Vector3{X: 5, Y: -7, Z: 0}
	tr := Transform{
		Apply: func(p math32.Vector3) math32.Vector3 {
			p.Add(&delta)
			return p
		},
		ApplyDir:    func(d math32.Vector3) math32.Vector3 { return d },
		Translation: delta,
	}
	f.ApplyLocked(tr, false)

	movedPoint := point
	movedPoint.Add(&delta)
	afterU, afterV := f.TexCoord(&movedPoint)

	// offsets are kept modulo the 64x64 texture, so compare texels.
	assert.InDelta(t, wrapOffset(beforeU, 64), wrapOffset(afterU, 64), 1e-2)
	assert.InDelta(t, wrapOffset(beforeV, 64), wrapOffset(afterV, 64), 1e-2)
}

func TestApplyLocked90DegreeRotationInvariant(t *testing.T) {
	f := topFace()
	f.SetTexture(&Texture{Name: "t", Width: 64, Height: 64})

	center := math32.Vector3{X: 32, Y: 32, Z: 32}
	point := math32.Vector3{X: 50, Y: 10, Z: 32}
	beforeU, beforeV := f.TexCoord(&point)

	tr := Transform{
		Apply: func(p math32.Vector3) math32.Vector3 {
			p.Sub(&center)
			math32.RotateComponents90(&p, math32.AxisZ, true)
			p.Add(&center)
			return p
		},
		ApplyDir: func(d math32.Vector3) math32.Vector3 {
			math32.RotateComponents90(&d, math32.AxisZ, true)
			return d
		},
	}
	f.ApplyLocked(tr, false)

	rotatedPoint := point
	rotatedPoint.Sub(&center)
	math32.RotateComponents90(&rotatedPoint, math32.AxisZ, true)
	rotatedPoint.Add(&center)

	afterU, afterV := f.TexCoord(&rotatedPoint)

	// offsets are kept modulo the 64x64 texture, so compare texels.
	assert.InDelta(t, wrapOffset(beforeU, 64), wrapOffset(afterU, 64), 1e-2)
	assert.InDelta(t, wrapOffset(beforeV, 64), wrapOffset(afterV, 64), 1e-2)
}

func TestApplyLockedFalseJustMovesGeometry(t *testing.T) {
	f := topFace()
	origRotation := f.Rotation
	origScaleX := f.XScale

	delta := math32.Vector3{X: 5, Y: 0, Z: 0}
	tr := Transform{
		Apply: func(p math32.Vector3) math32.Vector3 {
			p.Add(&delta)
			return p
		},
		ApplyDir:    func(d math32.Vector3) math32.Vector3 { return d },
		Translation: delta,
	}
	f.ApplyGeometry(tr)

	assert.Equal(t, origRotation, f.Rotation)
	assert.Equal(t, origScaleX, f.XScale)
	assert.InDelta(t, 5, f.P0.X, 1e-4)
}

func TestFlipSwapsWindingPoints(t *testing.T) {
	f := topFace()
	p1Before, p2Before := f.P1, f.P2

	identity := Transform{
		Apply:    func(p math32.Vector3) math32.Vector3 { return p },
		ApplyDir: func(d math32.Vector3) math32.Vector3 { return d },
	}
	f.Flip(identity)

	assert.Equal(t, p1Before, f.P2)
	assert.Equal(t, p2Before, f.P1)
}

func TestSetTextureUsageCount(t *testing.T) {
	f := MustNewFace(math32.Vector3{}, math32.Vector3{X: 1}, math32.Vector3{Y: 1})
	tex1 := &Texture{Name: "a"}
	tex2 := &Texture{Name: "b"}

	f.SetTexture(tex1)
	assert.Equal(t, 1, tex1.UsageCount)

	f.SetTexture(tex2)
	assert.Equal(t, 0, tex1.UsageCount)
	assert.Equal(t, 1, tex2.UsageCount)
}

func TestTranslateOffsetsPicksDominantAxis(t *testing.T) {
	f := topFace()
	u, _, _ := f.texAxes()

	f.TranslateOffsets(10, &u)
	assert.InDelta(t, 10, f.XOffset, 1e-4)
	assert.InDelta(t, 0, f.YOffset, 1e-4)
}

func TestNewFaceRejectsCollinearPoints(t *testing.T) {
	_, err := NewFace(
		math32.Vector3{X: 0, Y: 0, Z: 0},
		math32.Vector3{X: 1, Y: 0, Z: 0},
		math32.Vector3{X: 2, Y: 0, Z: 0},
	)
	assert.ErrorIs(t, err, ErrDegenerateFace)
}

func TestNewFaceRejectsCoincidentPoints(t *testing.T) {
	p := math32.Vector3{X: 5, Y: 5, Z: 5}
	_, err := NewFace(p, p, p)
	assert.ErrorIs(t, err, ErrDegenerateFace)
}

func TestUpdatePointsPicksLeastCollinearTriple(t *testing.T) {
	f := topFace()
	ring := []math32.Vector3{
		{X: 0, Y: 0, Z: 32},
		{X: 32, Y: 0.001, Z: 32},
		{X: 64, Y: 0, Z: 32},
		{X: 64, Y: 64, Z: 32},
	}
	f.UpdatePoints(ring)

	n := f.Plane.Normal()
	assert.InDelta(t, 1, n.Length(), 1e-3)
}
