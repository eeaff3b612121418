package brush

import (
	"github.com/trenchworks/brushgeo/math32"
	"github.com/trenchworks/brushgeo/texture"
)

// translateTransform builds the texture.Transform for a pure translation:
// points move by delta, free directions are untouched.
func translateTransform(delta math32.Vector3) texture.Transform {
	return texture.Transform{
		Apply: func(p math32.Vector3) math32.Vector3 {
			p.Add(&delta)
			return p
		},
		ApplyDir:    func(d math32.Vector3) math32.Vector3 { return d },
		Translation: delta,
	}
}

// rotate90Transform builds the texture.Transform for a 90-degree
// grid-aligned rotation about center: points rotate about center, free
// directions rotate about the origin (no center offset, since a direction
// carries no position).
func rotate90Transform(axis math32.Axis, center math32.Vector3, cw bool) texture.Transform {
	return texture.Transform{
		Apply: func(p math32.Vector3) math32.Vector3 {
			p.Sub(&center)
			math32.RotateComponents90(&p, axis, cw)
			p.Add(&center)
			return p
		},
		ApplyDir: func(d math32.Vector3) math32.Vector3 {
			math32.RotateComponents90(&d, axis, cw)
			return d
		},
	}
}

// rotateTransform builds the texture.Transform for an arbitrary quaternion
// rotation about center.
func rotateTransform(q math32.Quaternion, center math32.Vector3) texture.Transform {
	return texture.Transform{
		Apply: func(p math32.Vector3) math32.Vector3 {
			p.Sub(&center)
			p.ApplyQuaternion(&q)
			p.Add(&center)
			return p
		},
		ApplyDir: func(d math32.Vector3) math32.Vector3 {
			d.ApplyQuaternion(&q)
			return d
		},
	}
}

// flipTransform builds the texture.Transform for a mirror reflection of
// points and directions on axis about center. A free direction reflects
// the same way a point's offset from center does; it just never receives
// center's own translation.
func flipTransform(axis math32.Axis, center math32.Vector3) texture.Transform {
	reflect := func(v *math32.Vector3) {
		switch axis {
		case math32.AxisX:
			v.X = -v.X
		case math32.AxisY:
			v.Y = -v.Y
		default:
			v.Z = -v.Z
		}
	}
	return texture.Transform{
		Apply: func(p math32.Vector3) math32.Vector3 {
			p.Sub(&center)
			reflect(&p)
			p.Add(&center)
			return p
		},
		ApplyDir: func(d math32.Vector3) math32.Vector3 {
			reflect(&d)
			return d
		},
	}
}

// applyFaceTransform moves f's geometry through t, compensating its
// texture frame when lockTextures is set. reverse selects the
// winding-reversing geometry update a mirror transform requires.
func applyFaceTransform(f *texture.Face, t texture.Transform, lockTextures, reverse bool) {
	if lockTextures {
		f.ApplyLocked(t, reverse)
		return
	}
	if reverse {
		f.Flip(t)
	} else {
		f.ApplyGeometry(t)
	}
}
