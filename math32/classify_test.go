package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPoint(t *testing.T) {
	plane := PlaneFromPoints(
		&Vector3{X: 0, Y: 0, Z: 0},
		&Vector3{X: 0, Y: 1, Z: 0},
		&Vector3{X: 1, Y: 0, Z: 0},
	)

	tests := []struct {
		name     string
		point    Vector3
		expected PointStatus
	}{
		{"above", Vector3{X: 0, Y: 0, Z: 1}, Above},
		{"below", Vector3{X: 0, Y: 0, Z: -1}, Below},
		{"on plane", Vector3{X: 5, Y: 5, Z: 0}, Inside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, plane.ClassifyPoint(&tt.point))
		})
	}
}

func TestRotateComponents90(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector3
		axis     Axis
		cw       bool
		expected Vector3
	}{
		{"cw about Z", Vector3{X: 1, Y: 0, Z: 0}, AxisZ, true, Vector3{X: 0, Y: -1, Z: 0}},
		{"ccw about Z", Vector3{X: 1, Y: 0, Z: 0}, AxisZ, false, Vector3{X: 0, Y: 1, Z: 0}},
		{"cw about X", Vector3{X: 0, Y: 1, Z: 0}, AxisX, true, Vector3{X: 0, Y: 0, Z: -1}},
		{"cw about Y", Vector3{X: 1, Y: 0, Z: 0}, AxisY, true, Vector3{X: 0, Y: 0, Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.v
			RotateComponents90(&v, tt.axis, tt.cw)
			assert.InDelta(t, tt.expected.X, v.X, 1e-5)
			assert.InDelta(t, tt.expected.Y, v.Y, 1e-5)
			assert.InDelta(t, tt.expected.Z, v.Z, 1e-5)
		})
	}

	t.Run("cw then ccw is identity", func(t *testing.T) {
		v := Vector3{X: 3, Y: -2, Z: 5}
		orig := v
		RotateComponents90(&v, AxisY, true)
		RotateComponents90(&v, AxisY, false)
		assert.InDelta(t, orig.X, v.X, 1e-5)
		assert.InDelta(t, orig.Y, v.Y, 1e-5)
		assert.InDelta(t, orig.Z, v.Z, 1e-5)
	})
}

func TestBestTriple(t *testing.T) {
	// a thin near-collinear sliver followed by a sharp corner: the
	// sharp corner's triple should win over the sliver's near-180 angle.
	ring := []Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0.001, Z: 0},
		{X: 20, Y: 0, Z: 0},
		{X: 20, Y: 10, Z: 0},
	}
	p0, p1, p2 := BestTriple(ring)
	plane := PlaneFromPoints(&p0, &p1, &p2)
	assert.InDelta(t, 1, plane.Normal().Length(), 1e-4)
}
