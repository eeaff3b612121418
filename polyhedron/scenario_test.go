package polyhedron

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trenchworks/brushgeo/math32"
	"gopkg.in/yaml.v2"
)

type scenarioCut struct {
	Points       [][]float32 `yaml:"points"`
	ExpectResult string      `yaml:"expectResult"`
}

type scenarioExpect struct {
	VertexCount *int      `yaml:"vertexCount"`
	EdgeCount   *int      `yaml:"edgeCount"`
	SideCount   *int      `yaml:"sideCount"`
	BoundsMin   []float32 `yaml:"boundsMin"`
	BoundsMax   []float32 `yaml:"boundsMax"`
}

type scenario struct {
	Name    string         `yaml:"name"`
	SeedMin []float32      `yaml:"seedMin"`
	SeedMax []float32      `yaml:"seedMax"`
	Cuts    []scenarioCut  `yaml:"cuts"`
	Expect  scenarioExpect `yaml:"expect"`
}

func resultName(r CutResult) string {
	switch r {
	case Redundant:
		return "redundant"
	case Nullified:
		return "nullified"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// TestScenarios runs every YAML fixture under testdata/scenarios: each
// seeds a polyhedron at the given bounds, applies its cuts in order
// (checking the reported CutResult against the fixture when given), then
// checks the final vertex/edge/side counts and bounds.
func TestScenarios(t *testing.T) {

	files, err := filepath.Glob("../testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files, "expected at least one scenario fixture")

	for _, path := range files {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {

			raw, err := os.ReadFile(path)
			require.NoError(t, err)

			var sc scenario
			require.NoError(t, yaml.Unmarshal(raw, &sc))

			p := NewBox(*math32.NewBox3(
				math32.NewVector3(sc.SeedMin[0], sc.SeedMin[1], sc.SeedMin[2]),
				math32.NewVector3(sc.SeedMax[0], sc.SeedMax[1], sc.SeedMax[2]),
			))

			for i, cut := range sc.Cuts {
				plane := math32.PlaneFromPoints(
					&math32.Vector3{X: cut.Points[0][0], Y: cut.Points[0][1], Z: cut.Points[0][2]},
					&math32.Vector3{X: cut.Points[1][0], Y: cut.Points[1][1], Z: cut.Points[1][2]},
					&math32.Vector3{X: cut.Points[2][0], Y: cut.Points[2][1], Z: cut.Points[2][2]},
				)
				var dropped []int
				result := p.Cut(plane, 1000+i, &dropped)
				if cut.ExpectResult != "" {
					assert.Equal(t, cut.ExpectResult, resultName(result), "cut %d of %s", i, sc.Name)
				}
			}

			if sc.Expect.VertexCount != nil {
				assert.Len(t, p.Vertices, *sc.Expect.VertexCount, sc.Name)
			}
			if sc.Expect.EdgeCount != nil {
				assert.Len(t, p.Edges, *sc.Expect.EdgeCount, sc.Name)
			}
			if sc.Expect.SideCount != nil {
				assert.Len(t, p.Sides, *sc.Expect.SideCount, sc.Name)
			}
			if sc.Expect.BoundsMin != nil {
				assert.InDelta(t, sc.Expect.BoundsMin[0], p.Bounds.Min.X, 1e-3, sc.Name)
				assert.InDelta(t, sc.Expect.BoundsMin[1], p.Bounds.Min.Y, 1e-3, sc.Name)
				assert.InDelta(t, sc.Expect.BoundsMin[2], p.Bounds.Min.Z, 1e-3, sc.Name)
			}
			if sc.Expect.BoundsMax != nil {
				assert.InDelta(t, sc.Expect.BoundsMax[0], p.Bounds.Max.X, 1e-3, sc.Name)
				assert.InDelta(t, sc.Expect.BoundsMax[1], p.Bounds.Max.Y, 1e-3, sc.Name)
				assert.InDelta(t, sc.Expect.BoundsMax[2], p.Bounds.Max.Z, 1e-3, sc.Name)
			}

			assertValidMesh(t, p)
		})
	}
}
