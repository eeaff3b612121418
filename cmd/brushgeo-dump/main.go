// Command brushgeo-dump seeds a world-bounds cube, cuts it by faces read
// from a minimal text description on stdin, and prints the resulting
// brush's geometry as JSON. It exists to drive the engine end to end
// without pulling in a real map-format parser.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trenchworks/brushgeo/brush"
	"github.com/trenchworks/brushgeo/math32"
	"github.com/trenchworks/brushgeo/texture"
)

var boxSize float32

var rootCmd = &cobra.Command{
	Use:   "brushgeo-dump",
	Short: "Seed a brush and cut it by stdin-described faces, dumping its geometry as JSON",
	Long: `brushgeo-dump reads one face per line from stdin, each line three
whitespace-separated points "x,y,z x,y,z x,y,z" giving a half-space's
defining triple, cuts a world-bounds cube by each in turn, and prints the
resulting brush's vertex/edge/face counts and bounds as JSON.`,
	RunE: runDump,
}

func init() {
	rootCmd.Flags().Float32Var(&boxSize, "world-size", 4096, "half-extent of the world-bounds cube the seed brush starts from")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type dumpResult struct {
	VertexCount int           `json:"vertexCount"`
	EdgeCount   int           `json:"edgeCount"`
	FaceCount   int           `json:"faceCount"`
	Closed      bool          `json:"closed"`
	BoundsMin   math32.Vector3 `json:"boundsMin"`
	BoundsMax   math32.Vector3 `json:"boundsMax"`
	Rejected    int           `json:"facesRejected"`
}

func runDump(cmd *cobra.Command, args []string) error {

	world := math32.Box3{}
	world.SetFromCenterAndSize(
		math32.NewVector3(0, 0, 0),
		math32.NewVector3(boxSize*2, boxSize*2, boxSize*2),
	)

	b := brush.NewBox(world, world, &texture.Texture{Name: "default", Width: 256, Height: 256})

	scanner := bufio.NewScanner(os.Stdin)
	rejected := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p0, p1, p2, err := parseFaceLine(line)
		if err != nil {
			return fmt.Errorf("parsing face line %q: %w", line, err)
		}
		f, err := texture.NewFace(p0, p1, p2)
		if err != nil {
			return fmt.Errorf("face line %q: %w", line, err)
		}
		f.SetTexture(&texture.Texture{Name: "default", Width: 256, Height: 256})
		if !b.AddFace(f) {
			rejected++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	result := dumpResult{
		VertexCount: len(b.Geometry.Vertices),
		EdgeCount:   len(b.Geometry.Edges),
		FaceCount:   len(b.Faces),
		Closed:      b.Geometry.Closed(),
		BoundsMin:   b.Geometry.Bounds.Min,
		BoundsMax:   b.Geometry.Bounds.Max,
		Rejected:    rejected,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// parseFaceLine parses "x,y,z x,y,z x,y,z" into three points.
func parseFaceLine(line string) (p0, p1, p2 math32.Vector3, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return p0, p1, p2, fmt.Errorf("expected 3 points, got %d", len(fields))
	}
	points := make([]math32.Vector3, 3)
	for i, field := range fields {
		points[i], err = parsePoint(field)
		if err != nil {
			return p0, p1, p2, err
		}
	}
	return points[0], points[1], points[2], nil
}

func parsePoint(s string) (math32.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math32.Vector3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v math32.Vector3
	coords := []*float32{&v.X, &v.Y, &v.Z}
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return v, fmt.Errorf("invalid coordinate %q: %w", part, err)
		}
		*coords[i] = float32(f)
	}
	return v, nil
}
