package polyhedron

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex is the sentinel wrapped into the panic raised when a
// vertex/edge/side index passed to a mutating method falls outside the
// current mesh. A picker or UI layer handing the engine a stale index is
// a programmer error per spec.md §7 ("Invariant-violation"), not an
// expected outcome like a redundant cut or a refused move, so it is
// asserted against rather than threaded through every move's result
// type.
var ErrInvalidIndex = errors.New("polyhedron: index out of range")

func (p *Polyhedron) checkVertexIndex(idx int) {
	if idx < 0 || idx >= len(p.Vertices) {
		panic(fmt.Errorf("%w: vertex %d (have %d)", ErrInvalidIndex, idx, len(p.Vertices)))
	}
}

func (p *Polyhedron) checkEdgeIndex(idx int) {
	if idx < 0 || idx >= len(p.Edges) {
		panic(fmt.Errorf("%w: edge %d (have %d)", ErrInvalidIndex, idx, len(p.Edges)))
	}
}

func (p *Polyhedron) checkSideIndex(idx int) {
	if idx < 0 || idx >= len(p.Sides) {
		panic(fmt.Errorf("%w: side %d (have %d)", ErrInvalidIndex, idx, len(p.Sides)))
	}
}
