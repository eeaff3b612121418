package polyhedron

import "github.com/trenchworks/brushgeo/math32"

// MergeEpsilon is the distance under which two vertices produced by
// independent operations (a cut seam and a drag, say) are treated as the
// same point and merged during a vertex move. It shares the same order of
// magnitude as math32.PositionEpsilon but is kept as its own tunable since
// move-merging and cut-splitting tolerate slightly different error
// accumulation.
var MergeEpsilon float32 = math32.PositionEpsilon
