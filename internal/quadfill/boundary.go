// Package quadfill fills polygonal mesh holes with boundary-constrained
// quadrilateral patches. A hole's border edges are recovered into an ordered
// loop, a structured quad grid of configurable density is interpolated from
// the four boundary curves (Coons patch), and the grid is welded into the
// surrounding mesh along the seam only. Odd-length boundaries get one
// 5-valence pole via a virtual duplicate vertex that is merged back on
// commit.
package quadfill

import (
	"fmt"

	"github.com/Faultbox/quadfill/internal/mesh"
	"github.com/Faultbox/quadfill/pkg/math"
)

// Loop is an ordered boundary ring around a mesh hole, wound
// counter-clockwise with respect to the hole normal.
type Loop struct {
	Verts      []mesh.VertexID
	Positions  []math.Vec3
	HoleNormal math.Vec3
}

// Len returns the number of boundary vertices.
func (l *Loop) Len() int {
	return len(l.Verts)
}

// IsOdd reports whether the boundary has an odd vertex count, which forces
// one 5-valence pole in the filled patch.
func (l *Loop) IsOdd() bool {
	return len(l.Verts)%2 == 1
}

// extractLoop orders an unordered set of boundary edges into a single vertex
// ring. It fails if any vertex does not have exactly two boundary neighbors
// or if the edges do not form one closed cycle covering every vertex.
func extractLoop(ed *mesh.Editor, id mesh.MeshID, edges []mesh.EdgeID) ([]mesh.VertexID, []math.Vec3, error) {
	pairs, err := ed.EdgeVertexPairs(id, edges)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedBoundary, err)
	}

	adj := make(map[mesh.VertexID][]mesh.VertexID, len(pairs))
	for _, p := range pairs {
		adj[p[0]] = append(adj[p[0]], p[1])
		adj[p[1]] = append(adj[p[1]], p[0])
	}
	for v, ns := range adj {
		if len(ns) != 2 {
			return nil, nil, fmt.Errorf("%w: vertex %d has %d boundary neighbors, want 2",
				ErrMalformedBoundary, v, len(ns))
		}
	}
	// A simple cycle has as many vertices as edges.
	if len(adj) != len(pairs) {
		return nil, nil, fmt.Errorf("%w: %d edges span %d vertices",
			ErrMalformedBoundary, len(pairs), len(adj))
	}

	// Walk the ring from an arbitrary start, always stepping to the
	// neighbor we did not come from, until the walk closes.
	start := pairs[0][0]
	ordered := []mesh.VertexID{start}
	visited := map[mesh.VertexID]bool{start: true}
	prev, curr := mesh.VertexID(-1), start
	for {
		var next mesh.VertexID
		found := false
		for _, n := range adj[curr] {
			if n != prev {
				next = n
				found = true
				break
			}
		}
		if !found {
			return nil, nil, fmt.Errorf("%w: boundary walk dead-ends at vertex %d",
				ErrMalformedBoundary, curr)
		}
		if next == start {
			break
		}
		if visited[next] {
			return nil, nil, fmt.Errorf("%w: boundary walk revisits vertex %d",
				ErrMalformedBoundary, next)
		}
		ordered = append(ordered, next)
		visited[next] = true
		prev, curr = curr, next
	}
	// The closed walk must cover every vertex; a shortfall means the edge
	// set held more than one cycle.
	if len(ordered) != len(adj) {
		return nil, nil, fmt.Errorf("%w: cycle covers %d of %d vertices",
			ErrMalformedBoundary, len(ordered), len(adj))
	}

	positions := make([]math.Vec3, len(ordered))
	for i, v := range ordered {
		p, err := ed.VertexPosition(id, v)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrMalformedBoundary, err)
		}
		positions[i] = p
	}
	return ordered, positions, nil
}
