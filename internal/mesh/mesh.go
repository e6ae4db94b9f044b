// Package mesh provides an in-memory polygon mesh store with the query and
// edit operations a hole-filling tool needs: adjacency lookups, grid
// creation, mesh union, targeted vertex welding, and an undo-style history
// journal with suppression scopes and named transactions.
package mesh

import (
	"fmt"

	"github.com/Faultbox/quadfill/pkg/math"
)

// VertexID identifies a vertex within a mesh.
type VertexID int

// EdgeID identifies an edge within a mesh. Edge IDs are derived from the
// face table and are stable only between topology edits.
type EdgeID int

// FaceID identifies a face within a mesh.
type FaceID int

// MeshID identifies a mesh within an Editor.
type MeshID int

// Edge is an undirected vertex pair with A < B.
type Edge struct {
	A, B VertexID
}

// Mesh is an editable polygon mesh: vertex positions plus face rings.
// Face rings are ordered; the face normal follows the ring winding.
type Mesh struct {
	Positions []math.Vec3
	Faces     [][]VertexID
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Positions: make([]math.Vec3, len(m.Positions)),
		Faces:     make([][]VertexID, len(m.Faces)),
	}
	copy(c.Positions, m.Positions)
	for i, f := range m.Faces {
		c.Faces[i] = make([]VertexID, len(f))
		copy(c.Faces[i], f)
	}
	return c
}

// edgeTable derives the undirected edge list from the face rings.
// Edges are numbered in first-seen order scanning faces in index order,
// which keeps EdgeIDs deterministic for a given topology. The parallel
// faces slice lists the faces incident to each edge.
func (m *Mesh) edgeTable() (edges []Edge, faces [][]FaceID) {
	index := make(map[Edge]EdgeID)
	for fi, ring := range m.Faces {
		for i := range ring {
			a, b := ring[i], ring[(i+1)%len(ring)]
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			e := Edge{a, b}
			id, ok := index[e]
			if !ok {
				id = EdgeID(len(edges))
				index[e] = id
				edges = append(edges, e)
				faces = append(faces, nil)
			}
			faces[id] = append(faces[id], FaceID(fi))
		}
	}
	return edges, faces
}

// faceNormal computes the normal of one face ring by Newell's method.
// Returns +Y for degenerate rings.
func (m *Mesh) faceNormal(f FaceID) math.Vec3 {
	ring := m.Faces[f]
	var n math.Vec3
	for i := range ring {
		c := m.Positions[ring[i]]
		d := m.Positions[ring[(i+1)%len(ring)]]
		n.X += (c.Y - d.Y) * (c.Z + d.Z)
		n.Y += (c.Z - d.Z) * (c.X + d.X)
		n.Z += (c.X - d.X) * (c.Y + d.Y)
	}
	if n.Length() < 1e-9 {
		return math.Vec3{X: 0, Y: 1, Z: 0}
	}
	return n.Normalize()
}

func (m *Mesh) checkVertex(v VertexID) error {
	if v < 0 || int(v) >= len(m.Positions) {
		return fmt.Errorf("vertex %d out of range (mesh has %d vertices)", v, len(m.Positions))
	}
	return nil
}
