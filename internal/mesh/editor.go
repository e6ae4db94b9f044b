package mesh

import (
	"fmt"
	stdmath "math"

	"github.com/Faultbox/quadfill/pkg/math"
)

// Editor owns a set of meshes and records every mutation in its History.
type Editor struct {
	meshes map[MeshID]*Mesh
	nextID MeshID
	hist   History
}

// NewEditor returns an empty editor.
func NewEditor() *Editor {
	return &Editor{
		meshes: make(map[MeshID]*Mesh),
		nextID: 1,
	}
}

// History returns the editor's journal.
func (ed *Editor) History() *History {
	return &ed.hist
}

// AddMesh installs a mesh into the store and returns its ID.
func (ed *Editor) AddMesh(m *Mesh) MeshID {
	id := ed.nextID
	ed.nextID++
	ed.meshes[id] = m
	ed.hist.record("addMesh")
	return id
}

// Mesh returns the mesh for id, or an error if it does not exist.
func (ed *Editor) Mesh(id MeshID) (*Mesh, error) {
	m, ok := ed.meshes[id]
	if !ok {
		return nil, fmt.Errorf("no mesh with id %d", id)
	}
	return m, nil
}

// DeleteMesh removes a mesh from the store.
func (ed *Editor) DeleteMesh(id MeshID) error {
	if _, ok := ed.meshes[id]; !ok {
		return fmt.Errorf("no mesh with id %d", id)
	}
	delete(ed.meshes, id)
	ed.hist.record("deleteMesh")
	return nil
}

// VertexCount returns the number of vertices in a mesh.
func (ed *Editor) VertexCount(id MeshID) (int, error) {
	m, err := ed.Mesh(id)
	if err != nil {
		return 0, err
	}
	return len(m.Positions), nil
}

// FaceCount returns the number of faces in a mesh.
func (ed *Editor) FaceCount(id MeshID) (int, error) {
	m, err := ed.Mesh(id)
	if err != nil {
		return 0, err
	}
	return len(m.Faces), nil
}

// VertexPosition returns the world position of one vertex.
func (ed *Editor) VertexPosition(id MeshID, v VertexID) (math.Vec3, error) {
	m, err := ed.Mesh(id)
	if err != nil {
		return math.Vec3{}, err
	}
	if err := m.checkVertex(v); err != nil {
		return math.Vec3{}, err
	}
	return m.Positions[v], nil
}

// SetVertexPosition moves one vertex.
func (ed *Editor) SetVertexPosition(id MeshID, v VertexID, p math.Vec3) error {
	m, err := ed.Mesh(id)
	if err != nil {
		return err
	}
	if err := m.checkVertex(v); err != nil {
		return err
	}
	m.Positions[v] = p
	ed.hist.record("setVertexPosition")
	return nil
}

// Edges returns the mesh's derived edge table.
func (ed *Editor) Edges(id MeshID) ([]Edge, error) {
	m, err := ed.Mesh(id)
	if err != nil {
		return nil, err
	}
	edges, _ := m.edgeTable()
	return edges, nil
}

// EdgeVertexPairs resolves edge IDs to their incident vertex pairs.
func (ed *Editor) EdgeVertexPairs(id MeshID, edgeIDs []EdgeID) ([][2]VertexID, error) {
	m, err := ed.Mesh(id)
	if err != nil {
		return nil, err
	}
	edges, _ := m.edgeTable()
	pairs := make([][2]VertexID, 0, len(edgeIDs))
	for _, e := range edgeIDs {
		if e < 0 || int(e) >= len(edges) {
			return nil, fmt.Errorf("edge %d out of range (mesh has %d edges)", e, len(edges))
		}
		pairs = append(pairs, [2]VertexID{edges[e].A, edges[e].B})
	}
	return pairs, nil
}

// FaceNormal returns the Newell normal of one face.
func (ed *Editor) FaceNormal(id MeshID, f FaceID) (math.Vec3, error) {
	m, err := ed.Mesh(id)
	if err != nil {
		return math.Vec3{}, err
	}
	if f < 0 || int(f) >= len(m.Faces) {
		return math.Vec3{}, fmt.Errorf("face %d out of range (mesh has %d faces)", f, len(m.Faces))
	}
	return m.faceNormal(f), nil
}

// FacesAdjacentToEdge returns the faces incident to an edge.
func (ed *Editor) FacesAdjacentToEdge(id MeshID, e EdgeID) ([]FaceID, error) {
	m, err := ed.Mesh(id)
	if err != nil {
		return nil, err
	}
	_, faces := m.edgeTable()
	if e < 0 || int(e) >= len(faces) {
		return nil, fmt.Errorf("edge %d out of range (mesh has %d edges)", e, len(faces))
	}
	return faces[e], nil
}

// BoundaryEdges returns the edges with exactly one incident face, in
// edge-table order. These are the open borders of the mesh, hole rims
// included.
func (ed *Editor) BoundaryEdges(id MeshID) ([]EdgeID, error) {
	m, err := ed.Mesh(id)
	if err != nil {
		return nil, err
	}
	_, faces := m.edgeTable()
	var out []EdgeID
	for i, fs := range faces {
		if len(fs) == 1 {
			out = append(out, EdgeID(i))
		}
	}
	return out, nil
}

// CreateGrid creates a planar quad grid of the given world size, centered at
// the origin in the XZ plane, with spansX columns and spansY rows of quads.
// Vertices are laid out row-major (index = row*(spansX+1) + col) and faces
// are wound so their normals point +Y.
func (ed *Editor) CreateGrid(w, h float64, spansX, spansY int) (MeshID, error) {
	if spansX < 1 || spansY < 1 {
		return 0, fmt.Errorf("grid spans must be positive, got %dx%d", spansX, spansY)
	}
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("grid size must be positive, got %gx%g", w, h)
	}

	cols, rows := spansX+1, spansY+1
	m := &Mesh{
		Positions: make([]math.Vec3, 0, cols*rows),
		Faces:     make([][]VertexID, 0, spansX*spansY),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Positions = append(m.Positions, math.Vec3{
				X: -w/2 + w*float64(c)/float64(spansX),
				Y: 0,
				Z: -h/2 + h*float64(r)/float64(spansY),
			})
		}
	}
	for r := 0; r < spansY; r++ {
		for c := 0; c < spansX; c++ {
			v00 := VertexID(r*cols + c)
			v01 := VertexID((r+1)*cols + c)
			v11 := VertexID((r+1)*cols + c + 1)
			v10 := VertexID(r*cols + c + 1)
			// CCW seen from +Y
			m.Faces = append(m.Faces, []VertexID{v00, v01, v11, v10})
		}
	}

	id := ed.nextID
	ed.nextID++
	ed.meshes[id] = m
	ed.hist.record("createGrid")
	return id, nil
}

// CreateRing creates a flat annulus of quads in the XZ plane: segments quads
// between an inner and an outer ring of vertices. The inner rim and the
// outer rim are both open boundaries. Faces are wound so normals point +Y.
// Inner vertices occupy IDs 0..segments-1, outer vertices follow.
func (ed *Editor) CreateRing(innerR, outerR float64, segments int) (MeshID, error) {
	if segments < 3 {
		return 0, fmt.Errorf("ring needs at least 3 segments, got %d", segments)
	}
	if innerR <= 0 || outerR <= innerR {
		return 0, fmt.Errorf("ring radii must satisfy 0 < inner < outer, got %g, %g", innerR, outerR)
	}

	m := &Mesh{
		Positions: make([]math.Vec3, 0, 2*segments),
		Faces:     make([][]VertexID, 0, segments),
	}
	for _, r := range []float64{innerR, outerR} {
		for i := 0; i < segments; i++ {
			a := 2 * stdmath.Pi * float64(i) / float64(segments)
			m.Positions = append(m.Positions, math.Vec3{
				X: r * stdmath.Cos(a),
				Y: 0,
				Z: r * stdmath.Sin(a),
			})
		}
	}
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		in0, in1 := VertexID(i), VertexID(j)
		out0, out1 := VertexID(segments+i), VertexID(segments+j)
		// CCW seen from +Y (angle increases toward +Z)
		m.Faces = append(m.Faces, []VertexID{in0, in1, out1, out0})
	}

	id := ed.nextID
	ed.nextID++
	ed.meshes[id] = m
	ed.hist.record("createRing")
	return id, nil
}

// UnionMeshes combines a and b into a new mesh whose vertices are a's
// followed by b's (deterministic concatenation) and removes both sources
// from the store.
func (ed *Editor) UnionMeshes(a, b MeshID) (MeshID, error) {
	ma, err := ed.Mesh(a)
	if err != nil {
		return 0, err
	}
	mb, err := ed.Mesh(b)
	if err != nil {
		return 0, err
	}

	offset := VertexID(len(ma.Positions))
	m := &Mesh{
		Positions: make([]math.Vec3, 0, len(ma.Positions)+len(mb.Positions)),
		Faces:     make([][]VertexID, 0, len(ma.Faces)+len(mb.Faces)),
	}
	m.Positions = append(m.Positions, ma.Positions...)
	m.Positions = append(m.Positions, mb.Positions...)
	for _, f := range ma.Faces {
		ring := make([]VertexID, len(f))
		copy(ring, f)
		m.Faces = append(m.Faces, ring)
	}
	for _, f := range mb.Faces {
		ring := make([]VertexID, len(f))
		for i, v := range f {
			ring[i] = v + offset
		}
		m.Faces = append(m.Faces, ring)
	}

	delete(ed.meshes, a)
	delete(ed.meshes, b)
	id := ed.nextID
	ed.nextID++
	ed.meshes[id] = m
	ed.hist.record("unionMeshes")
	return id, nil
}

// FlipFaceOrientation reverses every face ring, flipping all face normals.
func (ed *Editor) FlipFaceOrientation(id MeshID) error {
	m, err := ed.Mesh(id)
	if err != nil {
		return err
	}
	for _, ring := range m.Faces {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}
	ed.hist.record("flipFaceOrientation")
	return nil
}

// MergeVerticesByDistance welds vertices of the given set that lie within
// tolerance of each other. Vertices outside the set are never touched. Each
// weld cluster keeps its lowest-index vertex, at its original position.
// Faces are remapped; rings that collapse below 3 distinct vertices are
// dropped. Returns the number of vertices removed.
func (ed *Editor) MergeVerticesByDistance(id MeshID, set []VertexID, tolerance float64) (int, error) {
	m, err := ed.Mesh(id)
	if err != nil {
		return 0, err
	}
	for _, v := range set {
		if err := m.checkVertex(v); err != nil {
			return 0, err
		}
	}

	// Union-find over the set by pairwise distance. Seam sets are small, so
	// the quadratic scan is fine.
	parent := make(map[VertexID]VertexID, len(set))
	var find func(VertexID) VertexID
	find = func(v VertexID) VertexID {
		if parent[v] != v {
			parent[v] = find(parent[v])
		}
		return parent[v]
	}
	for _, v := range set {
		if _, ok := parent[v]; !ok {
			parent[v] = v
		}
	}
	for i := 0; i < len(set); i++ {
		for j := i + 1; j < len(set); j++ {
			a, b := set[i], set[j]
			if m.Positions[a].Distance(m.Positions[b]) <= tolerance {
				ra, rb := find(a), find(b)
				if ra != rb {
					// Lowest index wins so original vertices keep their slot.
					if rb < ra {
						ra, rb = rb, ra
					}
					parent[rb] = ra
				}
			}
		}
	}

	// Representative for every vertex in the mesh.
	rep := make([]VertexID, len(m.Positions))
	removed := 0
	for v := range rep {
		rep[v] = VertexID(v)
	}
	for _, v := range set {
		r := find(v)
		if r != v && rep[v] == VertexID(v) {
			rep[v] = r
			removed++
		}
	}
	if removed == 0 {
		ed.hist.record("mergeVertices")
		return 0, nil
	}

	// Compact the position array, preserving surviving index order.
	remap := make([]VertexID, len(m.Positions))
	positions := make([]math.Vec3, 0, len(m.Positions)-removed)
	for v := range m.Positions {
		if rep[v] != VertexID(v) {
			continue
		}
		remap[v] = VertexID(len(positions))
		positions = append(positions, m.Positions[v])
	}
	for v := range m.Positions {
		if rep[v] != VertexID(v) {
			remap[v] = remap[rep[v]]
		}
	}

	// Remap faces, collapsing repeated ring entries introduced by the weld.
	faces := make([][]VertexID, 0, len(m.Faces))
	for _, f := range m.Faces {
		ring := make([]VertexID, 0, len(f))
		for _, v := range f {
			nv := remap[v]
			if len(ring) > 0 && ring[len(ring)-1] == nv {
				continue
			}
			ring = append(ring, nv)
		}
		for len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		if len(ring) >= 3 {
			faces = append(faces, ring)
		}
	}

	m.Positions = positions
	m.Faces = faces
	ed.hist.record("mergeVertices")
	return removed, nil
}
