package quadfill

import (
	"github.com/Faultbox/quadfill/internal/mesh"
	"github.com/Faultbox/quadfill/pkg/math"
)

var fallbackNormal = math.Vec3{X: 0, Y: 1, Z: 0}

// detectHoleNormal estimates which way the hole faces by averaging the
// normals of all faces incident to the boundary edges. A boundary edge has
// exactly one such face (the hole has none). Returns +Y if nothing usable
// is found.
func detectHoleNormal(ed *mesh.Editor, id mesh.MeshID, edges []mesh.EdgeID) math.Vec3 {
	var sum math.Vec3
	count := 0
	for _, e := range edges {
		faces, err := ed.FacesAdjacentToEdge(id, e)
		if err != nil {
			continue
		}
		for _, f := range faces {
			n, err := ed.FaceNormal(id, f)
			if err != nil {
				continue
			}
			sum = sum.Add(n)
			count++
		}
	}
	if count == 0 || sum.Length() < 1e-6 {
		return fallbackNormal
	}
	return sum.Normalize()
}

// loopNormal computes the winding normal of a closed position sequence by
// Newell's method. Returns +Y for degenerate input.
func loopNormal(pts []math.Vec3) math.Vec3 {
	var n math.Vec3
	for i := range pts {
		c := pts[i]
		d := pts[(i+1)%len(pts)]
		n.X += (c.Y - d.Y) * (c.Z + d.Z)
		n.Y += (c.Z - d.Z) * (c.X + d.X)
		n.Z += (c.X - d.X) * (c.Y + d.Y)
	}
	if n.Length() < 1e-9 {
		return fallbackNormal
	}
	return n.Normalize()
}

// orientLoop reverses the loop in place if its winding opposes the hole
// normal, so the boundary is always counter-clockwise with respect to the
// side the patch must face. The strict < 0 test leaves exactly orthogonal
// normals alone.
func orientLoop(verts []mesh.VertexID, positions []math.Vec3, holeNormal math.Vec3) {
	if loopNormal(positions).Dot(holeNormal) < 0 {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
			positions[i], positions[j] = positions[j], positions[i]
		}
	}
}
