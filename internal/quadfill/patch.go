package quadfill

import (
	"fmt"

	"github.com/Faultbox/quadfill/internal/mesh"
	"github.com/Faultbox/quadfill/pkg/math"
)

// effectiveBoundary writes the boundary rotated by offset into dst, reusing
// its capacity, and appends a duplicate of the first rotated position when
// odd is set so the effective count is always even. Rotation is plain
// modular indexing; the source is never resliced or reallocated.
func effectiveBoundary(dst, src []math.Vec3, offset int, odd bool) []math.Vec3 {
	n := len(src)
	dst = dst[:0]
	for i := 0; i < n; i++ {
		dst = append(dst, src[(offset+i)%n])
	}
	if odd {
		dst = append(dst, dst[0])
	}
	return dst
}

// rotateVerts returns the vertex IDs rotated by offset. The odd-boundary
// duplicate has no ID of its own; it maps back to the first rotated vertex.
func rotateVerts(src []mesh.VertexID, offset int) []mesh.VertexID {
	n := len(src)
	out := make([]mesh.VertexID, n)
	for i := 0; i < n; i++ {
		out[i] = src[(offset+i)%n]
	}
	return out
}

// boundaryWalk lists the grid vertex indices on the perimeter of an
// (sx+1)x(sy+1) row-major grid, in boundary order: bottom row left to
// right, right column bottom to top, top row right to left, left column top
// to bottom. Corners appear once. Length is always 2*sx + 2*sy.
func boundaryWalk(sx, sy int) []int {
	walk := make([]int, 0, 2*sx+2*sy)
	for x := 0; x <= sx; x++ {
		walk = append(walk, x)
	}
	for y := 1; y < sy; y++ {
		walk = append(walk, y*(sx+1)+sx)
	}
	for x := sx; x >= 0; x-- {
		walk = append(walk, sy*(sx+1)+x)
	}
	for y := sy - 1; y >= 1; y-- {
		walk = append(walk, y*(sx+1))
	}
	return walk
}

// resample maps a polyline to exactly n points by uniform parameter,
// blending linearly between the two nearest original samples.
func resample(curve []math.Vec3, n int) []math.Vec3 {
	if len(curve) == n {
		out := make([]math.Vec3, n)
		copy(out, curve)
		return out
	}
	if len(curve) == 1 {
		// A fully collapsed curve (the pole edge of an odd boundary with
		// Sy=1) resamples to n copies of its single point.
		out := make([]math.Vec3, n)
		for i := range out {
			out[i] = curve[0]
		}
		return out
	}
	out := make([]math.Vec3, 0, n)
	denom := n - 1
	if denom < 1 {
		denom = 1
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(denom)
		s := t * float64(len(curve)-1)
		j := int(s)
		if j > len(curve)-2 {
			j = len(curve) - 2
		}
		f := s - float64(j)
		out = append(out, curve[j].Lerp(curve[j+1], f))
	}
	return out
}

func reversed(pts []math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// buildPatch creates a standalone (sx+1)x(sy+1) quad grid whose perimeter
// matches vpos exactly and whose interior is bilinear transfinite (Coons)
// interpolation of the four boundary curves. The patch winding is flipped if
// its average normal opposes holeNormal. Returns the patch mesh and the
// boundary walk for seam identification.
//
// vpos must already be the effective boundary: rotated, and pole-duplicated
// when the source loop is odd. closeTol decides whether the left curve
// already closes back to vpos[0] or still needs the closing point appended
// before resampling.
func buildPatch(ed *mesh.Editor, vpos []math.Vec3, sx, sy int, holeNormal math.Vec3, closeTol float64) (mesh.MeshID, []int, error) {
	if 2*sx+2*sy != len(vpos) {
		return 0, nil, fmt.Errorf("%w: spans %dx%d do not fit %d boundary points",
			ErrConstructionFailure, sx, sy, len(vpos))
	}

	id, err := ed.CreateGrid(1, 1, sx, sy)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrConstructionFailure, err)
	}
	// Do not leave a half-built grid behind on failure.
	fail := func(err error) (mesh.MeshID, []int, error) {
		_ = ed.DeleteMesh(id)
		return 0, nil, fmt.Errorf("%w: %v", ErrConstructionFailure, err)
	}

	walk := boundaryWalk(sx, sy)
	for k, p := range vpos {
		if err := ed.SetVertexPosition(id, mesh.VertexID(walk[k]), p); err != nil {
			return fail(err)
		}
	}

	// Corners and the four boundary curves. Top and left run opposite to
	// the walk so all curves share the bottom-left parameter origin.
	c00, c10 := vpos[0], vpos[sx]
	c11, c01 := vpos[sx+sy], vpos[2*sx+sy]

	bot := vpos[0 : sx+1]
	right := vpos[sx : sx+sy+1]
	top := reversed(vpos[sx+sy : 2*sx+sy+1])

	// The left curve must close back to vpos[0]. With a pole duplicate the
	// remaining slice already ends there; otherwise append the start before
	// resampling to Sy+1 points.
	rawL := make([]math.Vec3, 0, len(vpos)-(2*sx+sy)+1)
	rawL = append(rawL, vpos[2*sx+sy:]...)
	if rawL[len(rawL)-1].Distance(vpos[0]) > closeTol {
		rawL = append(rawL, vpos[0])
	}
	left := resample(reversed(rawL), sy+1)

	// Coons interior. Clamping the curve lookups is defensive only; for a
	// consistent boundary every index is in range.
	onBoundary := make(map[int]bool, len(walk))
	for _, idx := range walk {
		onBoundary[idx] = true
	}
	clamp := func(c []math.Vec3, i int) math.Vec3 {
		if i >= len(c) {
			i = len(c) - 1
		}
		return c[i]
	}
	total := (sx + 1) * (sy + 1)
	for idx := 0; idx < total; idx++ {
		if onBoundary[idx] {
			continue
		}
		col := idx % (sx + 1)
		row := idx / (sx + 1)
		u := float64(col) / float64(sx)
		v := float64(row) / float64(sy)

		b := clamp(bot, col)
		t := clamp(top, col)
		l := clamp(left, row)
		r := clamp(right, row)

		p := l.Scale(1 - u).
			Add(r.Scale(u)).
			Add(b.Scale(1 - v)).
			Add(t.Scale(v)).
			Sub(c00.Scale((1 - u) * (1 - v))).
			Sub(c10.Scale(u * (1 - v))).
			Sub(c01.Scale((1 - u) * v)).
			Sub(c11.Scale(u * v))
		if err := ed.SetVertexPosition(id, mesh.VertexID(idx), p); err != nil {
			return fail(err)
		}
	}

	// The patch must face the same side as the hole. Average all face
	// normals; the strict < 0 test leaves orthogonal results alone.
	faceCount, err := ed.FaceCount(id)
	if err != nil {
		return fail(err)
	}
	var avg math.Vec3
	for f := 0; f < faceCount; f++ {
		n, err := ed.FaceNormal(id, mesh.FaceID(f))
		if err != nil {
			return fail(err)
		}
		avg = avg.Add(n)
	}
	if avg.Length() > 1e-6 && avg.Normalize().Dot(holeNormal) < 0 {
		if err := ed.FlipFaceOrientation(id); err != nil {
			return fail(err)
		}
	}

	return id, walk, nil
}
