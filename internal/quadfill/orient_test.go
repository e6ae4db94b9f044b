package quadfill

import (
	"testing"

	"github.com/Faultbox/quadfill/internal/mesh"
	"github.com/Faultbox/quadfill/pkg/math"
)

func TestLoopNormalCCW(t *testing.T) {
	// CCW square in the XZ plane seen from +Y.
	pts := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 0},
	}
	n := loopNormal(pts)
	if n.Y < 0.999 {
		t.Errorf("loopNormal = %v, want +Y", n)
	}

	// Reversed winding flips the normal.
	rev := reversed(pts)
	n = loopNormal(rev)
	if n.Y > -0.999 {
		t.Errorf("loopNormal of reversed = %v, want -Y", n)
	}
}

func TestLoopNormalDegenerate(t *testing.T) {
	// Collinear points have no winding; fall back to +Y.
	pts := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 3, Y: 0, Z: 0},
	}
	n := loopNormal(pts)
	if n != fallbackNormal {
		t.Errorf("loopNormal = %v, want fallback %v", n, fallbackNormal)
	}
}

func TestDetectHoleNormal(t *testing.T) {
	ed, id, hole := ringWithHole(t, 6)
	n := detectHoleNormal(ed, id, hole)
	if n.Y < 0.999 {
		t.Errorf("detectHoleNormal = %v, want +Y (ring faces up)", n)
	}
}

func TestDetectHoleNormalNoFaces(t *testing.T) {
	ed, id, _ := ringWithHole(t, 6)
	n := detectHoleNormal(ed, id, nil)
	if n != fallbackNormal {
		t.Errorf("detectHoleNormal = %v, want fallback %v", n, fallbackNormal)
	}
}

func TestCaptureOrientationInvariant(t *testing.T) {
	for _, segments := range []int{4, 5, 6, 9, 12} {
		ed, id, hole := ringWithHole(t, segments)
		s := NewSession(ed, Options{})
		if err := s.CaptureBoundary(id, hole); err != nil {
			t.Fatalf("segments=%d: CaptureBoundary: %v", segments, err)
		}
		loop := s.Loop()
		if d := loopNormal(loop.Positions).Dot(loop.HoleNormal); d < 0 {
			t.Errorf("segments=%d: dot(loopNormal, holeNormal) = %g, want >= 0", segments, d)
		}
	}
}

func TestOrientLoopReverses(t *testing.T) {
	// Loop wound against the hole normal gets reversed in place.
	pts := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: 1},
	}
	verts := []mesh.VertexID{0, 1, 2, 3}
	orientLoop(verts, pts, math.Vec3{Y: 1})

	if n := loopNormal(pts); n.Y < 0.999 {
		t.Errorf("loop normal after orient = %v, want +Y", n)
	}
	want := []mesh.VertexID{3, 2, 1, 0}
	for i := range want {
		if verts[i] != want[i] {
			t.Fatalf("verts = %v, want %v", verts, want)
		}
	}
}

func TestOrientLoopKeepsAlignedOrder(t *testing.T) {
	// Loop already wound with the hole normal stays untouched.
	pts := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 0},
	}
	verts := []mesh.VertexID{0, 1, 2, 3}
	orientLoop(verts, pts, math.Vec3{Y: 1})

	for i, v := range verts {
		if v != mesh.VertexID(i) {
			t.Fatalf("verts = %v, want unchanged order", verts)
		}
	}
}
