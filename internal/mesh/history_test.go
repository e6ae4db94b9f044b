package mesh

import (
	"testing"

	"github.com/Faultbox/quadfill/pkg/math"
)

func TestHistoryRecordsMutations(t *testing.T) {
	ed := NewEditor()
	id, _ := ed.CreateGrid(1, 1, 1, 1)
	ed.SetVertexPosition(id, 0, math.Vec3{X: 5})
	ed.DeleteMesh(id)

	if got := ed.History().Len(); got != 3 {
		t.Errorf("history length = %d, want 3", got)
	}
	want := []string{"createGrid", "setVertexPosition", "deleteMesh"}
	got := ed.History().Entries()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistorySuppression(t *testing.T) {
	ed := NewEditor()
	h := ed.History()

	h.BeginSuppression()
	id, _ := ed.CreateGrid(1, 1, 2, 2)
	ed.SetVertexPosition(id, 0, math.Vec3{Y: 1})
	h.EndSuppression()

	if got := h.Len(); got != 0 {
		t.Errorf("history length = %d, want 0 while suppressed", got)
	}

	ed.DeleteMesh(id)
	if got := h.Len(); got != 1 {
		t.Errorf("history length = %d, want 1 after suppression ends", got)
	}
}

func TestHistorySuppressionNests(t *testing.T) {
	ed := NewEditor()
	h := ed.History()

	h.BeginSuppression()
	h.BeginSuppression()
	h.EndSuppression()

	ed.CreateGrid(1, 1, 1, 1)
	if got := h.Len(); got != 0 {
		t.Errorf("history length = %d, want 0 inside outer scope", got)
	}
	h.EndSuppression()

	if !panics(func() { h.EndSuppression() }) {
		t.Error("expected panic on unbalanced EndSuppression")
	}
}

func TestTransactionGroupsEntries(t *testing.T) {
	ed := NewEditor()
	h := ed.History()

	h.OpenTransaction("fillHole")
	a, _ := ed.CreateGrid(1, 1, 2, 1)
	b, _ := ed.CreateGrid(1, 1, 1, 1)
	ed.UnionMeshes(a, b)
	h.CloseTransaction()

	if got := h.Len(); got != 1 {
		t.Fatalf("history length = %d, want 1", got)
	}
	if got := h.Entries()[0]; got != "fillHole" {
		t.Errorf("entry = %q, want %q", got, "fillHole")
	}
}

func TestEmptyTransactionEmitsNothing(t *testing.T) {
	ed := NewEditor()
	h := ed.History()

	h.OpenTransaction("nothing")
	h.CloseTransaction()

	if got := h.Len(); got != 0 {
		t.Errorf("history length = %d, want 0 for empty transaction", got)
	}
}

func TestSuppressionInsideTransaction(t *testing.T) {
	ed := NewEditor()
	h := ed.History()

	h.OpenTransaction("fillHole")
	h.BeginSuppression()
	ed.CreateGrid(1, 1, 1, 1) // invisible even inside the transaction
	h.EndSuppression()
	h.CloseTransaction()

	if got := h.Len(); got != 0 {
		t.Errorf("history length = %d, want 0", got)
	}
}

func TestCloseTransactionWithoutOpen(t *testing.T) {
	var h History
	h.CloseTransaction() // must not panic
	if got := h.Len(); got != 0 {
		t.Errorf("history length = %d, want 0", got)
	}
}

func panics(f func()) (p bool) {
	defer func() {
		if recover() != nil {
			p = true
		}
	}()
	f()
	return false
}
