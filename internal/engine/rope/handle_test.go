package rope

import "testing"

func TestMakeUniqueClonesWhenShared(t *testing.T) {
	h := newHandle(newLeaf("hello"))
	shared := h.Clone()
	if h.StrongCount() != 2 {
		t.Fatalf("StrongCount after Clone = %d, want 2", h.StrongCount())
	}
	uniq, n := makeUnique(h)
	if uniq.Node() == h.Node() {
		t.Error("makeUnique should have cloned a shared node, not returned the same pointer")
	}
	n.text = "changed"
	if shared.Node().text != "hello" {
		t.Errorf("mutating the unique copy leaked into the other handle: got %q", shared.Node().text)
	}
}

func TestMakeUniqueNoopWhenAlreadyUnique(t *testing.T) {
	h := newHandle(newLeaf("hello"))
	uniq, n := makeUnique(h)
	if uniq.Node() != h.Node() {
		t.Error("makeUnique should not clone an already-unique node")
	}
	n.text = "changed"
	if h.Node().text != "changed" {
		t.Error("mutation through the unique handle should be visible through the original handle")
	}
}

func TestCloneIsStructuralSharingNotCopy(t *testing.T) {
	r := FromString("hello world, this is a somewhat longer rope to make sure it has more than one node")
	clone := r.Clone()
	if r.root.Node() != clone.root.Node() {
		t.Error("Clone should share the same root node until the first write")
	}
	if r.root.StrongCount() < 2 {
		t.Errorf("StrongCount after Clone = %d, want >= 2", r.root.StrongCount())
	}
	edited, err := clone.Insert(0, "X")
	if err != nil {
		t.Fatal(err)
	}
	if r.String() == edited.String() {
		t.Error("editing the clone should not change the original")
	}
	if !r.Equals(FromString("hello world, this is a somewhat longer rope to make sure it has more than one node")) {
		t.Error("original rope content changed after editing its clone")
	}
}
