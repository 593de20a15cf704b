package rope

import (
	"strings"
	"testing"
)

func TestFindChildDescent(t *testing.T) {
	infos := []TextInfo{{Bytes: 5, Chars: 5}, {Bytes: 3, Chars: 3}, {Bytes: 4, Chars: 4}}
	n := &Node{kind: kindInternal, infos: infos}

	cases := []struct {
		target   int
		wantSlot int
		wantOff  int
	}{
		{0, 0, 0},
		{4, 0, 4},
		{5, 1, 0}, // exact boundary: "first exceeds" lands in the next slot
		{7, 1, 2},
		{8, 2, 0},
		{12, 2, 4}, // one past the end: valid for length-yielding queries
	}
	for _, c := range cases {
		slot, off := n.findChild(c.target, dimChars)
		if slot != c.wantSlot || off != c.wantOff {
			t.Errorf("findChild(%d) = (%d,%d), want (%d,%d)", c.target, slot, off, c.wantSlot, c.wantOff)
		}
	}
}

func TestSplitLeafIfNeededWithinBounds(t *testing.T) {
	text := strings.Repeat("a", MaxBytes)
	res := splitLeafIfNeeded(text)
	if res.split {
		t.Error("a leaf exactly at MaxBytes should not split")
	}
}

func TestSplitLeafIfNeededOverflow(t *testing.T) {
	text := strings.Repeat("a", MaxBytes+100)
	res := splitLeafIfNeeded(text)
	if !res.split {
		t.Fatal("an oversized plain-ASCII leaf should split")
	}
	if len(res.left.Node().text)+len(res.right.Node().text) != len(text) {
		t.Error("split lost bytes")
	}
	if res.left.Node().text+res.right.Node().text != text {
		t.Error("split pieces out of order or overlapping")
	}
}

func TestSplitLeafIfNeededKeepsCRLFWhole(t *testing.T) {
	text := strings.Repeat("a", MaxBytes-1) + "\r\n" + strings.Repeat("b", MaxBytes-1)
	res := splitLeafIfNeeded(text)
	if res.split {
		if isCRLFBoundary(res.left.Node().text+res.right.Node().text, len(res.left.Node().text)) {
			t.Error("split point bisected the CRLF pair")
		}
	}
}

func TestChunkText(t *testing.T) {
	if chunkText("") != nil {
		t.Error("chunkText(\"\") should be nil")
	}
	small := "hello"
	chunks := chunkText(small)
	if len(chunks) != 1 || chunks[0] != small {
		t.Errorf("chunkText(small) = %v", chunks)
	}
	big := strings.Repeat("x", MaxBytes*5)
	chunks = chunkText(big)
	var rebuilt strings.Builder
	for _, c := range chunks {
		if len(c) > MaxBytes {
			t.Errorf("chunk of length %d exceeds MaxBytes", len(c))
		}
		rebuilt.WriteString(c)
	}
	if rebuilt.String() != big {
		t.Error("chunkText lost or reordered bytes")
	}
}

func TestBuildBalancedEmpty(t *testing.T) {
	h := buildBalanced(nil)
	if h.Node().TotalInfo().Bytes != 0 {
		t.Error("buildBalanced(nil) should be empty")
	}
}

func TestRebalanceAfterManyRemoves(t *testing.T) {
	// Build a rope with many small leaves, then delete most of the
	// content from the middle outward so borrow/merge both fire.
	r := FromString(strings.Repeat("0123456789", 2000))
	total := r.LenChars()
	var err error
	for total > 10 {
		mid := total / 2
		r, err = r.Remove(mid, mid+7)
		if err != nil {
			t.Fatal(err)
		}
		total = r.LenChars()
		if err := r.CheckInvariants(); err != nil {
			t.Fatalf("invariants broken at len %d: %v", total, err)
		}
	}
	if err := r.CheckIntegrity(); err != nil {
		t.Fatal(err)
	}
}
