package rope

import (
	"strings"
	"testing"
)

func TestSliceBasic(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	r := FromString(text)
	s, err := r.Slice(4, 9)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.String(), "quick"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if s.LenChars() != 5 {
		t.Errorf("LenChars = %d, want 5", s.LenChars())
	}
}

func TestSliceAcrossManyLeaves(t *testing.T) {
	text := strings.Repeat("0123456789", 1000)
	r := FromString(text)
	s, err := r.Slice(2500, 7500)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.String(), text[2500:7500]; got != want {
		t.Errorf("slice mismatch: got len %d, want len %d", len(got), len(want))
	}
}

func TestSliceIndexTranslation(t *testing.T) {
	text := strings.Repeat("ab", 2000)
	r := FromString(text)
	s, err := r.Slice(100, 3000)
	if err != nil {
		t.Fatal(err)
	}
	for charIdx := 0; charIdx < s.LenChars(); charIdx += 37 {
		b, err := s.CharToByte(charIdx)
		if err != nil {
			t.Fatalf("CharToByte(%d): %v", charIdx, err)
		}
		back, err := s.ByteToChar(b)
		if err != nil {
			t.Fatalf("ByteToChar(%d): %v", b, err)
		}
		if back != charIdx {
			t.Errorf("round trip char %d -> byte %d -> char %d", charIdx, b, back)
		}
	}
}

func TestSliceOutOfBounds(t *testing.T) {
	r := FromString("hello")
	if _, err := r.Slice(3, 10); err == nil {
		t.Error("expected error for end past LenChars")
	}
	if _, err := r.Slice(4, 2); err == nil {
		t.Error("expected error for start > end")
	}
}

func TestSliceRope(t *testing.T) {
	r := FromString("hello world")
	s, err := r.Slice(6, 11)
	if err != nil {
		t.Fatal(err)
	}
	out := s.Rope()
	if out.String() != "world" {
		t.Errorf("got %q", out.String())
	}
}
