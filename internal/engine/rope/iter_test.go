package rope

import (
	"strings"
	"testing"
)

func TestChunkIteratorCoversWholeText(t *testing.T) {
	text := strings.Repeat("the quick brown fox ", 2000)
	r := FromString(text)
	var got strings.Builder
	it := r.Chunks()
	for it.Next() {
		got.WriteString(it.Chunk())
	}
	if got.String() != text {
		t.Error("chunk iterator did not reproduce the full text")
	}
}

func TestCharIterator(t *testing.T) {
	text := "hello 世界"
	r := FromString(text)
	var got []rune
	it := r.Chars()
	for it.Next() {
		got = append(got, it.Char())
	}
	if string(got) != text {
		t.Errorf("got %q, want %q", string(got), text)
	}
}

func TestBytesIterator(t *testing.T) {
	text := "hello 世界"
	r := FromString(text)
	var got []byte
	it := r.Bytes()
	for it.Next() {
		got = append(got, it.Byte())
	}
	if string(got) != text {
		t.Errorf("got %q, want %q", string(got), text)
	}
}

func TestLinesIterator(t *testing.T) {
	text := "a\nb\nc\n"
	r := FromString(text)
	var lines []string
	it := r.Lines()
	for {
		line, ok := it.Next()
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	want := []string{"a\n", "b\n", "c\n", ""}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestEmptyRopeIterators(t *testing.T) {
	r := New()
	if r.Chunks().Next() {
		t.Error("Chunks().Next() on empty rope should be false")
	}
	if r.Chars().Next() {
		t.Error("Chars().Next() on empty rope should be false")
	}
}
