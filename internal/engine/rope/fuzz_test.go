package rope

import (
	"testing"
	"unicode/utf8"
)

func FuzzFromString(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("hello\nworld")
	f.Add("hello\r\nworld")
	f.Add("日本語")
	f.Add("emoji 🎉 test")

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			t.Skip()
		}
		r := FromString(s)
		if r.LenBytes() != len(s) {
			t.Fatalf("LenBytes mismatch: got %d, want %d", r.LenBytes(), len(s))
		}
		if r.String() != s {
			t.Fatal("content mismatch")
		}
		if err := r.CheckIntegrity(); err != nil {
			t.Fatal(err)
		}
		if err := r.CheckInvariants(); err != nil {
			t.Fatal(err)
		}
	})
}

func FuzzInsert(f *testing.F) {
	f.Add("hello", 0, "x")
	f.Add("hello", 5, "x")
	f.Add("", 0, "test")
	f.Add("日本語", 1, "x")

	f.Fuzz(func(t *testing.T, initial string, at int, text string) {
		if !utf8.ValidString(initial) || !utf8.ValidString(text) {
			t.Skip()
		}
		r := FromString(initial)
		total := r.LenChars()
		at = ((at % (total + 1)) + total + 1) % (total + 1)
		out, err := r.Insert(at, text)
		if err != nil {
			t.Fatalf("Insert(%d): %v", at, err)
		}
		if err := out.CheckIntegrity(); err != nil {
			t.Fatal(err)
		}
		if err := out.CheckInvariants(); err != nil {
			t.Fatal(err)
		}
		if out.LenChars() != total+computeTextInfo(text).Chars {
			t.Fatal("char count after insert is wrong")
		}
	})
}

func FuzzRemove(f *testing.F) {
	f.Add("hello world", 0, 5)
	f.Add("hello", 2, 3)

	f.Fuzz(func(t *testing.T, initial string, start, end int) {
		if !utf8.ValidString(initial) {
			t.Skip()
		}
		r := FromString(initial)
		total := r.LenChars()
		if total == 0 {
			t.Skip()
		}
		start = ((start % (total + 1)) + total + 1) % (total + 1)
		end = ((end % (total + 1)) + total + 1) % (total + 1)
		if start > end {
			start, end = end, start
		}
		out, err := r.Remove(start, end)
		if err != nil {
			t.Fatalf("Remove(%d,%d): %v", start, end, err)
		}
		if err := out.CheckIntegrity(); err != nil {
			t.Fatal(err)
		}
		if err := out.CheckInvariants(); err != nil {
			t.Fatal(err)
		}
		if out.LenChars() != total-(end-start) {
			t.Fatal("char count after remove is wrong")
		}
	})
}
