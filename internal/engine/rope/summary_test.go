package rope

import "testing"

func TestComputeTextInfo(t *testing.T) {
	tests := []struct {
		name string
		text string
		want TextInfo
	}{
		{"empty", "", TextInfo{0, 0, 0}},
		{"ascii", "hello", TextInfo{5, 5, 0}},
		{"lf", "a\nb", TextInfo{3, 3, 1}},
		{"crlf counts once", "a\r\nb", TextInfo{4, 4, 1}},
		{"lone cr", "a\rb", TextInfo{3, 3, 1}},
		{"lone lf after cr-less text", "a\nb\nc", TextInfo{5, 5, 2}},
		{"vt ff", "a\vb\fc", TextInfo{5, 5, 2}},
		{"nel", "a\u0085b", TextInfo{4, 3, 1}},
		{"ls ps", "a\u2028b\u2029c", TextInfo{9, 5, 2}},
		{"unicode scalar count", "日本語", TextInfo{9, 3, 0}},
		{"crlf then more", "a\r\nb\r\nc", TextInfo{7, 7, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeTextInfo(tt.text)
			if got != tt.want {
				t.Errorf("computeTextInfo(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTextInfoAddSub(t *testing.T) {
	a := computeTextInfo("hello\n")
	b := computeTextInfo("world\r\n")
	sum := a.Add(b)
	want := computeTextInfo("hello\nworld\r\n")
	if sum != want {
		t.Errorf("Add: got %+v, want %+v", sum, want)
	}
	if sum.Sub(b) != a {
		t.Errorf("Sub: got %+v, want %+v", sum.Sub(b), a)
	}
}

func TestIsCRLFBoundary(t *testing.T) {
	s := "a\r\nb"
	if !isCRLFBoundary(s, 2) {
		t.Error("expected boundary at index 2 (between \\r and \\n)")
	}
	if isCRLFBoundary(s, 1) {
		t.Error("index 1 is not between \\r and \\n")
	}
	if isCRLFBoundary(s, 0) || isCRLFBoundary(s, len(s)) {
		t.Error("edges are never a CRLF boundary")
	}
}
