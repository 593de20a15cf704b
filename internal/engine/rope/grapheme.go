package rope

import "github.com/rivo/uniseg"

// isGraphemeBoundary reports whether byte offset cut in s falls on a
// grapheme cluster boundary (cut == 0, cut == len(s), and "between two
// clusters" all count as boundaries). It is used only to validate or
// adjust a *candidate* leaf split point; it is never consulted for
// ordinary read-path indexing, since the public API is scalar-indexed,
// not cluster-indexed (the library does not offer grapheme-granular
// editing — see Non-goals).
func isGraphemeBoundary(s string, cut int) bool {
	if cut <= 0 || cut >= len(s) {
		return true
	}
	if isCRLFBoundary(s, cut) {
		return false
	}
	gr := uniseg.NewGraphemes(s)
	pos := 0
	for gr.Next() {
		start, end := gr.Positions()
		_ = start
		if pos == cut {
			return true
		}
		if cut > pos && cut < end {
			return false
		}
		pos = end
	}
	return pos == cut
}

// nearestGraphemeBoundaryLeft walks left from cut to the nearest byte
// offset that does not split a grapheme cluster. Used by safeSplitPoint,
// which picks this left boundary on a tie, leaving a straddling cluster
// whole in the right half.
func nearestGraphemeBoundaryLeft(s string, cut int) int {
	for cut > 0 && !isGraphemeBoundary(s, cut) {
		cut--
	}
	return cut
}

// nearestGraphemeBoundaryRight walks right from cut to the nearest byte
// offset that does not split a grapheme cluster.
func nearestGraphemeBoundaryRight(s string, cut int) int {
	for cut < len(s) && !isGraphemeBoundary(s, cut) {
		cut++
	}
	return cut
}

// safeSplitPoint returns a byte offset near want that is both a scalar
// boundary and a grapheme cluster boundary: the nearer of the cluster
// boundaries on either side of want, and the left one when both are
// equally far. It always terminates: at worst
// it returns 0 or len(s), which are unconditionally boundaries.
func safeSplitPoint(s string, want int) int {
	if want <= 0 {
		return 0
	}
	if want >= len(s) {
		return len(s)
	}
	// want is always already on a scalar boundary by construction of
	// every caller (leaf byte math only ever advances by full rune
	// widths), so only the grapheme check remains.
	if isGraphemeBoundary(s, want) {
		return want
	}
	left := nearestGraphemeBoundaryLeft(s, want)
	right := nearestGraphemeBoundaryRight(s, want)
	if want-left <= right-want {
		return left
	}
	return right
}
