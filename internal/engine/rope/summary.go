package rope

import "unicode/utf8"

// Line terminator scalars recognized beyond the ASCII CR/LF/VT/FF set.
const (
	nextLine           = '\u0085' // NEL
	lineSeparator      = '\u2028' // LS
	paragraphSeparator = '\u2029' // PS
)

// TextInfo is the monoid summary carried by every node: byte length,
// scalar (character) count, and line-terminator count. Add is a pure sum
// with no boundary-stitching logic, which is only correct because
// invariant 4 (grapheme safety at leaf boundaries) guarantees a CRLF pair
// never straddles two leaves — if it could, summing each side's
// line-terminator count independently would double-count it.
type TextInfo struct {
	Bytes int
	Chars int
	Lines int
}

// Add combines two adjacent summaries.
func (a TextInfo) Add(b TextInfo) TextInfo {
	return TextInfo{
		Bytes: a.Bytes + b.Bytes,
		Chars: a.Chars + b.Chars,
		Lines: a.Lines + b.Lines,
	}
}

// Sub removes a previously-added summary. Used by the leaf borrow path
// (§4.3 rebalancing) to update the donor leaf's own info after handing
// a suffix or prefix to an underfull neighbor, without rescanning the
// donor's retained text.
func (a TextInfo) Sub(b TextInfo) TextInfo {
	return TextInfo{
		Bytes: a.Bytes - b.Bytes,
		Chars: a.Chars - b.Chars,
		Lines: a.Lines - b.Lines,
	}
}

// isLineBreakRune reports whether r is one of the seven line terminator
// scalars (the eighth recognized terminator, CRLF, is a pair of them;
// CR is included here on its own; the CRLF-counts-once
// rule is handled by the caller, which must special-case a CR followed by
// LF before falling back to this check).
func isLineBreakRune(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\r', nextLine, lineSeparator, paragraphSeparator:
		return true
	}
	return false
}

// computeTextInfo scans s once, counting scalars and line terminators
// under the §3 rule: LF, VT, FF, CR, CRLF-as-a-unit, NEL, LS, PS each
// contribute exactly one to Lines, and a CR immediately followed by LF
// contributes only one, not two.
func computeTextInfo(s string) TextInfo {
	info := TextInfo{Bytes: len(s)}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		info.Chars++
		if r == '\r' {
			if i+size < len(s) {
				if r2, size2 := utf8.DecodeRuneInString(s[i+size:]); r2 == '\n' {
					info.Lines++
					info.Chars++
					i += size + size2
					continue
				}
			}
			info.Lines++
		} else if isLineBreakRune(r) {
			info.Lines++
		}
		i += size
	}
	return info
}

// isCRLFBoundary reports whether the byte immediately before cut is '\r'
// and the byte at cut is '\n' — the one multi-scalar cluster the grapheme
// safety pass must always catch, even when the broader uniseg-based check
// in grapheme.go is skipped or disagrees.
func isCRLFBoundary(s string, cut int) bool {
	return cut > 0 && cut < len(s) && s[cut-1] == '\r' && s[cut] == '\n'
}
