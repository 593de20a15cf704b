package rope

import (
	"strings"
	"unicode/utf8"
)

// Rope is a persistent B-tree text buffer. The zero value is not usable;
// construct one with New or FromString. All methods are value receivers
// and return a new Rope rather than mutating the receiver — Clone is an
// O(1) atomic increment, not a copy, so passing a Rope by value around a
// program is cheap.
type Rope struct {
	root SharedHandle
}

// New returns an empty Rope.
func New() Rope {
	return Rope{root: newHandle(newLeaf(""))}
}

// FromString builds a Rope containing s.
func FromString(s string) Rope {
	chunks := chunkText(s)
	leaves := make([]*Node, len(chunks))
	for i, c := range chunks {
		leaves[i] = newLeaf(c)
	}
	return Rope{root: buildBalanced(leaves)}
}

// Clone returns a Rope sharing all of r's tree structure. The clone and
// the original diverge lazily: the first edit to either one clones only
// the nodes on the path from the root to the edit (§5 structural sharing).
func (r Rope) Clone() Rope {
	return Rope{root: r.root.Clone()}
}

// LenBytes, LenChars and LenLines report r's size along each dimension
// tracked by TextInfo.
func (r Rope) LenBytes() int { return r.root.Node().TotalInfo().Bytes }
func (r Rope) LenChars() int { return r.root.Node().TotalInfo().Chars }
func (r Rope) LenLines() int { return r.root.Node().TotalInfo().Lines + 1 }

// String materializes r's full contents as a single string.
func (r Rope) String() string {
	b := getBuilder()
	defer putBuilder(b)
	b.Grow(r.LenBytes())
	collectInto(r.root.Node(), b)
	return b.String()
}

func collectInto(n *Node, b *strings.Builder) {
	if n.IsLeaf() {
		b.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		collectInto(c.Node(), b)
	}
}

// Equals reports whether r and other contain the same text.
func (r Rope) Equals(other Rope) bool {
	if r.LenBytes() != other.LenBytes() {
		return false
	}
	return r.String() == other.String()
}

// Insert inserts text at character index charIdx.
func (r Rope) Insert(charIdx int, text string) (Rope, error) {
	if charIdx < 0 || charIdx > r.LenChars() {
		return r, opErr("Insert", charIdx, ErrOutOfBounds)
	}
	if text == "" {
		return r, nil
	}
	return r.replace(charIdx, charIdx, text), nil
}

// Remove deletes the character range [start, end).
func (r Rope) Remove(start, end int) (Rope, error) {
	total := r.LenChars()
	if start < 0 || end > total || start > end {
		return r, opErr("Remove", [2]int{start, end}, ErrOutOfBounds)
	}
	if start == end {
		return r, nil
	}
	return r.replace(start, end, ""), nil
}

// Replace deletes the character range [start, end) and inserts text in
// its place, as a single logical edit.
func (r Rope) Replace(start, end int, text string) (Rope, error) {
	total := r.LenChars()
	if start < 0 || end > total || start > end {
		return r, opErr("Replace", [2]int{start, end}, ErrOutOfBounds)
	}
	return r.replace(start, end, text), nil
}

// replace is the shared editing primitive behind Insert/Remove/Replace.
// It first removes [start, end) as one edit, then inserts text as a
// sequence of single-point inserts, one per MaxBytes-sized chunk — this
// keeps any one leaf from growing far past MaxBytes regardless of how
// much text is being inserted, at the cost of doing a large paste as
// several tree mutations instead of one. editCharRange itself remains
// general enough to splice a replacement across multiple children in a
// single call; this method just never needs to ask it to.
func (r Rope) replace(start, end int, text string) Rope {
	root := r.root.Clone()
	if end > start {
		res := editCharRange(root, start, end, "")
		root = assembleRoot(res)
	}
	pos := start
	for _, chunk := range chunkText(text) {
		res := editCharRange(root, pos, pos, chunk)
		root = assembleRoot(res)
		pos += computeTextInfo(chunk).Chars
	}
	return Rope{root: root}
}

// Split divides r at character index at into two ropes: the content
// before at and the content at-and-after. It is built from the same
// editCharRange primitive as Remove, so it shares structure with r
// rather than copying.
func (r Rope) Split(at int) (left, right Rope, err error) {
	total := r.LenChars()
	if at < 0 || at > total {
		return r, r, opErr("Split", at, ErrOutOfBounds)
	}
	left, err = r.Clone().Remove(at, total)
	if err != nil {
		return r, r, err
	}
	right, err = r.Clone().Remove(0, at)
	if err != nil {
		return r, r, err
	}
	return left, right, nil
}

// Concat returns a new Rope containing r's content followed by other's.
func (r Rope) Concat(other Rope) Rope {
	out, err := r.Insert(r.LenChars(), other.String())
	if err != nil {
		panic(err) // r.LenChars() is always a valid insert point
	}
	return out
}

// Line returns the text of the n-th line (0-indexed), including its
// terminator if any, per §6's line-counting rules.
func (r Rope) Line(n int) (string, error) {
	terminators := r.root.Node().TotalInfo().Lines
	if n < 0 || n > terminators {
		return "", opErr("Line", n, ErrOutOfBounds)
	}
	startByte, _ := r.LineToByte(n)
	endByte := r.LenBytes()
	if n+1 <= terminators {
		endByte, _ = r.LineToByte(n + 1)
	}
	return sliceBytes(r.root.Node(), startByte, endByte), nil
}

func sliceBytes(n *Node, start, end int) string {
	b := getBuilder()
	defer putBuilder(b)
	collectByteRange(n, 0, start, end, b)
	return b.String()
}

func collectByteRange(n *Node, base, start, end int, b *strings.Builder) {
	total := n.TotalInfo().Bytes
	lo, hi := base, base+total
	if hi <= start || lo >= end {
		return
	}
	if n.IsLeaf() {
		from := max(0, start-base)
		to := min(total, end-base)
		if from < to {
			b.WriteString(n.text[from:to])
		}
		return
	}
	off := base
	for _, c := range n.children {
		cn := c.Node()
		collectByteRange(cn, off, start, end, b)
		off += cn.TotalInfo().Bytes
	}
}

// ByteToChar, CharToByte, ByteToLine, LineToByte, CharToLine and
// LineToChar translate an index on one dimension to the corresponding
// index on another, per §6. ByteToChar and ByteToLine require their
// input to be on a scalar boundary.
func (r Rope) ByteToChar(byteIdx int) (int, error) {
	n := r.root.Node()
	if byteIdx < 0 || byteIdx > n.TotalInfo().Bytes {
		return 0, opErr("ByteToChar", byteIdx, ErrOutOfBounds)
	}
	if !isScalarBoundaryInTree(n, byteIdx) {
		return 0, opErr("ByteToChar", byteIdx, ErrScalarBoundary)
	}
	return byteToChar(n, byteIdx), nil
}

func (r Rope) CharToByte(charIdx int) (int, error) {
	n := r.root.Node()
	if charIdx < 0 || charIdx > n.TotalInfo().Chars {
		return 0, opErr("CharToByte", charIdx, ErrOutOfBounds)
	}
	return charToByte(n, charIdx), nil
}

func (r Rope) ByteToLine(byteIdx int) (int, error) {
	n := r.root.Node()
	if byteIdx < 0 || byteIdx > n.TotalInfo().Bytes {
		return 0, opErr("ByteToLine", byteIdx, ErrOutOfBounds)
	}
	if !isScalarBoundaryInTree(n, byteIdx) {
		return 0, opErr("ByteToLine", byteIdx, ErrScalarBoundary)
	}
	return byteToLine(n, byteIdx), nil
}

func (r Rope) LineToByte(line int) (int, error) {
	n := r.root.Node()
	if line < 0 || line > n.TotalInfo().Lines {
		return 0, opErr("LineToByte", line, ErrOutOfBounds)
	}
	if line == 0 {
		// Line 0 always starts at the very beginning of the rope.
		return 0, nil
	}
	return lineToByte(n, line), nil
}

func (r Rope) CharToLine(charIdx int) (int, error) {
	b, err := r.CharToByte(charIdx)
	if err != nil {
		return 0, err
	}
	return byteToLine(r.root.Node(), b), nil
}

func (r Rope) LineToChar(line int) (int, error) {
	b, err := r.LineToByte(line)
	if err != nil {
		return 0, err
	}
	return byteToChar(r.root.Node(), b), nil
}

func byteToChar(n *Node, byteIdx int) int {
	if n.IsLeaf() {
		return leafByteToChar(n.text, byteIdx)
	}
	slot, off := n.findChild(byteIdx, dimBytes)
	base := 0
	for i := 0; i < slot; i++ {
		base += n.infos[i].Chars
	}
	return base + byteToChar(n.children[slot].Node(), off)
}

func charToByte(n *Node, charIdx int) int {
	if n.IsLeaf() {
		return leafCharToByte(n.text, charIdx)
	}
	slot, off := n.findChild(charIdx, dimChars)
	base := 0
	for i := 0; i < slot; i++ {
		base += n.infos[i].Bytes
	}
	return base + charToByte(n.children[slot].Node(), off)
}

func byteToLine(n *Node, byteIdx int) int {
	if n.IsLeaf() {
		return computeTextInfo(n.text[:byteIdx]).Lines
	}
	slot, off := n.findChild(byteIdx, dimBytes)
	base := 0
	for i := 0; i < slot; i++ {
		base += n.infos[i].Lines
	}
	return base + byteToLine(n.children[slot].Node(), off)
}

func lineToByte(n *Node, line int) int {
	if n.IsLeaf() {
		return lineStartByte(n.text, line)
	}
	// Step into the child holding the line-th terminator, which may be
	// followed by more text in that same child.
	base, running := 0, 0
	for i, info := range n.infos {
		if running+info.Lines >= line || i == len(n.infos)-1 {
			return base + lineToByte(n.children[i].Node(), line-running)
		}
		running += info.Lines
		base += info.Bytes
	}
	return base
}

// lineStartByte returns the byte offset, within s, just past the
// target-th line terminator in s (the start of the line that follows
// it); target 0 yields 0. target counts terminators within this leaf,
// matching the local count lineToByte passes down.
func lineStartByte(s string, target int) int {
	if target == 0 {
		return 0
	}
	count := 0
	i := 0
	for i < len(s) {
		crossed, size := decodeLineAdvance(s, i)
		i += size
		if crossed {
			count++
			if count == target {
				return i
			}
		}
	}
	return len(s)
}

// decodeLineAdvance advances one scalar (or one CRLF pair) from s[i:] and
// reports whether that advance crossed a line terminator.
func decodeLineAdvance(s string, i int) (crossedLine bool, size int) {
	r, sz := utf8.DecodeRuneInString(s[i:])
	if r == '\r' {
		if i+sz < len(s) {
			if r2, sz2 := utf8.DecodeRuneInString(s[i+sz:]); r2 == '\n' {
				return true, sz + sz2
			}
		}
		return true, sz
	}
	return isLineBreakRune(r), sz
}

func isScalarBoundaryInTree(n *Node, byteIdx int) bool {
	if n.IsLeaf() {
		return isScalarBoundary(n.text, byteIdx)
	}
	slot, off := n.findChild(byteIdx, dimBytes)
	return isScalarBoundaryInTree(n.children[slot].Node(), off)
}
