package rope

import "unicode/utf8"

// B-tree size bounds. Both variants of Node share one struct (and
// therefore one allocator size class); these numbers are tunable, not
// load-bearing for correctness (§9 "Node sizing").
const (
	MaxBytes    = 1024
	MinBytes    = MaxBytes / 2
	MaxChildren = 8
	MinChildren = MaxChildren / 2
)

type nodeKind uint8

const (
	kindLeaf nodeKind = iota
	kindInternal
)

// Node is the tagged-union tree vertex: either a Leaf holding UTF-8 bytes
// or an Internal holding a child table. Both variants live in the same
// struct so every Node allocation is the same size regardless of kind
// (§9 "Tagged-union node").
type Node struct {
	kind   nodeKind
	height int // 0 for a leaf; 1 + tallest child for an internal node

	// Leaf fields.
	text string
	info TextInfo // cached computeTextInfo(text)

	// Internal fields: parallel arrays, one TextInfo/SharedHandle pair
	// per child (§4.2 child table).
	children []SharedHandle
	infos    []TextInfo
}

func newLeaf(text string) *Node {
	return &Node{kind: kindLeaf, text: text, info: computeTextInfo(text)}
}

func newInternal(children []SharedHandle, infos []TextInfo) *Node {
	height := 1
	if len(children) > 0 {
		height = children[0].Node().height + 1
	}
	return &Node{kind: kindInternal, children: children, infos: infos, height: height}
}

// IsLeaf reports whether n is a Leaf node.
func (n *Node) IsLeaf() bool { return n.kind == kindLeaf }

// TotalInfo returns the aggregate TextInfo for n's whole subtree.
func (n *Node) TotalInfo() TextInfo {
	if n.IsLeaf() {
		return n.info
	}
	var sum TextInfo
	for _, info := range n.infos {
		sum = sum.Add(info)
	}
	return sum
}

// shallowClone copies n's own fields (and, for an internal node, its
// child/info slices) without touching the grandchildren. This is the
// "clone one level deep" the COW step (makeUnique) needs: the cloned
// node's children slots still point at the same SharedHandles as the
// original, which is exactly the point of structural sharing.
func (n *Node) shallowClone() *Node {
	clone := &Node{kind: n.kind, height: n.height}
	if n.IsLeaf() {
		clone.text = n.text
		clone.info = n.info
	} else {
		clone.children = make([]SharedHandle, len(n.children))
		for i, c := range n.children {
			// Bump each grandchild's refcount: the original node and
			// this clone now both hold a handle to it, so the next
			// makeUnique through either path must see refs > 1 and
			// clone again rather than mutating the shared grandchild
			// in place.
			clone.children[i] = c.Clone()
		}
		clone.infos = append([]TextInfo(nil), n.infos...)
	}
	return clone
}

// infoDim selects which component of a TextInfo a descent is keyed on.
type infoDim int

const (
	dimChars infoDim = iota
	dimBytes
	dimLines
)

func dimOf(info TextInfo, d infoDim) int {
	switch d {
	case dimBytes:
		return info.Bytes
	case dimLines:
		return info.Lines
	default:
		return info.Chars
	}
}

// findChild performs the §4.2/§4.3 descent-by-index search: linearly sum
// child counts along dimension d until the running total first exceeds
// target, and step into that child. A target exactly on a cumulative
// boundary therefore lands at offset 0 of the *next* slot, matching "the
// running total first exceeds the target" read literally; callers that
// need the left-preference insertion tie-break (§4.3) apply it
// themselves before calling findChild.
func (n *Node) findChild(target int, d infoDim) (slot, offset int) {
	running := 0
	for i, info := range n.infos {
		c := dimOf(info, d)
		if running+c > target {
			return i, target - running
		}
		running += c
	}
	last := len(n.infos) - 1
	lastCount := dimOf(n.infos[last], d)
	return last, target - (running - lastCount)
}

// leafCharToByte scans text for the byte offset of the charIdx-th scalar.
// charIdx == the leaf's scalar count is valid and yields len(text).
func leafCharToByte(text string, charIdx int) int {
	i, c := 0, 0
	for i < len(text) {
		if c == charIdx {
			return i
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
		c++
	}
	return i
}

// leafByteToChar scans text for the scalar index at byte offset byteIdx.
// Does not validate that byteIdx is itself a scalar boundary; callers on
// the public byte-translation surface do that check separately so they
// can report ErrScalarBoundary instead of silently rounding.
func leafByteToChar(text string, byteIdx int) int {
	i, c := 0, 0
	for i < byteIdx && i < len(text) {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
		c++
	}
	return c
}

// isScalarBoundary reports whether byteIdx falls on a UTF-8 scalar
// boundary within text (0 and len(text) always count).
func isScalarBoundary(text string, byteIdx int) bool {
	if byteIdx <= 0 || byteIdx >= len(text) {
		return byteIdx == 0 || byteIdx == len(text)
	}
	return utf8.RuneStart(text[byteIdx])
}

// editResult is what editCharRange hands back to its caller: the
// (possibly new) left subtree and, only when an overflow split
// occurred, a promoted right sibling (§4.3).
type editResult struct {
	left      SharedHandle
	leftInfo  TextInfo
	right     SharedHandle
	rightInfo TextInfo
	split     bool
}

// editCharRange removes the character range [start, end) from the
// subtree rooted at h and inserts replacement at start, per §4.3. It
// always clones-for-write (via makeUnique) before mutating anything, so
// h's previous node is left untouched for any other holder.
func editCharRange(h SharedHandle, start, end int, replacement string) editResult {
	if h.Node().IsLeaf() {
		return editLeaf(h, start, end, replacement)
	}
	return editInternal(h, start, end, replacement)
}

func editLeaf(h SharedHandle, start, end int, replacement string) editResult {
	_, n := makeUnique(h)
	byteStart := leafCharToByte(n.text, start)
	byteEnd := leafCharToByte(n.text, end)
	newText := n.text[:byteStart] + replacement + n.text[byteEnd:]
	return splitLeafIfNeeded(newText)
}

// splitLeafIfNeeded wraps text as a single leaf if it fits, or splits it
// once near its midpoint — on a scalar and grapheme-cluster boundary —
// if it overflows MaxBytes. A leaf that is one unsplittable grapheme
// cluster wider than MaxBytes is accepted as-is (the spill exception in
// invariant 1).
func splitLeafIfNeeded(text string) editResult {
	if len(text) <= MaxBytes {
		n := newLeaf(text)
		return editResult{left: newHandle(n), leftInfo: n.info}
	}
	cut := safeSplitPoint(text, len(text)/2)
	if cut <= 0 || cut >= len(text) {
		n := newLeaf(text)
		return editResult{left: newHandle(n), leftInfo: n.info}
	}
	left := newLeaf(text[:cut])
	right := newLeaf(text[cut:])
	return editResult{
		left: newHandle(left), leftInfo: left.info,
		right: newHandle(right), rightInfo: right.info,
		split: true,
	}
}

func editInternal(h SharedHandle, start, end int, replacement string) editResult {
	h, n := makeUnique(h)

	loSlot, loOffset := n.findChild(start, dimChars)
	// Left-preference tie-break for insertion at an exact slot boundary
	// (§4.3): only relevant when start == end (a pure insert) and the
	// descent landed at offset 0 of some slot other than the first —
	// prefer appending to the end of the previous sibling unless it is
	// already at byte capacity.
	if start == end && loOffset == 0 && loSlot > 0 {
		prev := n.children[loSlot-1].Node()
		full := prev.IsLeaf() && len(prev.text) >= MaxBytes
		if !full {
			loSlot--
			loOffset = n.infos[loSlot].Chars
		}
	}

	if start == end {
		// Pure insert never spans more than one child once the
		// tie-break above has resolved the boundary case.
		res := editCharRange(n.children[loSlot], loOffset, loOffset, replacement)
		replaceSlots(n, loSlot, loSlot, []editResult{res})
		return rebalanceAfterEdit(h, n)
	}

	hiSlot, hiOffset := n.findChild(end, dimChars)
	if loSlot == hiSlot {
		res := editCharRange(n.children[loSlot], loOffset, hiOffset, replacement)
		replaceSlots(n, loSlot, loSlot, []editResult{res})
		return rebalanceAfterEdit(h, n)
	}

	leftLen := n.infos[loSlot].Chars
	leftRes := editCharRange(n.children[loSlot], loOffset, leftLen, replacement)
	rightRes := editCharRange(n.children[hiSlot], 0, hiOffset, "")
	replaceSlots(n, loSlot, hiSlot, []editResult{leftRes, rightRes})
	return rebalanceAfterEdit(h, n)
}

// replaceSlots overwrites child slots [lo, hi] (inclusive) with the
// flattened left/right pairs from results, in order. The interior
// children strictly between lo and hi — the "fully covered" children of
// a multi-slot edit — are simply dropped, matching §4.3's "mark all
// fully-covered interior children for deletion".
func replaceSlots(n *Node, lo, hi int, results []editResult) {
	newChildren := make([]SharedHandle, 0, len(results)*2)
	newInfos := make([]TextInfo, 0, len(results)*2)
	for _, res := range results {
		newChildren = append(newChildren, res.left)
		newInfos = append(newInfos, res.leftInfo)
		if res.split {
			newChildren = append(newChildren, res.right)
			newInfos = append(newInfos, res.rightInfo)
		}
	}
	n.children = spliceHandles(n.children, lo, hi, newChildren)
	n.infos = spliceInfos(n.infos, lo, hi, newInfos)
}

func spliceHandles(src []SharedHandle, lo, hi int, with []SharedHandle) []SharedHandle {
	out := make([]SharedHandle, 0, len(src)-(hi-lo+1)+len(with))
	out = append(out, src[:lo]...)
	out = append(out, with...)
	out = append(out, src[hi+1:]...)
	return out
}

func spliceInfos(src []TextInfo, lo, hi int, with []TextInfo) []TextInfo {
	out := make([]TextInfo, 0, len(src)-(hi-lo+1)+len(with))
	out = append(out, src[:lo]...)
	out = append(out, with...)
	out = append(out, src[hi+1:]...)
	return out
}

// rebalanceAfterEdit fixes any underflowed children left behind by an
// edit (borrow from or merge with a neighbor), then, if n itself has
// overflowed past MaxChildren, splits n in half and reports the right
// half as a promoted sibling for the caller to install (§4.3 "Rebalance
// after edit").
func rebalanceAfterEdit(h SharedHandle, n *Node) editResult {
	fixUnderflow(n)
	if len(n.children) > 0 {
		n.height = n.children[0].Node().height + 1
	}
	if len(n.children) <= MaxChildren {
		return editResult{left: h, leftInfo: n.TotalInfo()}
	}
	mid := len(n.children) / 2
	left := newInternal(append([]SharedHandle(nil), n.children[:mid]...), append([]TextInfo(nil), n.infos[:mid]...))
	right := newInternal(append([]SharedHandle(nil), n.children[mid:]...), append([]TextInfo(nil), n.infos[mid:]...))
	return editResult{
		left: newHandle(left), leftInfo: left.TotalInfo(),
		right: newHandle(right), rightInfo: right.TotalInfo(),
		split: true,
	}
}

// isUnderfull reports whether n, as a non-root child, violates its lower
// size bound (invariant 1's root exemption is the caller's job: this is
// only ever called on children, never on a root).
func isUnderfull(n *Node) bool {
	if n.IsLeaf() {
		return n.info.Bytes < MinBytes
	}
	return len(n.children) < MinChildren
}

// fixUnderflow repairs every underfull child of n in place, applying
// borrow-left, borrow-right, merge-left, merge-right in that order at
// each underfull slot (grounded on the npillmayer-cords btree package's
// applyRebalancePolicy ordering).
func fixUnderflow(n *Node) {
	i := 0
	for i < len(n.children) {
		if !isUnderfull(n.children[i].Node()) {
			i++
			continue
		}
		switch {
		case tryBorrowLeft(n, i):
			i++
		case tryBorrowRight(n, i):
			i++
		case tryMergeLeft(n, i):
			// child i merged into slot i-1, which was already checked
			// and cannot be underfull after absorbing more; slot i now
			// holds the next child, so i stays where it is.
		case tryMergeRight(n, i):
			// child i absorbed child i+1; re-examine slot i.
		default:
			// No sibling at all (n has exactly one child): nothing to
			// do: a lone child cannot borrow or merge.
			i++
		}
	}
}

func tryBorrowLeft(n *Node, i int) bool {
	if i == 0 {
		return false
	}
	leftH, left := makeUnique(n.children[i-1])
	childH, child := makeUnique(n.children[i])
	var ok bool
	if left.IsLeaf() {
		ok = borrowLeafLeft(left, child)
	} else {
		ok = borrowInternalLeft(left, child)
	}
	if !ok {
		return false
	}
	n.children[i-1], n.children[i] = leftH, childH
	n.infos[i-1], n.infos[i] = left.TotalInfo(), child.TotalInfo()
	return true
}

func tryBorrowRight(n *Node, i int) bool {
	if i >= len(n.children)-1 {
		return false
	}
	childH, child := makeUnique(n.children[i])
	rightH, right := makeUnique(n.children[i+1])
	var ok bool
	if child.IsLeaf() {
		ok = borrowLeafRight(child, right)
	} else {
		ok = borrowInternalRight(child, right)
	}
	if !ok {
		return false
	}
	n.children[i], n.children[i+1] = childH, rightH
	n.infos[i], n.infos[i+1] = child.TotalInfo(), right.TotalInfo()
	return true
}

func tryMergeLeft(n *Node, i int) bool {
	if i == 0 {
		return false
	}
	leftH, left := makeUnique(n.children[i-1])
	child := n.children[i].Node()
	mergeInto(left, child)
	n.children[i-1] = leftH
	n.infos[i-1] = left.TotalInfo()
	removeSlot(n, i)
	return true
}

func tryMergeRight(n *Node, i int) bool {
	if i >= len(n.children)-1 {
		return false
	}
	childH, child := makeUnique(n.children[i])
	right := n.children[i+1].Node()
	mergeInto(child, right)
	n.children[i] = childH
	n.infos[i] = child.TotalInfo()
	removeSlot(n, i+1)
	return true
}

// mergeInto absorbs src's content into dst. Safe to call only when
// borrowing from the same neighbor already failed, which guarantees
// dst and src together stay within MaxBytes/MaxChildren (see fixUnderflow).
func mergeInto(dst, src *Node) {
	if dst.IsLeaf() {
		dst.text += src.text
		dst.info = computeTextInfo(dst.text)
	} else {
		// src is read, not consumed — its own parent slot still holds a
		// handle to it until the caller's removeSlot runs, so each
		// absorbed grandchild now has a second owner and must have its
		// refcount bumped, same discipline as shallowClone.
		for _, c := range src.children {
			dst.children = append(dst.children, c.Clone())
		}
		dst.infos = append(dst.infos, src.infos...)
	}
}

func removeSlot(n *Node, idx int) {
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	n.infos = append(n.infos[:idx], n.infos[idx+1:]...)
}

// borrowLeafLeft moves just enough of left's tail into child to bring
// child back up to MinBytes, provided left has surplus to give without
// itself dropping below MinBytes.
func borrowLeafLeft(left, child *Node) bool {
	avail := len(left.text) - MinBytes
	need := MinBytes - len(child.text)
	if need <= 0 || avail < need {
		return false
	}
	take := min(avail, need)
	cut := safeSplitPoint(left.text, len(left.text)-take)
	if cut <= 0 || cut >= len(left.text) {
		return false
	}
	moved := left.text[cut:]
	movedInfo := computeTextInfo(moved)
	left.text = left.text[:cut]
	left.info = left.info.Sub(movedInfo)
	child.text = moved + child.text
	child.info = child.info.Add(movedInfo)
	return true
}

func borrowLeafRight(child, right *Node) bool {
	avail := len(right.text) - MinBytes
	need := MinBytes - len(child.text)
	if need <= 0 || avail < need {
		return false
	}
	take := min(avail, need)
	cut := safeSplitPoint(right.text, take)
	if cut <= 0 || cut >= len(right.text) {
		return false
	}
	moved := right.text[:cut]
	movedInfo := computeTextInfo(moved)
	right.text = right.text[cut:]
	right.info = right.info.Sub(movedInfo)
	child.text += moved
	child.info = child.info.Add(movedInfo)
	return true
}

func borrowInternalLeft(left, child *Node) bool {
	need := MinChildren - len(child.children)
	if need <= 0 || len(left.children)-MinChildren < need {
		return false
	}
	idx := len(left.children) - need
	child.children = append(append([]SharedHandle(nil), left.children[idx:]...), child.children...)
	child.infos = append(append([]TextInfo(nil), left.infos[idx:]...), child.infos...)
	left.children = left.children[:idx]
	left.infos = left.infos[:idx]
	return true
}

func borrowInternalRight(child, right *Node) bool {
	need := MinChildren - len(child.children)
	if need <= 0 || len(right.children)-MinChildren < need {
		return false
	}
	child.children = append(child.children, right.children[:need]...)
	child.infos = append(child.infos, right.infos[:need]...)
	right.children = right.children[need:]
	right.infos = right.infos[need:]
	return true
}

// collapseRoot unwinds a chain of single-child Internal nodes down to
// the first node with either zero/multiple children or a leaf (§4.3
// "handles a single-child Internal root by collapsing to that child").
func collapseRoot(h SharedHandle) SharedHandle {
	for {
		n := h.Node()
		if n.IsLeaf() || len(n.children) != 1 {
			return h
		}
		h = n.children[0]
	}
}

// assembleRoot turns the result of a root-level edit back into a single
// root handle, growing height by one (a fresh two-child root) if the
// edit overflowed, and collapsing a degenerate single-child chain
// otherwise.
func assembleRoot(res editResult) SharedHandle {
	if !res.split {
		return collapseRoot(res.left)
	}
	root := newInternal([]SharedHandle{res.left, res.right}, []TextInfo{res.leftInfo, res.rightInfo})
	return newHandle(root)
}

// chunkText splits s into pieces no larger than MaxBytes (a piece is
// only larger when it is one unsplittable grapheme cluster), each cut on
// a scalar and grapheme-cluster boundary via safeSplitPoint. When s is
// longer than MaxBytes, no piece is shorter than MinBytes apart from
// rare multi-byte rounding at a cut. FromString uses the pieces directly
// as leaves, so these cuts are real leaf boundaries (invariants 1 and 4);
// replace uses them to split a bulk insert into several edits.
func chunkText(s string) []string {
	if len(s) <= MaxBytes {
		if s == "" {
			return nil
		}
		return []string{s}
	}
	var chunks []string
	for len(s) > 0 {
		if len(s) <= MaxBytes {
			chunks = append(chunks, s)
			break
		}
		cut := MinBytes + MinBytes/2
		if len(s)-cut < MinBytes {
			// Halve the remainder so the final piece is not undersized.
			cut = len(s) / 2
		}
		for cut < len(s) && !utf8.RuneStart(s[cut]) {
			cut++
		}
		cut = safeSplitPoint(s, cut)
		if cut <= 0 || cut >= len(s) {
			cut = len(s)
		}
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	return chunks
}

// buildBalanced assembles a balanced subtree from an ordered list of
// leaves, fanning children in bottom-up at most MaxChildren at a time, in
// groups sized by evenGroupSizes — the same shape the teacher's
// buildFromChunks uses.
func buildBalanced(leaves []*Node) SharedHandle {
	if len(leaves) == 0 {
		return newHandle(newLeaf(""))
	}
	level := make([]SharedHandle, len(leaves))
	for i, leaf := range leaves {
		level[i] = newHandle(leaf)
	}
	for len(level) > 1 {
		var next []SharedHandle
		i := 0
		for _, size := range evenGroupSizes(len(level)) {
			children := append([]SharedHandle(nil), level[i:i+size]...)
			i += size
			infos := make([]TextInfo, len(children))
			for j, c := range children {
				infos[j] = c.Node().TotalInfo()
			}
			next = append(next, newHandle(newInternal(children, infos)))
		}
		level = next
	}
	return level[0]
}

// evenGroupSizes partitions n items into ceil(n/MaxChildren) groups whose
// sizes differ by at most one, so that no group (other than a lone root
// group, exempt from MinChildren anyway) ends up undersized the way a
// strict "chunk by MaxChildren" split would for a trailing remainder.
func evenGroupSizes(n int) []int {
	groups := (n + MaxChildren - 1) / MaxChildren
	base := n / groups
	extra := n % groups
	sizes := make([]int, groups)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}
