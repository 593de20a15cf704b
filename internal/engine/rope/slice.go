package rope

// RopeSlice is an immutable, zero-copy view into a character range of a
// Rope. It holds a pointer to the deepest node that still fully contains
// the range, plus the byte/char/line offsets of the range's edges within
// that node, so building a slice costs one descent and no text copying
// (grounded on original_source/src/slice.rs's RopeSlice).
type RopeSlice struct {
	node                         *Node
	startByte, endByte           int
	startChar, endChar           int
	startLineBreak, endLineBreak int
}

// Slice returns a view of r's characters in [start, end).
func (r Rope) Slice(start, end int) (RopeSlice, error) {
	total := r.LenChars()
	if start < 0 || end > total || start > end {
		return RopeSlice{}, opErr("Slice", [2]int{start, end}, ErrOutOfBounds)
	}
	node := r.root.Node()
	localStart, localEnd := start, end
outer:
	for !node.IsLeaf() {
		base := 0
		for i, info := range node.infos {
			if localStart >= base && localEnd <= base+info.Chars {
				localStart -= base
				localEnd -= base
				node = node.children[i].Node()
				continue outer
			}
			base += info.Chars
		}
		break
	}
	startLine := byteToLine(node, charToByte(node, localStart))
	endLine := byteToLine(node, charToByte(node, localEnd))
	return RopeSlice{
		node:           node,
		startByte:      charToByte(node, localStart),
		endByte:        charToByte(node, localEnd),
		startChar:      localStart,
		endChar:        localEnd,
		startLineBreak: startLine,
		endLineBreak:   endLine,
	}, nil
}

func (s RopeSlice) LenBytes() int { return s.endByte - s.startByte }
func (s RopeSlice) LenChars() int { return s.endChar - s.startChar }
func (s RopeSlice) LenLines() int { return s.endLineBreak - s.startLineBreak + 1 }

// String materializes the slice's text.
func (s RopeSlice) String() string {
	return sliceBytes(s.node, s.startByte, s.endByte)
}

// ByteToChar and CharToByte translate indices local to the slice.
func (s RopeSlice) ByteToChar(byteIdx int) (int, error) {
	if byteIdx < 0 || byteIdx > s.LenBytes() {
		return 0, opErr("RopeSlice.ByteToChar", byteIdx, ErrOutOfBounds)
	}
	return byteToChar(s.node, s.startByte+byteIdx) - s.startChar, nil
}

func (s RopeSlice) CharToByte(charIdx int) (int, error) {
	if charIdx < 0 || charIdx > s.LenChars() {
		return 0, opErr("RopeSlice.CharToByte", charIdx, ErrOutOfBounds)
	}
	return charToByte(s.node, s.startChar+charIdx) - s.startByte, nil
}

// Rope copies the slice's content out into an independent Rope.
func (s RopeSlice) Rope() Rope {
	return FromString(s.String())
}
