package rope

import "unicode/utf8"

// iterFrame is one level of an explicit-stack tree walk: the node at
// this level and the index of the next child still to visit.
type iterFrame struct {
	node     *Node
	childIdx int
}

// ChunkIterator yields each leaf's text, left to right, without
// materializing the whole rope. Grounded on the teacher's chunk-walking
// iterator, adapted from per-leaf sub-chunks to whole-leaf chunks since
// this package's leaves hold their text inline rather than as a list of
// smaller pieces.
type ChunkIterator struct {
	stack   []iterFrame
	started bool
	chunk   string
}

// Chunks returns an iterator over r's leaves' text, in order.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{stack: []iterFrame{{node: r.root.Node()}}}
}

// Next advances to the next chunk, returning false once exhausted.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.node.IsLeaf() {
			it.stack = it.stack[:len(it.stack)-1]
			if top.node.text == "" {
				continue
			}
			it.chunk = top.node.text
			return true
		}
		if top.childIdx >= len(top.node.children) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		child := top.node.children[top.childIdx].Node()
		top.childIdx++
		it.stack = append(it.stack, iterFrame{node: child})
	}
	return false
}

// Chunk returns the chunk Next most recently positioned on.
func (it *ChunkIterator) Chunk() string { return it.chunk }

// CharIterator yields one rune at a time.
type CharIterator struct {
	chunks  *ChunkIterator
	current string
	pos     int
	r       rune
}

// Chars returns a rune iterator over r's contents.
func (r Rope) Chars() *CharIterator {
	return &CharIterator{chunks: r.Chunks()}
}

func (it *CharIterator) Next() bool {
	for it.pos >= len(it.current) {
		if !it.chunks.Next() {
			return false
		}
		it.current = it.chunks.Chunk()
		it.pos = 0
	}
	r, size := utf8.DecodeRuneInString(it.current[it.pos:])
	it.r = r
	it.pos += size
	return true
}

func (it *CharIterator) Char() rune { return it.r }

// BytesIterator yields one byte at a time.
type BytesIterator struct {
	chunks  *ChunkIterator
	current string
	pos     int
	b       byte
}

// Bytes returns a byte iterator over r's contents.
func (r Rope) Bytes() *BytesIterator {
	return &BytesIterator{chunks: r.Chunks()}
}

func (it *BytesIterator) Next() bool {
	for it.pos >= len(it.current) {
		if !it.chunks.Next() {
			return false
		}
		it.current = it.chunks.Chunk()
		it.pos = 0
	}
	it.b = it.current[it.pos]
	it.pos++
	return true
}

func (it *BytesIterator) Byte() byte { return it.b }

// LinesIterator yields one line (including its terminator, if any) at
// a time, per the same counting rule as Rope.Line.
type LinesIterator struct {
	rope Rope
	next int
	total int
}

// Lines returns an iterator over r's lines.
func (r Rope) Lines() *LinesIterator {
	return &LinesIterator{rope: r, total: r.LenLines()}
}

func (it *LinesIterator) Next() (string, bool) {
	if it.next > it.total {
		return "", false
	}
	line, err := it.rope.Line(it.next)
	if err != nil {
		return "", false
	}
	it.next++
	return line, true
}
