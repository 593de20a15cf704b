package rope

import (
	"strings"
	"sync"
)

// bufferPool recycles the strings.Builder used by every text-materializing
// call (String, WriteTo's underlying chunk walk is unbuffered, Line,
// RopeSlice.String). A builder is borrowed, filled, read out as a string,
// and returned before the borrowing call returns — a pure allocation
// cache with no relationship to node lifetime, which stays ordinary Go
// GC (grounded on the teacher's pool.go StringBuilderPool; adapted from a
// manually-managed byte-slice wrapper to strings.Builder because nothing
// here needs the wrapper's raw-byte access).
var bufferPool = sync.Pool{
	New: func() any { return new(strings.Builder) },
}

func getBuilder() *strings.Builder {
	return bufferPool.Get().(*strings.Builder)
}

func putBuilder(b *strings.Builder) {
	b.Reset()
	bufferPool.Put(b)
}
