// Package rope provides a persistent B-tree rope for large UTF-8 text.
//
// A Rope is a handle to an immutable-until-uniquely-owned tree of Nodes.
// Leaves hold contiguous UTF-8 bytes; internal nodes hold a child table of
// (TextInfo, SharedHandle) pairs summarizing their subtrees. Cloning a Rope
// is an O(1) atomic increment; mutating a clone never disturbs its siblings
// because every mutating descent clones any node it finds shared before
// touching it (copy-on-write).
//
// All public indices are character (Unicode scalar) indices unless a
// function name says otherwise (the Byte* family). Indices are validated
// before any tree descent begins, so a rejected call never partially
// mutates the rope.
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r, _ = r.Insert(5, ",")         // "hello, world"
//	r, _ = r.Remove(0, 7)           // "world"
//	text := r.String()              // "world"
//
// Package rope does no logging and imports no logging library; it is a
// synchronous data structure with no ambient state of its own.
package rope
