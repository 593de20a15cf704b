package rope

import "strings"

// Builder provides efficient incremental construction of a Rope: it
// buffers writes in a plain strings.Builder and only pays the cost of
// slicing into leaves and fanning out the tree once, at Build (grounded
// on the teacher's Builder, adapted from its chunk-list buffering to
// this package's leaf-sized-string chunking).
type Builder struct {
	buf strings.Builder
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WriteString appends s to the builder's pending content.
func (b *Builder) WriteString(s string) (int, error) {
	return b.buf.WriteString(s)
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	return b.buf.WriteByte(c)
}

// WriteRune appends a single rune.
func (b *Builder) WriteRune(r rune) (int, error) {
	return b.buf.WriteRune(r)
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int { return b.buf.Len() }

// Reset clears the builder for reuse.
func (b *Builder) Reset() { b.buf.Reset() }

// Build consumes the builder's buffered content and returns the
// resulting Rope. The builder is left empty.
func (b *Builder) Build() Rope {
	s := b.buf.String()
	b.buf.Reset()
	return FromString(s)
}
