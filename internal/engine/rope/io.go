package rope

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// FromReader reads all of src and returns the resulting Rope. Bytes are
// fed through a Builder in bufio-sized chunks; a partial UTF-8 scalar
// split across two reads is carried over to the next chunk rather than
// rejected. ErrInvalidUTF8 is returned if the stream's bytes can never
// complete into valid UTF-8.
func FromReader(src io.Reader) (Rope, error) {
	r := bufio.NewReaderSize(src, 64*1024)
	b := NewBuilder()
	var pending []byte
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			complete, verr := validUTF8Prefix(pending)
			if verr != nil {
				return Rope{}, opErr("FromReader", nil, verr)
			}
			if _, werr := b.Write(pending[:complete]); werr != nil {
				return Rope{}, werr
			}
			pending = append([]byte(nil), pending[complete:]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Rope{}, err
		}
	}
	if len(pending) > 0 {
		// Anything still pending at EOF started a scalar that never
		// finished — validUTF8Prefix already consumed every complete
		// (valid or invalid) one as it went.
		return Rope{}, opErr("FromReader", nil, ErrInvalidUTF8)
	}
	return b.Build(), nil
}

// validUTF8Prefix scans buf from the front and returns the length of
// the longest prefix made of complete, valid UTF-8 scalars. It stops
// short of the end when the trailing bytes are merely an in-progress
// multi-byte scalar that could still complete once more bytes arrive
// (utf8.FullRune reports this), and returns ErrInvalidUTF8 the moment
// it finds a scalar that is complete but not valid — FullRune alone
// can't make that distinction, since it reports an invalid encoding as
// "full" too (it would decode as a width-1 error rune regardless of
// what follows).
func validUTF8Prefix(buf []byte) (int, error) {
	i := 0
	for i < len(buf) {
		if !utf8.FullRune(buf[i:]) {
			break
		}
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size == 1 {
			return i, ErrInvalidUTF8
		}
		i += size
	}
	return i, nil
}

// WriteTo writes r's full contents to dst, chunk by chunk, without
// materializing the whole rope as one string.
func (r Rope) WriteTo(dst io.Writer) (int64, error) {
	var total int64
	it := r.Chunks()
	for it.Next() {
		n, err := io.WriteString(dst, it.Chunk())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
