package encoding

import (
	"fmt"

	"github.com/arloliu/pcproof/errs"
)

// Reader is a seekable cursor over an encoded byte stream.
//
// Every read either consumes exactly what it returns or fails without moving
// the cursor, so a decoder built on it terminates once the input is exhausted.
type Reader interface {
	// Read returns the next n bytes and advances the cursor past them.
	// The returned slice may alias the underlying buffer.
	Read(n int) ([]byte, error)
	// ReadVarint reads one variable-length non-negative integer.
	ReadVarint() (uint64, error)
	// Pos returns the current cursor offset from the start of the buffer.
	Pos() int
	// SetPos moves the cursor to an absolute offset.
	SetPos(pos int) error
	// Remaining returns the number of bytes after the cursor.
	Remaining() int
}

// varintSchemer is implemented by readers and writers that report the varint
// scheme their ReadVarint / WriteVarint use.
type varintSchemer interface {
	VarintCodec() VarintCodec
}

// ReadUvarint reads one integer from r in the scheme of codec, regardless of
// the scheme r itself is configured with.
//
// Readers that report a matching scheme through VarintCodec() are read with
// ReadVarint. Any other Reader is read by taking up to MaxVarintLen bytes,
// decoding them with codec and moving the cursor back to the end of the
// integer. On failure the cursor is left where it was.
func ReadUvarint(r Reader, codec VarintCodec) (uint64, error) {
	if s, ok := r.(varintSchemer); ok && s.VarintCodec().Type() == codec.Type() {
		return r.ReadVarint()
	}

	start := r.Pos()
	window, err := r.Read(min(MaxVarintLen, r.Remaining()))
	if err != nil {
		return 0, err
	}

	v, n, err := codec.Uvarint(window)
	if err != nil {
		_ = r.SetPos(start)
		return 0, fmt.Errorf("varint at offset %d: %w", start, err)
	}
	if err := r.SetPos(start + n); err != nil {
		return 0, err
	}

	return v, nil
}

// ByteReader is the in-memory Reader implementation.
//
// Note: ByteReader is NOT thread-safe; each instance owns its cursor.
type ByteReader struct {
	data   []byte
	pos    int
	varint VarintCodec
}

var _ Reader = (*ByteReader)(nil)

// NewByteReader creates a reader over data using the default varint scheme.
func NewByteReader(data []byte) *ByteReader {
	return NewByteReaderWith(data, DefaultVarintCodec())
}

// NewByteReaderWith creates a reader over data using the given varint scheme.
func NewByteReaderWith(data []byte, codec VarintCodec) *ByteReader {
	if codec == nil {
		codec = DefaultVarintCodec()
	}

	return &ByteReader{data: data, varint: codec}
}

// Read returns a view of the next n bytes. Callers that keep the bytes past the
// lifetime of the underlying buffer must copy them.
func (r *ByteReader) Read(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, fmt.Errorf("read %d bytes at offset %d with %d remaining: %w",
			n, r.pos, r.Remaining(), errs.ErrTruncatedPayload)
	}

	out := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n

	return out, nil
}

func (r *ByteReader) ReadVarint() (uint64, error) {
	v, n, err := r.varint.Uvarint(r.data[r.pos:])
	if err != nil {
		return 0, fmt.Errorf("varint at offset %d: %w", r.pos, err)
	}
	r.pos += n

	return v, nil
}

func (r *ByteReader) Pos() int {
	return r.pos
}

// SetPos moves the cursor. Valid positions are 0 through Len inclusive.
func (r *ByteReader) SetPos(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return fmt.Errorf("position %d outside [0, %d]: %w", pos, len(r.data), errs.ErrInvalidPosition)
	}
	r.pos = pos

	return nil
}

func (r *ByteReader) Remaining() int {
	return len(r.data) - r.pos
}

// Len returns the total length of the underlying buffer.
func (r *ByteReader) Len() int {
	return len(r.data)
}

// VarintCodec returns the scheme used by ReadVarint.
func (r *ByteReader) VarintCodec() VarintCodec {
	return r.varint
}
