package encoding

import (
	"github.com/arloliu/pcproof/internal/pool"
)

// Writer accumulates an encoded byte stream.
type Writer interface {
	// Write appends raw bytes.
	Write(p []byte)
	// WriteVarint appends one variable-length non-negative integer.
	WriteVarint(v uint64)
	// Bytes returns the accumulated stream.
	Bytes() []byte
}

// WriteUvarint appends v to w in the scheme of codec, regardless of the scheme
// w itself is configured with. Writers reporting a matching scheme through
// VarintCodec() are written with WriteVarint.
func WriteUvarint(w Writer, codec VarintCodec, v uint64) {
	if s, ok := w.(varintSchemer); ok && s.VarintCodec().Type() == codec.Type() {
		w.WriteVarint(v)
		return
	}

	var scratch [MaxVarintLen]byte
	w.Write(codec.AppendUvarint(scratch[:0], v))
}

// ByteWriter is a Writer backed by a pooled byte buffer.
//
// The writer uses a pooled buffer with amortized growth, so callers must call
// Finish or Release when done with it.
//
// Note: ByteWriter is NOT thread-safe.
type ByteWriter struct {
	buf    *pool.ByteBuffer
	varint VarintCodec
}

var _ Writer = (*ByteWriter)(nil)

// NewByteWriter creates a writer using the default varint scheme.
func NewByteWriter() *ByteWriter {
	return NewByteWriterWith(DefaultVarintCodec())
}

// NewByteWriterWith creates a writer using the given varint scheme.
func NewByteWriterWith(codec VarintCodec) *ByteWriter {
	if codec == nil {
		codec = DefaultVarintCodec()
	}

	return &ByteWriter{
		buf:    pool.GetEncodeBuffer(),
		varint: codec,
	}
}

// Grow ensures room for n more bytes.
func (w *ByteWriter) Grow(n int) {
	w.buf.Grow(n)
}

func (w *ByteWriter) Write(p []byte) {
	w.buf.MustWrite(p)
}

func (w *ByteWriter) WriteVarint(v uint64) {
	w.buf.B = w.varint.AppendUvarint(w.buf.B, v)
}

// Bytes returns a view of the accumulated stream. The slice is only valid until
// the next write or until the writer is released.
func (w *ByteWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *ByteWriter) Len() int {
	return w.buf.Len()
}

// Finish returns a copy of the accumulated stream and releases the writer.
func (w *ByteWriter) Finish() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	w.Release()

	return out
}

// Release returns the buffer to the pool. The writer must not be used afterwards.
func (w *ByteWriter) Release() {
	if w.buf != nil {
		pool.PutEncodeBuffer(w.buf)
		w.buf = nil
	}
}

// VarintCodec returns the scheme used by WriteVarint.
func (w *ByteWriter) VarintCodec() VarintCodec {
	return w.varint
}
