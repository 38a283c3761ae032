package entity

import (
	"encoding/hex"

	"github.com/arloliu/pcproof/encoding"
)

// Encoder serializes Lists into the entity wire format.
//
// Each entity is written as varint(type) varint(len(data)) data, in order.
// The sentinel is written like any other entity; Lists always end with one,
// so the Encoder never appends it. Encoding never mutates the List.
//
// An Encoder only holds immutable configuration and is safe for concurrent use.
type Encoder struct {
	cfg CodecConfig
}

var defaultEncoder = &Encoder{cfg: defaultCodecConfig()}

// NewEncoder creates an Encoder. Only WithVarint / WithCompactSize affect encoding.
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg, err := newCodecConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// Config returns the encoder configuration.
func (e *Encoder) Config() CodecConfig {
	return e.cfg
}

// Encode returns the wire encoding of l in a newly allocated slice.
func (e *Encoder) Encode(l List) []byte {
	w := encoding.NewByteWriterWith(e.cfg.varint)
	w.Grow(e.Size(l))
	e.EncodeTo(l, w)

	return w.Finish()
}

// EncodeHex returns the wire encoding of l as lowercase hex.
func (e *Encoder) EncodeHex(l List) string {
	return hex.EncodeToString(e.Encode(l))
}

// EncodeTo appends the wire encoding of l to w. Varints are written in the
// Encoder's scheme, so the appended bytes always equal Encode(l) and their
// length equals Size(l).
func (e *Encoder) EncodeTo(l List, w encoding.Writer) {
	for _, ent := range l.entities {
		encoding.WriteUvarint(w, e.cfg.varint, ent.typ)
		encoding.WriteUvarint(w, e.cfg.varint, uint64(len(ent.data)))
		w.Write(ent.data)
	}
}

// Size returns the exact number of bytes Encode produces for l.
func (e *Encoder) Size(l List) int {
	size := 0
	for _, ent := range l.entities {
		size += e.cfg.varint.Size(ent.typ)
		size += e.cfg.varint.Size(uint64(len(ent.data)))
		size += len(ent.data)
	}

	return size
}

// Encode returns the default wire encoding of l.
func Encode(l List) []byte {
	return defaultEncoder.Encode(l)
}

// EncodeHex returns the default wire encoding of l as lowercase hex.
func EncodeHex(l List) string {
	return defaultEncoder.EncodeHex(l)
}
