package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/pcproof/endian"
	"github.com/arloliu/pcproof/errs"
	"github.com/arloliu/pcproof/format"
)

// MaxVarintLen is the maximum encoded size of a uint64 in any supported scheme.
const MaxVarintLen = binary.MaxVarintLen64

// VarintCodec encodes and decodes non-negative integers in one variable-length scheme.
//
// Implementations are stateless and safe for concurrent use.
type VarintCodec interface {
	// Type returns the scheme identifier.
	Type() format.VarintType
	// AppendUvarint appends the encoding of v to dst and returns the extended slice.
	AppendUvarint(dst []byte, v uint64) []byte
	// Uvarint decodes one integer from the start of src and returns it together
	// with the number of bytes consumed.
	//
	// Returns errs.ErrTruncatedVarint if src ends before the integer does, and
	// errs.ErrVarintOverflow if the value does not fit in 64 bits.
	Uvarint(src []byte) (uint64, int, error)
	// Size returns the number of bytes AppendUvarint would write for v.
	Size(v uint64) int
}

// Base128Codec is the little-endian base-128 scheme: seven value bits per
// byte, continuation bit set on every byte except the last.
type Base128Codec struct{}

var _ VarintCodec = Base128Codec{}

func (Base128Codec) Type() format.VarintType {
	return format.VarintBase128
}

func (Base128Codec) AppendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

func (Base128Codec) Uvarint(src []byte) (uint64, int, error) {
	v, n := binary.Uvarint(src)
	switch {
	case n == 0:
		return 0, 0, errs.ErrTruncatedVarint
	case n < 0:
		return 0, 0, errs.ErrVarintOverflow
	}

	return v, n, nil
}

func (Base128Codec) Size(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}

// CompactSize markers.
const (
	compactSize16 = 0xfd
	compactSize32 = 0xfe
	compactSize64 = 0xff
)

// CompactSizeCodec is the Bitcoin-style size prefix: values below 0xfd take a
// single byte, larger ones a marker byte followed by a little-endian uint16,
// uint32 or uint64.
//
// Non-minimal encodings are accepted on decode; AppendUvarint always writes
// the minimal form.
type CompactSizeCodec struct {
	engine endian.EndianEngine
}

var _ VarintCodec = CompactSizeCodec{}

// NewCompactSizeCodec creates a CompactSize codec.
func NewCompactSizeCodec() CompactSizeCodec {
	return CompactSizeCodec{engine: endian.GetLittleEndianEngine()}
}

func (c CompactSizeCodec) Type() format.VarintType {
	return format.VarintCompactSize
}

func (c CompactSizeCodec) AppendUvarint(dst []byte, v uint64) []byte {
	switch {
	case v < compactSize16:
		return append(dst, byte(v))
	case v <= 0xffff:
		return c.engine.AppendUint16(append(dst, compactSize16), uint16(v))
	case v <= 0xffffffff:
		return c.engine.AppendUint32(append(dst, compactSize32), uint32(v))
	default:
		return c.engine.AppendUint64(append(dst, compactSize64), v)
	}
}

func (c CompactSizeCodec) Uvarint(src []byte) (uint64, int, error) {
	if len(src) == 0 {
		return 0, 0, errs.ErrTruncatedVarint
	}

	var width int
	switch src[0] {
	case compactSize16:
		width = 2
	case compactSize32:
		width = 4
	case compactSize64:
		width = 8
	default:
		return uint64(src[0]), 1, nil
	}

	if len(src) < 1+width {
		return 0, 0, errs.ErrTruncatedVarint
	}

	tail := src[1 : 1+width]
	switch width {
	case 2:
		return uint64(c.engine.Uint16(tail)), 3, nil
	case 4:
		return uint64(c.engine.Uint32(tail)), 5, nil
	default:
		return c.engine.Uint64(tail), 9, nil
	}
}

func (c CompactSizeCodec) Size(v uint64) int {
	switch {
	case v < compactSize16:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

var builtinVarintCodecs = map[format.VarintType]VarintCodec{
	format.VarintBase128:     Base128Codec{},
	format.VarintCompactSize: NewCompactSizeCodec(),
}

// GetVarintCodec returns the built-in codec for the given scheme.
func GetVarintCodec(varintType format.VarintType) (VarintCodec, error) {
	if codec, ok := builtinVarintCodecs[varintType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidVarintType, varintType)
}

// DefaultVarintCodec returns the codec used when no scheme is configured.
func DefaultVarintCodec() VarintCodec {
	return Base128Codec{}
}
