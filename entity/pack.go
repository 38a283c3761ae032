package entity

import (
	"errors"
	"fmt"

	"github.com/arloliu/pcproof/compress"
	"github.com/arloliu/pcproof/encoding"
	"github.com/arloliu/pcproof/errs"
	"github.com/arloliu/pcproof/format"
)

// Packed envelope layout:
//
//	[1 byte compression type][base-128 varint wire length][compressed wire bytes]
//
// The wire length bounds decompression: Unpack checks it against the
// configured limit, then never lets the payload expand past it.
var packedLengthCodec = encoding.Base128Codec{}

// Pack encodes l and compresses the result into a packed envelope.
func (e *Encoder) Pack(l List, compression format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCompression, err)
	}

	wire := e.Encode(l)
	payload, err := codec.Compress(wire)
	if err != nil {
		return nil, fmt.Errorf("%s compression: %w", compression, err)
	}

	out := make([]byte, 0, 1+packedLengthCodec.Size(uint64(len(wire)))+len(payload))
	out = append(out, byte(compression))
	out = packedLengthCodec.AppendUvarint(out, uint64(len(wire)))
	out = append(out, payload...)

	return out, nil
}

// Unpack decompresses a packed envelope and decodes the List inside it.
func (d *Decoder) Unpack(data []byte) (List, error) {
	if len(data) == 0 {
		return List{}, errs.ErrEmptyPacked
	}

	compression := format.CompressionType(data[0])
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return List{}, fmt.Errorf("%w: %w", errs.ErrInvalidCompression, err)
	}

	wireLen, n, err := packedLengthCodec.Uvarint(data[1:])
	if err != nil {
		return List{}, fmt.Errorf("packed length: %w", err)
	}

	if limit := d.cfg.maxUnpackedSize; wireLen > uint64(limit) { //nolint:gosec
		return List{}, fmt.Errorf("packed length %d, limit %d: %w", wireLen, limit, errs.ErrPayloadTooLarge)
	}

	wire, err := codec.DecompressSize(data[1+n:], int(wireLen)) //nolint:gosec
	switch {
	case errors.Is(err, errs.ErrDecompressedSize):
		return List{}, fmt.Errorf("%w: %w", errs.ErrPackedLengthMismatch, err)
	case err != nil:
		return List{}, fmt.Errorf("%w: %s decompression: %w", errs.ErrMalformedStream, compression, err)
	}

	return d.Decode(wire)
}

// Pack packs l with the default encoder.
func Pack(l List, compression format.CompressionType) ([]byte, error) {
	return defaultEncoder.Pack(l, compression)
}

// Unpack unpacks data with the default decoder.
func Unpack(data []byte) (List, error) {
	return defaultDecoder.Unpack(data)
}
