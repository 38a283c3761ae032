package compress

import (
	"errors"
	"strconv"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances, which keep a hash table
// that is expensive to allocate.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with LZ4 block format.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data as a single LZ4 block. Returns nil for empty input.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// CompressBlock reports incompressible input as zero bytes written.
		return literalBlock(data), nil
	}

	return dst[:n], nil
}

// literalBlock encodes data as a single literal-only LZ4 sequence.
func literalBlock(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/255+2)

	litLen := len(data)
	if litLen < 15 {
		out = append(out, byte(litLen<<4))
	} else {
		out = append(out, 0xf0)
		rest := litLen - 15
		for rest >= 255 {
			out = append(out, 0xff)
			rest -= 255
		}
		out = append(out, byte(rest))
	}

	return append(out, data...)
}

// Decompress decompresses an LZ4 block.
//
// The block format does not record the decompressed size, so the buffer starts
// at 4x the input and doubles on ErrInvalidSourceShortBuffer, up to 128MB.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}

// DecompressSize decompresses an LZ4 block into a buffer of exactly size
// bytes. Output that would overflow the buffer is rejected.
func (c LZ4Compressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size == 0 {
			return nil, nil
		}

		return nil, sizeError("0", size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, sizeError("more than "+strconv.Itoa(size), size)
		}

		return nil, err
	}
	if n != size {
		return nil, sizeError(strconv.Itoa(n), size)
	}

	return buf, nil
}
