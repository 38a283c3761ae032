//go:build cgo && gozstd

package compress

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/pcproof/errs"
)

// Compress compresses the input data using libzstd at level 3.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses Zstd-compressed data using libzstd.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}

// DecompressSize streams a Zstd frame through libzstd into a buffer bounded
// by size.
func (c ZstdCompressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size == 0 {
			return nil, nil
		}

		return nil, sizeError("0", size)
	}

	zr := gozstd.NewReader(bytes.NewReader(data))
	defer zr.Release()

	out, err := readExactly(zr, size)
	if err != nil && !errors.Is(err, errs.ErrDecompressedSize) {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, err
}
