//go:build !(cgo && gozstd)

package compress

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/pcproof/errs"
)

// zstdDecoderPool pools zstd decoders; they run without allocations once warm.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// Compress compresses the input data using Zstandard compression.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses Zstd-compressed data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// A failed DecodeAll leaves the decoder reusable.
	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}

// DecompressSize streams a Zstd frame into a buffer bounded by size. Frames
// declaring a window or content size beyond that bound are rejected before
// their history is allocated.
func (c ZstdCompressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size == 0 {
			return nil, nil
		}

		return nil, sizeError("0", size)
	}

	decoder, err := zstd.NewReader(bytes.NewReader(data),
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxWindow(windowFor(size)),
		zstd.WithDecoderMaxMemory(windowFor(size)),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	defer decoder.Close()

	out, err := readExactly(decoder, size)
	switch {
	case err == nil, errors.Is(err, errs.ErrDecompressedSize):
		return out, err
	case errors.Is(err, zstd.ErrWindowSizeExceeded), errors.Is(err, zstd.ErrDecoderSizeExceeded):
		return nil, fmt.Errorf("frame needs more than %d bytes: %w", windowFor(size), errs.ErrDecompressedSize)
	default:
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
}

// windowFor returns the smallest power-of-two Zstd window above size, never
// below zstd.MinWindowSize. The encoder declares no larger window for a frame
// of size bytes.
func windowFor(size int) uint64 {
	window := uint64(zstd.MinWindowSize)
	for window <= uint64(size) && window < zstd.MaxWindowSize { //nolint:gosec
		window <<= 1
	}

	return window
}
