package compress

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/arloliu/pcproof/errs"
	"github.com/arloliu/pcproof/format"
)

// Compressor compresses an encoded entity stream.
//
// Memory management:
//   - Returned slice is owned by the caller, except for NoOpCompressor which returns its input
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Decompress returns an error if the data is corrupted or was produced by a
// different algorithm.
//
// Thread Safety: Decompressor implementations must be safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor decompresses data whose decompressed size is known in
// advance, such as a packed proof carrying its wire length.
//
// DecompressSize never produces or buffers more than size bytes of output.
// Returns errs.ErrDecompressedSize if data decompresses to anything other than
// exactly size bytes.
type SizedDecompressor interface {
	DecompressSize(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
	SizedDecompressor
}

func sizeError(got string, size int) error {
	return fmt.Errorf("got %s bytes, expected %d: %w", got, size, errs.ErrDecompressedSize)
}

// CompressionStats describes one compression operation.
type CompressionStats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, or 0 for empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// readExactly reads a decompression stream that must yield exactly size bytes.
// At most size+1 bytes are ever buffered.
func readExactly(r io.Reader, size int) ([]byte, error) {
	buf := make([]byte, size+1)
	n, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
		return nil, sizeError("more than "+strconv.Itoa(size), size)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if n != size {
			return nil, sizeError(strconv.Itoa(n), size)
		}

		return buf[:size:size], nil
	default:
		return nil, err
	}
}
