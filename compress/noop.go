package compress

import "strconv"

// NoOpCompressor passes data through unchanged. It backs format.CompressionNone.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data as-is. The result shares memory with the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data as-is. The result shares memory with the input.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressSize returns data as-is if it is exactly size bytes long.
func (c NoOpCompressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) != size {
		return nil, sizeError(strconv.Itoa(len(data)), size)
	}

	return data, nil
}
