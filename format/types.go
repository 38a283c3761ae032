package format

type (
	VarintType      uint8
	CompressionType uint8
)

const (
	VarintBase128     VarintType = 0x1 // VarintBase128 is little-endian base-128 with continuation bits.
	VarintCompactSize VarintType = 0x2 // VarintCompactSize is the Bitcoin-style 0xfd/0xfe/0xff prefixed size.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (v VarintType) String() string {
	switch v {
	case VarintBase128:
		return "Base128"
	case VarintCompactSize:
		return "CompactSize"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseVarintType parses a case-sensitive lowercase name ("base128", "compactsize").
func ParseVarintType(name string) (VarintType, bool) {
	switch name {
	case "base128", "leb128":
		return VarintBase128, true
	case "compactsize", "compact":
		return VarintCompactSize, true
	default:
		return 0, false
	}
}

// ParseCompressionType parses a lowercase compression name ("none", "zstd", "s2", "lz4").
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
