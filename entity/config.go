package entity

import (
	"fmt"

	"github.com/arloliu/pcproof/encoding"
	"github.com/arloliu/pcproof/errs"
	"github.com/arloliu/pcproof/format"
	"github.com/arloliu/pcproof/internal/options"
)

// initialEntityCapacity covers the usual proof without regrowing.
const initialEntityCapacity = 8

// DefaultMaxUnpackedSize caps the wire length a packed envelope may declare.
// Real proofs are a few kilobytes.
const DefaultMaxUnpackedSize = 16 << 20

// CodecConfig holds the settings shared by Decoder and Encoder.
//
// Limits only apply to decoding.
type CodecConfig struct {
	varint          encoding.VarintCodec
	maxEntities     int
	maxPayloadSize  int
	maxUnpackedSize int
}

func defaultCodecConfig() CodecConfig {
	return CodecConfig{
		varint:          encoding.DefaultVarintCodec(),
		maxUnpackedSize: DefaultMaxUnpackedSize,
	}
}

// MaxUnpackedSize returns the largest wire length Unpack accepts.
func (c *CodecConfig) MaxUnpackedSize() int {
	return c.maxUnpackedSize
}

// VarintType returns the configured varint scheme.
func (c *CodecConfig) VarintType() format.VarintType {
	return c.varint.Type()
}

func (c *CodecConfig) setVarint(varintType format.VarintType) error {
	codec, err := encoding.GetVarintCodec(varintType)
	if err != nil {
		return err
	}
	c.varint = codec

	return nil
}

func (c *CodecConfig) setMaxEntities(n int) error {
	if n <= 0 {
		return fmt.Errorf("max entities %d: %w", n, errs.ErrInvalidLimit)
	}
	c.maxEntities = n

	return nil
}

func (c *CodecConfig) setMaxPayloadSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("max payload size %d: %w", n, errs.ErrInvalidLimit)
	}
	c.maxPayloadSize = n

	return nil
}

func (c *CodecConfig) setMaxUnpackedSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("max unpacked size %d: %w", n, errs.ErrInvalidLimit)
	}
	c.maxUnpackedSize = n

	return nil
}

// Option represents a functional option for configuring a Decoder or Encoder.
type Option = options.Option[*CodecConfig]

// WithVarint selects the varint scheme used for type and length fields.
// Default is format.VarintBase128.
func WithVarint(varintType format.VarintType) Option {
	return options.New(func(c *CodecConfig) error {
		return c.setVarint(varintType)
	})
}

// WithCompactSize selects the Bitcoin-style CompactSize varint scheme.
func WithCompactSize() Option {
	return WithVarint(format.VarintCompactSize)
}

// WithMaxEntities caps the number of entities a Decoder accepts, sentinel included.
// Default is no limit beyond the input length.
func WithMaxEntities(n int) Option {
	return options.New(func(c *CodecConfig) error {
		return c.setMaxEntities(n)
	})
}

// WithMaxPayloadSize caps the declared payload length of any single entity.
// Default is no limit beyond the input length.
func WithMaxPayloadSize(n int) Option {
	return options.New(func(c *CodecConfig) error {
		return c.setMaxPayloadSize(n)
	})
}

// WithMaxUnpackedSize caps the wire length a packed envelope may declare.
// Unpack rejects larger envelopes before decompressing anything.
// Default is DefaultMaxUnpackedSize.
func WithMaxUnpackedSize(n int) Option {
	return options.New(func(c *CodecConfig) error {
		return c.setMaxUnpackedSize(n)
	})
}

func newCodecConfig(opts ...Option) (CodecConfig, error) {
	cfg := defaultCodecConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return CodecConfig{}, err
	}

	return cfg, nil
}
