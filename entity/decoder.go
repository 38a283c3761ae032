package entity

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/arloliu/pcproof/encoding"
	"github.com/arloliu/pcproof/errs"
	"github.com/arloliu/pcproof/section"
)

// Decoder decodes entity streams into Lists.
//
// The decode loop reads varint(type), varint(length) and length payload bytes
// per record, and stops right after the sentinel. Every read is checked
// against the bytes remaining, so decoding a finite input always terminates,
// either with a complete List or with an error wrapping errs.ErrMalformedStream.
// No partial List is ever returned.
//
// A Decoder only holds immutable configuration and is safe for concurrent use.
type Decoder struct {
	cfg CodecConfig
}

var defaultDecoder = &Decoder{cfg: defaultCodecConfig()}

// NewDecoder creates a Decoder.
//
// Parameters:
//   - opts: WithVarint, WithCompactSize, WithMaxEntities, WithMaxPayloadSize
//
// Returns:
//   - *Decoder: The configured decoder
//   - error: Invalid option value
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg, err := newCodecConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// Config returns the decoder configuration.
func (d *Decoder) Config() CodecConfig {
	return d.cfg
}

// Decode decodes a buffer holding an entity stream at offset 0.
// Bytes after the sentinel are ignored.
func (d *Decoder) Decode(data []byte) (List, error) {
	list, _, err := d.DecodePrefix(data)
	return list, err
}

// DecodePrefix decodes the entity stream at the start of data and also
// returns the number of bytes it occupied, sentinel included.
func (d *Decoder) DecodePrefix(data []byte) (List, int, error) {
	r := encoding.NewByteReaderWith(data, d.cfg.varint)

	list, err := d.DecodeFrom(r)
	if err != nil {
		return List{}, 0, err
	}

	return list, r.Pos(), nil
}

// DecodeHex decodes a hex-encoded entity stream. Surrounding whitespace is ignored.
func (d *Decoder) DecodeHex(s string) (List, error) {
	data, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return List{}, fmt.Errorf("%w: %w", errs.ErrInvalidHex, err)
	}

	return d.Decode(data)
}

// DecodeRawBlock decodes the entity stream found at section.StartOfPCP in a
// full raw block. The block header before that offset is not interpreted.
func (d *Decoder) DecodeRawBlock(raw []byte) (List, error) {
	if _, err := section.ProofRegion(raw); err != nil {
		return List{}, err
	}

	return d.DecodeBlockReader(encoding.NewByteReaderWith(raw, d.cfg.varint))
}

// DecodeBlockReader moves r to section.StartOfPCP and decodes from there.
// On success r is left just past the sentinel, at the start of the block's
// transactions. On failure r is moved back to where the caller had it.
func (d *Decoder) DecodeBlockReader(r encoding.Reader) (List, error) {
	start := r.Pos()
	if err := r.SetPos(section.StartOfPCP); err != nil {
		return List{}, fmt.Errorf("%w: %w", errs.ErrBlockTooShort, err)
	}

	list, err := d.DecodeFrom(r)
	if err != nil {
		_ = r.SetPos(start)
		return List{}, err
	}

	return list, nil
}

// DecodeFrom decodes an entity stream starting at the current cursor of r.
//
// Varints are read in the Decoder's scheme; the scheme r was created with
// does not matter.
//
// On success the cursor is left just past the sentinel. On failure it is
// restored to where decoding started.
func (d *Decoder) DecodeFrom(r encoding.Reader) (List, error) {
	start := r.Pos()

	entities, err := d.readEntities(r)
	if err != nil {
		_ = r.SetPos(start)
		return List{}, err
	}

	return List{entities: entities}, nil
}

func (d *Decoder) readEntities(r encoding.Reader) ([]Entity, error) {
	entities := make([]Entity, 0, initialEntityCapacity)

	for {
		index := len(entities)
		if d.cfg.maxEntities > 0 && index >= d.cfg.maxEntities {
			return nil, fmt.Errorf("entity %d: limit %d: %w", index, d.cfg.maxEntities, errs.ErrTooManyEntities)
		}

		offset := r.Pos()

		typ, err := encoding.ReadUvarint(r, d.cfg.varint)
		if err != nil {
			return nil, fmt.Errorf("entity %d type: %w", index, err)
		}

		length, err := encoding.ReadUvarint(r, d.cfg.varint)
		if err != nil {
			return nil, fmt.Errorf("entity %d length: %w", index, err)
		}

		if d.cfg.maxPayloadSize > 0 && length > uint64(d.cfg.maxPayloadSize) {
			return nil, fmt.Errorf("entity %d at offset %d declares %d bytes, limit %d: %w",
				index, offset, length, d.cfg.maxPayloadSize, errs.ErrPayloadTooLarge)
		}

		remaining := r.Remaining()
		if length > uint64(remaining) { //nolint:gosec
			return nil, fmt.Errorf("entity %d at offset %d declares %d bytes, %d remaining: %w",
				index, offset, length, remaining, errs.ErrTruncatedPayload)
		}

		payload, err := r.Read(int(length)) //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("entity %d payload: %w", index, err)
		}

		// Each record must consume input, otherwise a misbehaving Reader could
		// keep the loop from reaching the end of the buffer.
		if r.Pos() <= offset {
			return nil, fmt.Errorf("entity %d at offset %d: cursor did not advance: %w",
				index, offset, errs.ErrMalformedStream)
		}

		e := Entity{typ: typ, data: cloneBytes(payload)}
		entities = append(entities, e)

		if e.IsSentinel() {
			return entities, nil
		}
	}
}

// Decode decodes an entity stream at offset 0 of data with the default settings.
func Decode(data []byte) (List, error) {
	return defaultDecoder.Decode(data)
}

// DecodePrefix decodes an entity stream with the default settings and returns
// the number of bytes it occupied.
func DecodePrefix(data []byte) (List, int, error) {
	return defaultDecoder.DecodePrefix(data)
}

// DecodeHex decodes a hex-encoded entity stream with the default settings.
func DecodeHex(s string) (List, error) {
	return defaultDecoder.DecodeHex(s)
}

// DecodeRawBlock decodes the proof of a raw block with the default settings.
func DecodeRawBlock(raw []byte) (List, error) {
	return defaultDecoder.DecodeRawBlock(raw)
}

// DecodeBlockReader seeks r to the proof offset and decodes with the default settings.
func DecodeBlockReader(r encoding.Reader) (List, error) {
	return defaultDecoder.DecodeBlockReader(r)
}

// DecodeFrom decodes from the current cursor of r with the default settings.
func DecodeFrom(r encoding.Reader) (List, error) {
	return defaultDecoder.DecodeFrom(r)
}
