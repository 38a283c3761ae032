package entity

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/arloliu/pcproof/encoding"
	"github.com/arloliu/pcproof/errs"
	"github.com/arloliu/pcproof/format"
	"github.com/arloliu/pcproof/section"
	"github.com/stretchr/testify/require"
)

func TestDecode_Example(t *testing.T) {
	l, err := Decode(exampleStream)
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())

	require.Equal(t, uint64(1), l.At(0).Type())
	require.Equal(t, []byte{0xaa, 0xbb}, l.At(0).Data())
	require.True(t, l.At(1).IsSentinel())
	require.True(t, l.Equal(exampleList(t)))
}

func TestDecode_MinimalInput(t *testing.T) {
	l, err := Decode([]byte{0x00, 0x00})
	require.NoError(t, err)
	require.Equal(t, 1, l.Len())
	require.True(t, l.At(0).IsSentinel())
	require.Empty(t, l.At(0).Data())
}

func TestDecode_SentinelTermination(t *testing.T) {
	t.Run("Trailing bytes ignored", func(t *testing.T) {
		data := append(append([]byte{}, exampleStream...), 0x05, 0xff, 0xff, 0xff)

		l, n, err := DecodePrefix(data)
		require.NoError(t, err)
		require.Equal(t, len(exampleStream), n)
		require.True(t, l.Equal(exampleList(t)))
	})

	t.Run("Stops at first sentinel", func(t *testing.T) {
		data := []byte{0x00, 0x00, 0x01, 0x01, 0xaa, 0x00, 0x00}

		l, n, err := DecodePrefix(data)
		require.NoError(t, err)
		require.Equal(t, 2, n)
		require.Equal(t, 1, l.Len())
	})

	t.Run("Type zero with payload is a record", func(t *testing.T) {
		data := []byte{0x00, 0x01, 0xff, 0x00, 0x00}

		l, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, 2, l.Len())
		require.Equal(t, uint64(0), l.At(0).Type())
		require.Equal(t, []byte{0xff}, l.At(0).Data())
		require.False(t, l.At(0).IsSentinel())
	})

	t.Run("Zero length non-zero type is a record", func(t *testing.T) {
		data := []byte{0x09, 0x00, 0x00, 0x00}

		l, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, 2, l.Len())
		require.Empty(t, l.At(0).Data())
	})
}

func TestDecode_Truncation(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty input", nil, errs.ErrTruncatedVarint},
		{"declared 10 bytes, 5 supplied", []byte{0x01, 0x0a, 0x01, 0x02, 0x03, 0x04, 0x05}, errs.ErrTruncatedPayload},
		{"missing length", []byte{0x01}, errs.ErrTruncatedVarint},
		{"type varint cut short", []byte{0x80}, errs.ErrTruncatedVarint},
		{"length varint cut short", []byte{0x01, 0xff}, errs.ErrTruncatedVarint},
		{"no sentinel", []byte{0x01, 0x01, 0xaa}, errs.ErrTruncatedVarint},
		{"no sentinel after records", []byte{0x01, 0x01, 0xaa, 0x02, 0x00}, errs.ErrTruncatedVarint},
		{"huge declared length", []byte{0x01, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}, errs.ErrTruncatedPayload},
		{"varint overflow", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}, errs.ErrVarintOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Decode(tt.data)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, errs.ErrMalformedStream)
			require.Zero(t, l.Len(), "no partial list on failure")
		})
	}
}

func TestDecode_TruncationMessage(t *testing.T) {
	_, err := Decode([]byte{0x01, 0x0a, 0x01, 0x02, 0x03, 0x04, 0x05})
	require.Error(t, err)
	require.Contains(t, err.Error(), "declares 10 bytes, 5 remaining")
}

func TestDecode_DoesNotAliasInput(t *testing.T) {
	data := append([]byte{}, exampleStream...)

	l, err := Decode(data)
	require.NoError(t, err)

	for i := range data {
		data[i] = 0xee
	}
	require.Equal(t, []byte{0xaa, 0xbb}, l.At(0).Data())
}

func TestDecode_DoesNotMutateInput(t *testing.T) {
	data := append([]byte{}, exampleStream...)
	_, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, exampleStream, data)
}

func TestDecodeRawBlock(t *testing.T) {
	header := bytes.Repeat([]byte{0xab}, section.StartOfPCP)
	stream := exampleStream
	raw := append(append([]byte{}, header...), stream...)

	fromBlock, err := DecodeRawBlock(raw)
	require.NoError(t, err)

	fromBuffer, err := Decode(stream)
	require.NoError(t, err)
	require.True(t, fromBlock.Equal(fromBuffer))

	t.Run("Transactions after proof", func(t *testing.T) {
		withTxs := append(append([]byte{}, raw...), 0x01, 0x00, 0x00, 0x00)
		l, err := DecodeRawBlock(withTxs)
		require.NoError(t, err)
		require.True(t, l.Equal(fromBuffer))
	})

	t.Run("Block too short", func(t *testing.T) {
		_, err := DecodeRawBlock(header[:section.StartOfPCP-1])
		require.ErrorIs(t, err, errs.ErrBlockTooShort)
	})

	t.Run("Header only", func(t *testing.T) {
		_, err := DecodeRawBlock(header)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})
}

func TestDecodeBlockReader(t *testing.T) {
	raw := append(make([]byte, section.StartOfPCP), exampleStream...)
	raw = append(raw, 0x42)

	r := encoding.NewByteReader(raw)
	l, err := DecodeBlockReader(r)
	require.NoError(t, err)
	require.True(t, l.Equal(exampleList(t)))
	require.Equal(t, section.StartOfPCP+len(exampleStream), r.Pos(), "cursor is left at the transactions")

	short := encoding.NewByteReader(make([]byte, 10))
	_, err = DecodeBlockReader(short)
	require.ErrorIs(t, err, errs.ErrBlockTooShort)
	require.ErrorIs(t, err, errs.ErrInvalidPosition)
}

func TestDecodeFrom_Cursor(t *testing.T) {
	t.Run("Starts at current position", func(t *testing.T) {
		data := append([]byte{0xde, 0xad}, exampleStream...)
		r := encoding.NewByteReader(data)
		require.NoError(t, r.SetPos(2))

		l, err := DecodeFrom(r)
		require.NoError(t, err)
		require.True(t, l.Equal(exampleList(t)))
		require.Equal(t, len(data), r.Pos())
	})

	t.Run("Restores cursor on failure", func(t *testing.T) {
		data := []byte{0xff, 0x01, 0x0a, 0x01}
		r := encoding.NewByteReader(data)
		require.NoError(t, r.SetPos(1))

		_, err := DecodeFrom(r)
		require.ErrorIs(t, err, errs.ErrTruncatedPayload)
		require.Equal(t, 1, r.Pos())
	})

	t.Run("Back to back lists", func(t *testing.T) {
		data := append(append([]byte{}, exampleStream...), 0x00, 0x00)
		r := encoding.NewByteReader(data)

		first, err := DecodeFrom(r)
		require.NoError(t, err)
		require.Equal(t, 2, first.Len())

		second, err := DecodeFrom(r)
		require.NoError(t, err)
		require.Equal(t, 1, second.Len())
		require.Equal(t, 0, r.Remaining())
	})
}

// stuckReader reports records without ever moving its cursor.
type stuckReader struct{}

func (stuckReader) Read(n int) ([]byte, error) { return make([]byte, n), nil }
func (stuckReader) ReadVarint() (uint64, error) { return 1, nil }
func (stuckReader) Pos() int                    { return 0 }
func (stuckReader) SetPos(int) error            { return nil }
func (stuckReader) Remaining() int              { return 1 << 20 }

func TestDecodeFrom_ReaderMustAdvance(t *testing.T) {
	_, err := DecodeFrom(stuckReader{})
	require.ErrorIs(t, err, errs.ErrMalformedStream)
	require.Contains(t, err.Error(), "cursor did not advance")
}

func TestDecodeHex(t *testing.T) {
	l, err := DecodeHex("0102aabb0000")
	require.NoError(t, err)
	require.True(t, l.Equal(exampleList(t)))

	upper, err := DecodeHex(" 0102AABB0000\n")
	require.NoError(t, err)
	require.True(t, l.Equal(upper))

	_, err = DecodeHex("0102zz")
	require.ErrorIs(t, err, errs.ErrInvalidHex)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = DecodeHex("010")
	require.ErrorIs(t, err, errs.ErrInvalidHex)

	_, err = DecodeHex("0102aabb")
	require.ErrorIs(t, err, errs.ErrMalformedStream)
}

func TestDecoder_Options(t *testing.T) {
	t.Run("Invalid options", func(t *testing.T) {
		_, err := NewDecoder(WithVarint(format.VarintType(0x42)))
		require.ErrorIs(t, err, errs.ErrInvalidVarintType)

		_, err = NewDecoder(WithMaxEntities(0))
		require.ErrorIs(t, err, errs.ErrInvalidLimit)

		_, err = NewDecoder(WithMaxPayloadSize(-1))
		require.ErrorIs(t, err, errs.ErrInvalidLimit)

		_, err = NewDecoder(WithMaxUnpackedSize(0))
		require.ErrorIs(t, err, errs.ErrInvalidLimit)
	})

	t.Run("Default config", func(t *testing.T) {
		d, err := NewDecoder()
		require.NoError(t, err)
		cfg := d.Config()
		require.Equal(t, format.VarintBase128, cfg.VarintType())
		require.Equal(t, DefaultMaxUnpackedSize, cfg.MaxUnpackedSize())
	})

	t.Run("Max entities", func(t *testing.T) {
		d, err := NewDecoder(WithMaxEntities(2))
		require.NoError(t, err)

		_, err = d.Decode(exampleStream)
		require.NoError(t, err)

		_, err = d.Decode([]byte{0x01, 0x00, 0x02, 0x00, 0x00, 0x00})
		require.ErrorIs(t, err, errs.ErrTooManyEntities)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("Max payload size", func(t *testing.T) {
		d, err := NewDecoder(WithMaxPayloadSize(2))
		require.NoError(t, err)

		_, err = d.Decode(exampleStream)
		require.NoError(t, err)

		_, err = d.Decode([]byte{0x01, 0x03, 0xaa, 0xbb, 0xcc, 0x00, 0x00})
		require.ErrorIs(t, err, errs.ErrPayloadTooLarge)
	})

	t.Run("CompactSize", func(t *testing.T) {
		payload := bytes.Repeat([]byte{0x5a}, 256)
		data := append([]byte{0x07, 0xfd, 0x00, 0x01}, payload...)
		data = append(data, 0x00, 0x00)

		d, err := NewDecoder(WithCompactSize())
		require.NoError(t, err)

		l, err := d.Decode(data)
		require.NoError(t, err)
		require.Equal(t, 2, l.Len())
		require.Equal(t, uint64(7), l.At(0).Type())
		require.Equal(t, payload, l.At(0).Data())

		// The same bytes are not a valid base-128 stream of that shape.
		_, err = Decode(data)
		require.Error(t, err)
	})
}

func TestDecode_RoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, vt := range []format.VarintType{format.VarintBase128, format.VarintCompactSize} {
		t.Run(vt.String(), func(t *testing.T) {
			enc, err := NewEncoder(WithVarint(vt))
			require.NoError(t, err)
			dec, err := NewDecoder(WithVarint(vt))
			require.NoError(t, err)

			for i := range 50 {
				l := randomList(t, rng, i%12)

				data := enc.Encode(l)
				require.Len(t, data, enc.Size(l))

				back, n, err := dec.DecodePrefix(data)
				require.NoError(t, err)
				require.Equal(t, len(data), n)
				require.True(t, l.Equal(back))
			}
		})
	}
}

func TestDecoder_Concurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	lists := make([]List, 8)
	streams := make([][]byte, len(lists))
	for i := range lists {
		lists[i] = randomList(t, rng, 5)
		streams[i] = Encode(lists[i])
	}

	done := make(chan error, len(lists))
	for i := range lists {
		go func(i int) {
			for range 50 {
				l, err := Decode(streams[i])
				if err != nil {
					done <- err
					return
				}
				if !l.Equal(lists[i]) {
					done <- errs.ErrMalformedStream
					return
				}
			}
			done <- nil
		}(i)
	}

	for range lists {
		require.NoError(t, <-done)
	}
}

func TestDecodeFrom_ReaderSchemeIgnored(t *testing.T) {
	// {1, aabb} with a non-minimal CompactSize length, then the sentinel.
	compact := []byte{0x01, 0xfd, 0x02, 0x00, 0xaa, 0xbb, 0x00, 0x00}

	dec, err := NewDecoder(WithCompactSize())
	require.NoError(t, err)

	want, err := dec.Decode(compact)
	require.NoError(t, err)
	require.True(t, want.Equal(exampleList(t)))

	t.Run("Base128 reader, CompactSize decoder", func(t *testing.T) {
		r := encoding.NewByteReader(compact)

		l, err := dec.DecodeFrom(r)
		require.NoError(t, err)
		require.True(t, want.Equal(l))
		require.Equal(t, len(compact), r.Pos())
	})

	t.Run("CompactSize reader, Base128 decoder", func(t *testing.T) {
		compactCodec, err := encoding.GetVarintCodec(format.VarintCompactSize)
		require.NoError(t, err)
		r := encoding.NewByteReaderWith(exampleStream, compactCodec)

		l, err := DecodeFrom(r)
		require.NoError(t, err)
		require.True(t, exampleList(t).Equal(l))
	})

	t.Run("Reader without a scheme", func(t *testing.T) {
		r := &plainReader{r: encoding.NewByteReader(compact)}

		l, err := dec.DecodeFrom(r)
		require.NoError(t, err)
		require.True(t, want.Equal(l))
		require.Equal(t, len(compact), r.Pos())
	})

	t.Run("Truncated varint restores cursor", func(t *testing.T) {
		r := &plainReader{r: encoding.NewByteReader([]byte{0x01, 0xfd, 0x02})}

		_, err := dec.DecodeFrom(r)
		require.ErrorIs(t, err, errs.ErrTruncatedVarint)
		require.Equal(t, 0, r.Pos())
	})
}

// plainReader hides the varint scheme of the wrapped ByteReader.
type plainReader struct {
	r *encoding.ByteReader
}

func (p *plainReader) Read(n int) ([]byte, error)  { return p.r.Read(n) }
func (p *plainReader) ReadVarint() (uint64, error) { return p.r.ReadVarint() }
func (p *plainReader) Pos() int                    { return p.r.Pos() }
func (p *plainReader) SetPos(pos int) error        { return p.r.SetPos(pos) }
func (p *plainReader) Remaining() int              { return p.r.Remaining() }

func TestDecodeBlockReader_RestoresCallerCursor(t *testing.T) {
	raw := append(make([]byte, section.StartOfPCP), 0x01, 0x0a, 0x01)
	r := encoding.NewByteReader(raw)
	require.NoError(t, r.SetPos(5))

	_, err := DecodeBlockReader(r)
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)
	require.Equal(t, 5, r.Pos())

	short := encoding.NewByteReader(make([]byte, 10))
	require.NoError(t, short.SetPos(3))
	_, err = DecodeBlockReader(short)
	require.ErrorIs(t, err, errs.ErrBlockTooShort)
	require.Equal(t, 3, short.Pos())
}
