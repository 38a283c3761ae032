package pcproof

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pcproof/encoding"
	"github.com/arloliu/pcproof/entity"
	"github.com/arloliu/pcproof/errs"
	"github.com/arloliu/pcproof/format"
)

var exampleStream = []byte{0x01, 0x02, 0xaa, 0xbb, 0x00, 0x00}

func TestFromBuffer_Example(t *testing.T) {
	l, err := FromBuffer(exampleStream)

	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	require.Equal(t, uint64(1), l.At(0).Type())
	require.Equal(t, []byte{0xaa, 0xbb}, l.At(0).Data())
	require.True(t, l.At(1).IsSentinel())
	require.Equal(t, exampleStream, Encode(l))
}

func TestFromBuffer_Minimal(t *testing.T) {
	l, err := FromBuffer([]byte{0x00, 0x00})

	require.NoError(t, err)
	require.Equal(t, 1, l.Len())
	require.True(t, l.At(0).IsSentinel())
}

func TestFromBuffer_TrailingBytesIgnored(t *testing.T) {
	l, err := FromBuffer(append(bytes.Clone(exampleStream), 0xde, 0xad, 0xbe, 0xef))

	require.NoError(t, err)
	require.Equal(t, exampleStream, Encode(l))
}

func TestFromBuffer_Truncated(t *testing.T) {
	// Declares 10 payload bytes, only 5 follow.
	data := []byte{0x01, 0x0a, 0x01, 0x02, 0x03, 0x04, 0x05}

	_, err := FromBuffer(data)

	require.ErrorIs(t, err, errs.ErrTruncatedPayload)
	require.ErrorIs(t, err, errs.ErrMalformedStream)
}

func TestFromRawBlock(t *testing.T) {
	header := bytes.Repeat([]byte{0x5a}, StartOfPCP)
	raw := append(header, exampleStream...)
	raw = append(raw, 0x01, 0x02, 0x03) // transactions

	l, err := FromRawBlock(raw)
	require.NoError(t, err)
	require.Equal(t, exampleStream, Encode(l))

	_, err = FromRawBlock(header[:StartOfPCP-1])
	require.ErrorIs(t, err, errs.ErrBlockTooShort)
}

func TestFromBlockReader(t *testing.T) {
	raw := append(make([]byte, StartOfPCP), exampleStream...)
	r := encoding.NewByteReader(raw)

	l, err := FromBlockReader(r)
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	require.Equal(t, StartOfPCP+len(exampleStream), r.Pos())
}

func TestFromReader(t *testing.T) {
	data := append([]byte{0xff, 0xff}, exampleStream...)
	r := encoding.NewByteReader(data)
	require.NoError(t, r.SetPos(2))

	l, err := FromReader(r)
	require.NoError(t, err)
	require.Equal(t, exampleStream, Encode(l))
	require.Equal(t, 0, r.Remaining())
}

func TestHexRoundTrip(t *testing.T) {
	l, err := FromHex("0102AABB0000")
	require.NoError(t, err)
	require.Equal(t, "0102aabb0000", EncodeHex(l))

	_, err = FromHex("0102aab")
	require.ErrorIs(t, err, errs.ErrInvalidHex)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestObjectRoundTrip(t *testing.T) {
	l, err := FromBuffer(exampleStream)
	require.NoError(t, err)

	obj := l.ToObject()
	back, err := FromObject(&obj)
	require.NoError(t, err)
	require.True(t, l.Equal(back))

	doc, err := json.Marshal(obj)
	require.NoError(t, err)
	require.JSONEq(t, `{"entities":[{"type":1,"data":"aabb"},{"type":0,"data":""}]}`, string(doc))

	_, err = FromObject(nil)
	require.ErrorIs(t, err, errs.ErrMissingEntities)
}

func TestFrom(t *testing.T) {
	want, err := FromBuffer(exampleStream)
	require.NoError(t, err)

	for name, arg := range map[string]any{
		"bytes":  exampleStream,
		"hex":    "0102aabb0000",
		"object": want.ToObject(),
		"reader": encoding.NewByteReader(exampleStream),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := From(arg)
			require.NoError(t, err)
			require.True(t, want.Equal(got))
		})
	}

	_, err = From(12)
	require.ErrorIs(t, err, errs.ErrUnsupportedArgument)
}

func TestPackUnpack(t *testing.T) {
	l, err := FromBuffer(exampleStream)
	require.NoError(t, err)

	packed, err := Pack(l, format.CompressionZstd)
	require.NoError(t, err)

	back, err := Unpack(packed)
	require.NoError(t, err)
	require.True(t, l.Equal(back))
}

func TestEncodeDoesNotAppendSentinel(t *testing.T) {
	l, err := entity.NewList(entity.New(7, []byte{0x01}), entity.Sentinel())
	require.NoError(t, err)

	require.Equal(t, []byte{0x07, 0x01, 0x01, 0x00, 0x00}, Encode(l))
}
