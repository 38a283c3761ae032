// Package pcproof decodes and encodes PacketCrypt proofs: the entity list a
// PKT block carries after its fixed-size header region.
//
// An entity list is a sequence of typed, length-prefixed records terminated
// by the sentinel record (type 0, length 0). This package only checks that a
// proof is structurally well formed; it never validates proof-of-work or
// interprets record payloads.
//
// # Core Features
//
//   - Bounded decoding: declared lengths are checked before allocation and
//     decoding always terminates, whatever the input
//   - Decoding from byte slices, hex strings, raw blocks and seekable readers
//   - Base-128 varints by default, CompactSize for Bitcoin-style serializers
//   - Object form with JSON support, plus a cramberry binary object form
//   - Packed envelopes compressed with zstd, S2 or LZ4
//
// # Basic Usage
//
// Decoding the proof of a raw block:
//
//	import "github.com/arloliu/pcproof"
//
//	proof, err := pcproof.FromRawBlock(rawBlock)
//	if err != nil {
//	    return err
//	}
//	for _, e := range proof.Records() {
//	    fmt.Printf("type=%d len=%d\n", e.Type(), e.Len())
//	}
//
// Building a proof and encoding it:
//
//	proof, _ := pcproof.FromObject(&entity.Object{Entities: []entity.ObjectEntity{
//	    {Type: 1, Data: entity.HexData("aabb")},
//	    {Type: 0, Data: entity.HexData("")},
//	}})
//	fmt.Println(pcproof.EncodeHex(proof)) // 0102aabb0000
//
// # Error Handling
//
// Every error wraps errs.ErrInvalidArgument or errs.ErrMalformedStream:
//
//	if errors.Is(err, errs.ErrMalformedStream) {
//	    // the proof bytes are truncated or corrupt
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the entity
// package. For custom varint schemes or decode limits, create an
// entity.Decoder / entity.Encoder directly.
package pcproof

import (
	"github.com/arloliu/pcproof/encoding"
	"github.com/arloliu/pcproof/entity"
	"github.com/arloliu/pcproof/format"
	"github.com/arloliu/pcproof/section"
)

// StartOfPCP is the byte offset of the entity list in a raw block.
const StartOfPCP = section.StartOfPCP

// FromBuffer decodes an entity list starting at offset 0 of data.
//
// Bytes after the sentinel are ignored. The returned List does not share
// memory with data.
//
// Returns an error wrapping errs.ErrMalformedStream if data is truncated or
// otherwise not a valid entity stream.
func FromBuffer(data []byte) (entity.List, error) {
	return entity.Decode(data)
}

// FromRawBlock decodes the entity list of a raw block, which starts at
// StartOfPCP.
//
// Returns errs.ErrBlockTooShort if raw ends before StartOfPCP.
func FromRawBlock(raw []byte) (entity.List, error) {
	return entity.DecodeRawBlock(raw)
}

// FromBlockReader moves r to StartOfPCP and decodes the entity list there.
// On success r is left just past the sentinel; on failure r is not moved.
func FromBlockReader(r encoding.Reader) (entity.List, error) {
	return entity.DecodeBlockReader(r)
}

// FromReader decodes an entity list at the current position of r. On success
// r is left just past the sentinel; on failure r is not moved.
func FromReader(r encoding.Reader) (entity.List, error) {
	return entity.DecodeFrom(r)
}

// FromHex decodes a hex-encoded entity stream.
//
// Returns errs.ErrInvalidHex if s is not valid hex.
func FromHex(s string) (entity.List, error) {
	return entity.DecodeHex(s)
}

// FromObject builds an entity list from its object form without parsing bytes.
//
// Returns errs.ErrMissingEntities if obj or its entities field is nil, and
// errs.ErrMissingSentinel / errs.ErrTrailingEntities if the entities are not
// terminated by exactly one sentinel.
func FromObject(obj *entity.Object) (entity.List, error) {
	return entity.FromObject(obj)
}

// From builds an entity list from a byte slice, a hex string, an object form
// (entity.Object, *entity.Object or a decoded-JSON map), or an encoding.Reader.
//
// Returns errs.ErrUnsupportedArgument for any other argument type.
func From(arg any) (entity.List, error) {
	return entity.From(arg)
}

// Encode returns the wire encoding of l.
func Encode(l entity.List) []byte {
	return entity.Encode(l)
}

// EncodeHex returns the wire encoding of l as lowercase hex.
func EncodeHex(l entity.List) string {
	return entity.EncodeHex(l)
}

// Pack encodes l and compresses it into a packed envelope.
//
// Parameters:
//   - l: The entity list to pack
//   - compression: format.CompressionNone, Zstd, S2 or LZ4
//
// Returns errs.ErrInvalidCompression for an unknown compression type.
func Pack(l entity.List, compression format.CompressionType) ([]byte, error) {
	return entity.Pack(l, compression)
}

// Unpack reverses Pack.
func Unpack(data []byte) (entity.List, error) {
	return entity.Unpack(data)
}
