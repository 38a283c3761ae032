// Package endian provides byte order utilities for the fixed-width parts of
// the pcproof wire format.
//
// The entity stream itself is made of varints, which have no byte order. The
// CompactSize varint scheme however stores its 2, 4 and 8 byte tails as
// little-endian integers, and those tails go through an EndianEngine:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint16(buf, uint16(v))
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

