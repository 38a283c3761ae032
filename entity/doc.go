// Package entity implements the PacketCrypt proof entity list: a
// self-describing, sentinel-terminated sequence of typed records stored after
// a block's fixed-size header region.
//
// # Wire Format
//
//	record := varint(type) varint(length) bytes[length]
//	stream := record* sentinel
//	sentinel := varint(0) varint(0)
//
// Bytes after the sentinel are not part of the list and are ignored. Record
// types are opaque tags; the codec checks structure only and never interprets
// a payload.
//
// # Decoding
//
// A Decoder reads from a byte slice, a hex string, a raw block (the list
// starts at section.StartOfPCP) or an encoding.Reader positioned anywhere in
// a larger buffer. Every declared length is checked against the bytes left
// before anything is allocated, and each record consumes at least two bytes,
// so decoding always terminates. A decode either returns the whole list or an
// error wrapping errs.ErrMalformedStream; partial lists are never returned.
//
// Decoded payloads are copies. Mutating the input after a decode does not
// change the List.
//
// # Interchange Forms
//
// Besides the wire format a List converts to:
//   - Object, the structural form {"entities": [{"type", "data"}]}, also used
//     by List.MarshalJSON and List.UnmarshalJSON
//   - a cramberry-encoded binary object (MarshalBinaryObject)
//   - a packed envelope: the wire bytes compressed with one of the compress
//     codecs (Pack / Unpack)
//
// Object-form input must end with exactly one sentinel, same as a decoded
// stream.
//
// # Example
//
//	l, err := entity.DecodeHex("0102aabb0000")
//	if err != nil {
//		return err
//	}
//	for _, e := range l.Records() {
//		fmt.Println(e.Type(), e.Hex())
//	}
package entity
