// Package encoding provides the low-level primitives of the entity wire format:
// varint codecs and the byte cursors the entity codec reads from and writes to.
//
// # Varint Schemes
//
// Two schemes are supported, selected by format.VarintType:
//   - Base128Codec: little-endian groups of 7 bits with a continuation bit on
//     every byte but the last (LEB128). This is the default.
//   - CompactSizeCodec: Bitcoin-style CompactSize. Values below 0xfd take one
//     byte; 0xfd, 0xfe and 0xff prefix a little-endian uint16, uint32 or uint64.
//
// # Reader and Writer
//
// Reader and Writer are the collaborator interfaces of the entity codec.
// ByteReader is a seekable cursor over an in-memory buffer: reads that fail
// leave the cursor where it was, so a caller can retry from a known offset.
// ByteWriter appends into a pooled buffer and hands out a fresh copy on Finish.
//
// Neither ByteReader nor ByteWriter is safe for concurrent use.
//
// # Example
//
//	w := encoding.NewByteWriter()
//	w.WriteVarint(1)
//	w.WriteVarint(2)
//	w.Write([]byte{0xaa, 0xbb})
//	data := w.Finish()
//
//	r := encoding.NewByteReader(data)
//	typ, _ := r.ReadVarint()     // 1
//	length, _ := r.ReadVarint()  // 2
//	payload, _ := r.Read(int(length))
package encoding
