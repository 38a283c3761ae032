// Package section defines the physical layout constants of a PKT raw block as
// far as the PacketCrypt proof is concerned.
//
// # Block Structure
//
// A raw block carries the proof entity list right after its fixed header:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Prefix (8 bytes)                                        │
//	├─────────────────────────────────────────────────────────┤
//	│ Block Header (80 bytes, fixed)                          │
//	├─────────────────────────────────────────────────────────┤ <- StartOfPCP (88)
//	│ PacketCrypt Proof entity list (variable)                │
//	│  - record: varint(type) varint(length) bytes[length]    │
//	│  - terminated by varint(0) varint(0)                    │
//	├─────────────────────────────────────────────────────────┤
//	│ Transactions (variable, not interpreted)                │
//	└─────────────────────────────────────────────────────────┘
//
// Nothing before StartOfPCP is parsed here; the block header belongs to the
// chain layer. The end of the proof region is only known once the entity list
// has been decoded, see entity.Decoder.DecodePrefix.
package section
