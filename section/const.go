package section

// Raw block layout. Everything before StartOfPCP belongs to the block header
// and is not interpreted by this module.
const (
	BlockPrefixSize = 8                                 // bytes preceding the fixed header
	BlockHeaderSize = 80                                // fixed-size block header
	StartOfPCP      = BlockPrefixSize + BlockHeaderSize // byte offset of the PacketCrypt proof entity list

	SentinelType   = 0 // type tag of the terminating record
	SentinelLength = 0 // payload length of the terminating record

	MinEntityListSize = 2 // a lone sentinel: varint(0) varint(0)
)
