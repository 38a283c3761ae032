package entity

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/arloliu/pcproof/section"
)

// Entity is one record of a PacketCrypt proof entity list.
//
// The type tag is opaque to this package. The payload is owned by the Entity
// and never exposed for mutation: Data returns a copy.
type Entity struct {
	typ  uint64
	data []byte
}

// New creates an Entity holding a copy of data.
func New(typ uint64, data []byte) Entity {
	return Entity{typ: typ, data: cloneBytes(data)}
}

// Sentinel returns the terminating record {type: 0, data: empty}.
func Sentinel() Entity {
	return Entity{typ: section.SentinelType}
}

// Type returns the record's type tag.
func (e Entity) Type() uint64 {
	return e.typ
}

// Data returns a copy of the payload.
func (e Entity) Data() []byte {
	return cloneBytes(e.data)
}

// AppendData appends the payload to dst without an intermediate copy.
func (e Entity) AppendData(dst []byte) []byte {
	return append(dst, e.data...)
}

// Len returns the payload length.
func (e Entity) Len() int {
	return len(e.data)
}

// IsSentinel reports whether e is the terminating record.
func (e Entity) IsSentinel() bool {
	return e.typ == section.SentinelType && len(e.data) == section.SentinelLength
}

// Equal reports whether e and other have the same type and payload.
func (e Entity) Equal(other Entity) bool {
	return e.typ == other.typ && bytes.Equal(e.data, other.data)
}

// Hex returns the payload as lowercase hex.
func (e Entity) Hex() string {
	return hex.EncodeToString(e.data)
}

func (e Entity) String() string {
	return fmt.Sprintf("{type: %d, data: %s}", e.typ, e.Hex())
}

// cloneBytes returns a non-nil copy of b.
func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)

	return out
}
