package entity

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/pcproof/errs"
	"github.com/arloliu/pcproof/internal/hash"
)

// List is a decoded PacketCrypt proof: an ordered, sentinel-terminated
// sequence of entities.
//
// Invariants:
//   - the list is non-empty
//   - the last entity is the sentinel
//   - no other entity is a sentinel
//
// A List is immutable and safe for concurrent reads. The zero List holds no
// entities and is not a valid proof; obtain Lists from a Decoder, NewList or
// FromObject.
type List struct {
	entities []Entity
}

// NewList builds a List from entities, copying their payloads.
//
// Returns errs.ErrMissingSentinel if entities is empty or not terminated by
// the sentinel, and errs.ErrTrailingEntities if anything follows the first
// sentinel. The sentinel is never appended automatically.
func NewList(entities ...Entity) (List, error) {
	if err := validateEntities(entities); err != nil {
		return List{}, err
	}

	out := make([]Entity, len(entities))
	for i, e := range entities {
		out[i] = New(e.typ, e.data)
	}

	return List{entities: out}, nil
}

// SentinelList returns the minimal valid List holding only the sentinel.
func SentinelList() List {
	return List{entities: []Entity{Sentinel()}}
}

func validateEntities(entities []Entity) error {
	for i, e := range entities {
		if !e.IsSentinel() {
			continue
		}
		if i != len(entities)-1 {
			return fmt.Errorf("sentinel at index %d of %d: %w", i, len(entities), errs.ErrTrailingEntities)
		}

		return nil
	}

	return fmt.Errorf("%d entities: %w", len(entities), errs.ErrMissingSentinel)
}

// Len returns the number of entities, sentinel included.
func (l List) Len() int {
	return len(l.entities)
}

// At returns the entity at index i. It panics if i is out of range.
func (l List) At(i int) Entity {
	return l.entities[i]
}

// All iterates over index/entity pairs in order, sentinel included.
func (l List) All() iter.Seq2[int, Entity] {
	return func(yield func(int, Entity) bool) {
		for i, e := range l.entities {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Entities returns the entities in order, sentinel included.
func (l List) Entities() []Entity {
	return slices.Clone(l.entities)
}

// Records returns the entities without the trailing sentinel.
func (l List) Records() []Entity {
	if len(l.entities) == 0 {
		return nil
	}

	return slices.Clone(l.entities[:len(l.entities)-1])
}

// Find returns the first entity with the given type tag.
func (l List) Find(typ uint64) (Entity, bool) {
	for _, e := range l.entities {
		if e.typ == typ && !e.IsSentinel() {
			return e, true
		}
	}

	return Entity{}, false
}

// Equal reports whether l and other hold the same entities in the same order.
func (l List) Equal(other List) bool {
	return slices.EqualFunc(l.entities, other.entities, Entity.Equal)
}

// EncodedSize returns the length of the default wire encoding.
func (l List) EncodedSize() int {
	return defaultEncoder.Size(l)
}

// Bytes returns the default wire encoding.
func (l List) Bytes() []byte {
	return defaultEncoder.Encode(l)
}

// Hex returns the default wire encoding as lowercase hex.
func (l List) Hex() string {
	return defaultEncoder.EncodeHex(l)
}

// Digest returns the xxHash64 of the default wire encoding. Equal lists have
// equal digests, which makes it a cheap key for deduplicating proofs.
func (l List) Digest() uint64 {
	return hash.Digest(l.Bytes())
}

// String returns the wire encoding as lowercase hex.
func (l List) String() string {
	return l.Hex()
}

// MarshalBinary implements encoding.BinaryMarshaler with the default wire format.
func (l List) MarshalBinary() ([]byte, error) {
	return l.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler with the default wire format.
func (l *List) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*l = decoded

	return nil
}
