package collision

import (
	"slices"

	"github.com/arloliu/pcproof/errs"
)

// Tracker remembers proofs by digest and detects repeats across a batch.
//
// Two proofs are duplicates when their wire encodings are identical. Two
// different encodings sharing a digest are a collision: both are tracked and
// the collision flag is set, so callers know the digest alone is not a safe key.
type Tracker struct {
	seen         map[uint64][]string // digest → distinct hex encodings
	order        []uint64            // digests in first-seen order
	count        int
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		seen:  make(map[uint64][]string),
		order: make([]uint64, 0),
	}
}

// Track records a proof by its digest and hex wire encoding.
//
// Returns:
//   - errs.ErrEmptyProof if encoding is empty
//   - errs.ErrDuplicateProof if the same encoding was tracked before
//
// A digest collision is not an error; see HasCollision.
func (t *Tracker) Track(digest uint64, encoding string) error {
	if encoding == "" {
		return errs.ErrEmptyProof
	}

	existing, exists := t.seen[digest]
	for _, enc := range existing {
		if enc == encoding {
			return errs.ErrDuplicateProof
		}
	}
	if exists {
		t.hasCollision = true
	} else {
		t.order = append(t.order, digest)
	}

	t.seen[digest] = append(existing, encoding)
	t.count++

	return nil
}

// HasCollision returns true if two different encodings shared a digest.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Digests returns a copy of the tracked digests in first-seen order.
func (t *Tracker) Digests() []uint64 {
	return slices.Clone(t.order)
}

// Count returns the number of distinct proofs tracked.
func (t *Tracker) Count() int {
	return t.count
}

// Reset clears all tracked proofs and collision state.
func (t *Tracker) Reset() {
	clear(t.seen)
	t.order = t.order[:0]
	t.count = 0
	t.hasCollision = false
}
