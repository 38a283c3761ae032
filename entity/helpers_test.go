package entity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// exampleStream is the encoding of [{1, aabb}, {0, ""}].
var exampleStream = []byte{0x01, 0x02, 0xaa, 0xbb, 0x00, 0x00}

func mustList(t testing.TB, entities ...Entity) List {
	t.Helper()

	l, err := NewList(entities...)
	require.NoError(t, err)

	return l
}

func exampleList(t testing.TB) List {
	t.Helper()

	return mustList(t, New(1, []byte{0xaa, 0xbb}), Sentinel())
}

// randomList builds a valid List with n non-sentinel records. Payload sizes
// cross the one-byte varint boundary so multi-byte lengths get exercised.
func randomList(t testing.TB, rng *rand.Rand, n int) List {
	t.Helper()

	entities := make([]Entity, 0, n+1)
	for range n {
		typ := uint64(rng.Intn(1 << 16))
		size := rng.Intn(400)
		if typ == 0 && size == 0 {
			size = 1
		}
		data := make([]byte, size)
		rng.Read(data)
		entities = append(entities, New(typ, data))
	}
	entities = append(entities, Sentinel())

	return mustList(t, entities...)
}
