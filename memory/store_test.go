package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreRetrieve(t *testing.T) {
	s := NewStore()
	s.Store("k", "v")

	assert.Equal(t, "v", s.Retrieve("k"))
	assert.True(t, s.Has("k"))
	assert.Equal(t, 1, s.Len())
}

func TestRetrieveMissing(t *testing.T) {
	s := NewStore()

	assert.Nil(t, s.Retrieve("absent"))
	assert.Equal(t, "fallback", s.RetrieveDefault("absent", "fallback"))
	assert.False(t, s.Has("absent"))
}

func TestOverwrite(t *testing.T) {
	s := NewStore()
	s.Store("k", 1)
	s.Store("k", 2)

	assert.Equal(t, 2, s.Retrieve("k"))
	assert.Equal(t, 1, s.Len())
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Store("a", 1)
	s.Store("b", 2)
	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Retrieve("a"))
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewStore()
	s.Store("k", "v")

	snap := s.Snapshot()
	snap["k"] = "changed"
	snap["extra"] = true

	assert.Equal(t, "v", s.Retrieve("k"))
	assert.False(t, s.Has("extra"))
}
