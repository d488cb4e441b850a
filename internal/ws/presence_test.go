package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLastConnectionWins(t *testing.T) {
	r := NewRegistry()

	r.Register("u1", "c1")
	r.Register("u1", "c2")

	connID, ok := r.Lookup("u1")
	require.True(t, ok)
	assert.Equal(t, "c2", connID)
	assert.Equal(t, []string{"u1"}, r.OnlineUserIDs())
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()

	r.Register("u1", "c1")
	r.Unregister("u1", "c1")

	_, ok := r.Lookup("u1")
	assert.False(t, ok)
	assert.Empty(t, r.OnlineUserIDs())
}

func TestRegistryStaleUnregisterKeepsLiveConnection(t *testing.T) {
	r := NewRegistry()

	r.Register("u1", "c1")
	r.Register("u1", "c2")
	// disconnect of the superseded session arrives late
	r.Unregister("u1", "c1")

	connID, ok := r.Lookup("u1")
	require.True(t, ok)
	assert.Equal(t, "c2", connID)
}

func TestRegistryUnregisterUnknownUserIsNoop(t *testing.T) {
	r := NewRegistry()

	r.Unregister("ghost", "c1")
	assert.Empty(t, r.OnlineUserIDs())
}

func TestRegistryOnlineUserIDsIsSnapshot(t *testing.T) {
	r := NewRegistry()

	r.Register("u1", "c1")
	r.Register("u2", "c2")

	snapshot := r.OnlineUserIDs()
	r.Unregister("u2", "c2")

	assert.ElementsMatch(t, []string{"u1", "u2"}, snapshot)
	assert.ElementsMatch(t, []string{"u1"}, r.OnlineUserIDs())
}
