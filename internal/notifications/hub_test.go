package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case msg := <-c.Send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("expected a message, got none")
		return ""
	}
}

func assertEmpty(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("expected no message, got %q", msg)
	default:
	}
}

func TestHub_BroadcastTargetsSingleUser(t *testing.T) {
	hub := NewHub()

	alice, err := hub.Register(1, nil)
	require.NoError(t, err)
	bob, err := hub.Register(2, nil)
	require.NoError(t, err)

	hub.Broadcast(1, "hello alice")

	assert.Equal(t, "hello alice", drain(t, alice))
	assertEmpty(t, bob)
}

func TestHub_BroadcastToAbsentUserIsNoOp(t *testing.T) {
	hub := NewHub()
	hub.Broadcast(42, "into the void")
	assert.False(t, hub.IsOnline(42))
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()

	alice, err := hub.Register(1, nil)
	require.NoError(t, err)
	bob, err := hub.Register(2, nil)
	require.NoError(t, err)

	hub.BroadcastAll("everyone")

	assert.Equal(t, "everyone", drain(t, alice))
	assert.Equal(t, "everyone", drain(t, bob))
}

func TestHub_BroadcastAllReachesUnboundClients(t *testing.T) {
	hub := NewHub()

	// Attached but never identified: broadcasts still arrive, targeted
	// events do not.
	anon, err := hub.Attach(nil)
	require.NoError(t, err)
	bound, err := hub.Register(1, nil)
	require.NoError(t, err)

	hub.BroadcastAll("everyone")
	assert.Equal(t, "everyone", drain(t, anon))
	assert.Equal(t, "everyone", drain(t, bound))

	hub.Broadcast(1, "just you")
	assert.Equal(t, "just you", drain(t, bound))
	assertEmpty(t, anon)
}

func TestHub_LastRegistrationWins(t *testing.T) {
	hub := NewHub()

	first, err := hub.Register(1, nil)
	require.NoError(t, err)
	second, err := hub.Register(1, nil)
	require.NoError(t, err)

	hub.Broadcast(1, "current only")

	assert.Equal(t, "current only", drain(t, second))
	assertEmpty(t, first)
}

func TestHub_UnregisterOnlyEvictsCurrentClient(t *testing.T) {
	hub := NewHub()

	first, err := hub.Register(1, nil)
	require.NoError(t, err)
	second, err := hub.Register(1, nil)
	require.NoError(t, err)

	// The displaced client's deferred unregister must not evict the
	// replacement.
	hub.UnregisterClient(first)
	assert.True(t, hub.IsOnline(1))

	hub.UnregisterClient(second)
	assert.False(t, hub.IsOnline(1))
}

func TestHub_BindClientAfterAttach(t *testing.T) {
	hub := NewHub()

	client, err := hub.Attach(nil)
	require.NoError(t, err)
	assert.False(t, hub.IsOnline(7))

	hub.BindClient(client, 7)
	assert.True(t, hub.IsOnline(7))

	hub.Broadcast(7, "registered now")
	assert.Equal(t, "registered now", drain(t, client))
}

func TestHub_RebindReleasesOldSlot(t *testing.T) {
	hub := NewHub()

	client, err := hub.Attach(nil)
	require.NoError(t, err)

	hub.BindClient(client, 1)
	hub.BindClient(client, 2)

	assert.False(t, hub.IsOnline(1))
	assert.True(t, hub.IsOnline(2))
}

func TestHub_Shutdown(t *testing.T) {
	hub := NewHub()

	_, err := hub.Register(1, nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	assert.False(t, hub.IsOnline(1))
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(1, nil)
	require.NoError(t, err)

	for i := 0; i < cap(client.Send); i++ {
		client.Send <- []byte("fill")
	}

	// Must not block or panic.
	client.TrySend([]byte("overflow"))
	assert.Len(t, client.Send, cap(client.Send))
}
