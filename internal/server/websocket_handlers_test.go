package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleSocketMessage(t *testing.T) {
	srv, _ := setupTestServer(t)
	hub := srv.Hub()

	t.Run("RegisterUserBindsTheSocket", func(t *testing.T) {
		client, err := hub.Attach(nil)
		require.NoError(t, err)

		srv.handleSocketMessage(client, []byte(`{"event":"registerUser","userId":42}`))

		assert.True(t, hub.IsOnline(42))
		assert.EqualValues(t, 42, client.UserID)
		hub.UnregisterClient(client)
	})

	t.Run("RegisterUserWithoutUserIDIsIgnored", func(t *testing.T) {
		client, err := hub.Attach(nil)
		require.NoError(t, err)

		srv.handleSocketMessage(client, []byte(`{"event":"registerUser"}`))

		assert.Zero(t, client.UserID)
		hub.UnregisterClient(client)
	})

	t.Run("UnknownEventIsDropped", func(t *testing.T) {
		client, err := hub.Attach(nil)
		require.NoError(t, err)

		srv.handleSocketMessage(client, []byte(`{"event":"selfDestruct","userId":7}`))

		assert.False(t, hub.IsOnline(7))
		hub.UnregisterClient(client)
	})

	t.Run("MalformedJSONIsDropped", func(t *testing.T) {
		client, err := hub.Attach(nil)
		require.NoError(t, err)

		srv.handleSocketMessage(client, []byte(`{"event":`))

		assert.Zero(t, client.UserID)
		hub.UnregisterClient(client)
	})

	t.Run("RebindMovesTheUser", func(t *testing.T) {
		client, err := hub.Attach(nil)
		require.NoError(t, err)

		srv.handleSocketMessage(client, []byte(`{"event":"registerUser","userId":10}`))
		srv.handleSocketMessage(client, []byte(`{"event":"registerUser","userId":11}`))

		assert.False(t, hub.IsOnline(10))
		assert.True(t, hub.IsOnline(11))
		hub.UnregisterClient(client)
	})
}
