package server

import (
	"context"
	"testing"
	"time"

	"ripple/internal/config"
	"ripple/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRedisServer builds a server whose notifier runs against miniredis,
// with the hub wired to the pattern subscriber like in production.
func setupRedisServer(t *testing.T) (*Server, context.CancelFunc) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	cfg := &config.Config{
		JWTSecret: "test-secret-not-for-production",
		Port:      "8081",
		Env:       "test",
	}
	srv, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, srv.hub.StartWiring(ctx, srv.notifier))
	time.Sleep(50 * time.Millisecond)

	return srv, cancel
}

func TestPublishUserEvent_DeliversOnceWithRedis(t *testing.T) {
	srv, cancel := setupRedisServer(t)
	defer cancel()

	client, err := srv.Hub().Register(5, nil)
	require.NoError(t, err)

	srv.publishUserEvent(5, EventNotification, map[string]interface{}{
		"message": "hello",
	})

	select {
	case msg := <-client.Send:
		assert.True(t, containsEvent(string(msg), EventNotification))
	case <-time.After(2 * time.Second):
		t.Fatal("expected the event to arrive through pub/sub")
	}

	// A user connected to the publishing instance must not see the event a
	// second time through the hub fast path.
	time.Sleep(100 * time.Millisecond)
	select {
	case msg := <-client.Send:
		t.Fatalf("event delivered twice: %s", msg)
	default:
	}
}

func TestPublishBroadcastEvent_DeliversOnceWithRedis(t *testing.T) {
	srv, cancel := setupRedisServer(t)
	defer cancel()

	client, err := srv.Hub().Register(6, nil)
	require.NoError(t, err)

	srv.publishBroadcastEvent(EventPostCreated, map[string]interface{}{
		"post": map[string]interface{}{"id": 1},
	})

	select {
	case msg := <-client.Send:
		assert.True(t, containsEvent(string(msg), EventPostCreated))
	case <-time.After(2 * time.Second):
		t.Fatal("expected the broadcast to arrive through pub/sub")
	}

	time.Sleep(100 * time.Millisecond)
	select {
	case msg := <-client.Send:
		t.Fatalf("broadcast delivered twice: %s", msg)
	default:
	}
}
