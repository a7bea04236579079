package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"eduease-be/internal/entity"
	"eduease-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHubDeliversToSessionOnly(t *testing.T) {
	hub := startHub(t)

	mine := &Client{Hub: hub, SessionId: "s-1", Send: make(chan []byte, 4)}
	other := &Client{Hub: hub, SessionId: "s-2", Send: make(chan []byte, 4)}
	hub.register <- mine
	hub.register <- other

	require.Eventually(t, func() bool { return hub.Connected("s-1") == 1 && hub.Connected("s-2") == 1 },
		time.Second, 10*time.Millisecond)

	hub.Send("s-1", entity.Notification{SessionId: "s-1", Title: "Chat Cleared"})

	select {
	case data := <-mine.Send:
		var frame struct {
			Type string              `json:"type"`
			Data entity.Notification `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &frame))
		assert.Equal(t, "notification", frame.Type)
		assert.Equal(t, "Chat Cleared", frame.Data.Title)
	case <-time.After(time.Second):
		t.Fatal("notification not delivered")
	}

	assert.Len(t, other.Send, 0)
}

func TestHubUnregister(t *testing.T) {
	hub := startHub(t)

	c := &Client{Hub: hub, SessionId: "s-1", Send: make(chan []byte, 1)}
	hub.register <- c
	hub.unregister <- c

	require.Eventually(t, func() bool { return hub.Connected("s-1") == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHubDropsFullClientAfterStop(t *testing.T) {
	hub := NewHub(nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	c := &Client{Hub: hub, SessionId: "s-1", Send: make(chan []byte, 1)}
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return hub.Connected("s-1") == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	<-hub.done
	assert.False(t, hub.Register(&Client{Hub: hub, SessionId: "s-2", Send: make(chan []byte, 1)}))

	c.Send <- []byte("backlog")
	hub.Send("s-1", entity.Notification{SessionId: "s-1", Title: "Chat Cleared"})

	require.Eventually(t, func() bool { return hub.Connected("s-1") == 0 }, time.Second, 10*time.Millisecond)
	<-c.Send
	_, open := <-c.Send
	assert.False(t, open)
}
