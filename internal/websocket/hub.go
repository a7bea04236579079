package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"eduease-be/internal/entity"
	"eduease-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ClusterChannel carries notifications between server instances.
const ClusterChannel = "cluster_events"

type Hub struct {
	// Session id -> open sockets (several tabs may share one session)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance communication, may be nil
	rdb *redis.Client

	logger logger.ILogger
}

type clusterEnvelope struct {
	TargetSessionId string          `json:"target_session_id"`
	Message         json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionId] = append(h.clients[client.SessionId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionId})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register adds a client. It reports false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister drops a client, directly if the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
		h.remove(client)
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.SessionId]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.SessionId] = append(clients[:i], clients[i+1:]...)
			client.closeSend()
			break
		}
	}
	if len(h.clients[client.SessionId]) == 0 {
		delete(h.clients, client.SessionId)
		h.logger.Info("Hub", "Session has no open sockets", map[string]interface{}{"session_id": client.SessionId})
	}
}

// Connected reports how many sockets are open locally for a session.
func (h *Hub) Connected(sessionId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionId])
}

// Send implements service.NotificationDelivery.
func (h *Hub) Send(sessionId string, notification entity.Notification) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode notification", map[string]interface{}{"error": err})
		return
	}

	h.deliverLocal(sessionId, data)

	// Other instances may hold sockets for the same session.
	if h.rdb != nil {
		payload, _ := json.Marshal(clusterEnvelope{TargetSessionId: sessionId, Message: data})
		if err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish to cluster", map[string]interface{}{"error": err})
		}
	}
}

func (h *Hub) deliverLocal(sessionId string, data []byte) {
	// Hold the read lock while sending so remove cannot close a channel mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[sessionId] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping socket", map[string]interface{}{"session_id": sessionId})
			go h.Unregister(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Cluster message parse error", map[string]interface{}{"error": err})
			continue
		}
		h.deliverLocal(payload.TargetSessionId, payload.Message)
	}
}
