package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gyansetu/gyansetu-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "gyansetu:notifications"

// Event is a real-time event sent over the websocket
type Event struct {
	Type    string      `json:"type"`    // "notification", "unread_count"
	Payload interface{} `json:"payload"` // event-specific data
}

// Hub manages websocket clients and delivers events per user
type Hub struct {
	// Registered clients grouped by user ID
	clients map[uint64]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *targetedEvent

	mu          sync.RWMutex
	redisClient *redis.Client
	ctx         context.Context
	cancel      context.CancelFunc
}

type targetedEvent struct {
	UserID uint64
	Event  *Event
}

// NewHub creates a new Hub. redisClient may be nil for a single instance.
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uint64]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *targetedEvent, 256),
		redisClient: redisClient,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.deliver(msg)

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *Hub) deliver(msg *targetedEvent) {
	data, err := json.Marshal(msg.Event)
	if err != nil {
		logger.Warn("ws: marshal event for user %d: %v", msg.UserID, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients[msg.UserID] {
		select {
		case client.send <- data:
		default:
			// slow consumer
			h.removeLocked(client)
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}
}

// Connected reports whether the user has at least one local connection
func (h *Hub) Connected(userID uint64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// SendToUser sends an event to a user (local + Redis publish)
func (h *Hub) SendToUser(userID uint64, event *Event) {
	select {
	case h.broadcast <- &targetedEvent{UserID: userID, Event: event}:
	case <-h.ctx.Done():
		return
	}

	// Publish to Redis for multi-instance support
	if h.redisClient != nil {
		data, err := json.Marshal(&redisMessage{UserID: userID, Event: event, Origin: instanceID})
		if err == nil {
			if err := h.redisClient.Publish(h.ctx, redisPubSubChannel, data).Err(); err != nil {
				logger.Warn("ws: redis publish failed: %v", err)
			}
		}
	}
}

type redisMessage struct {
	UserID uint64 `json:"user_id"`
	Event  *Event `json:"event"`
	Origin string `json:"origin"`
}

// subscribeRedis delivers events published by other instances
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var rm redisMessage
			if err := json.Unmarshal([]byte(msg.Payload), &rm); err != nil {
				continue
			}
			// already delivered locally
			if rm.Origin == instanceID {
				continue
			}
			select {
			case h.broadcast <- &targetedEvent{UserID: rm.UserID, Event: rm.Event}:
			case <-h.ctx.Done():
				return
			}
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
