package sse

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one message on the stream. IDs of broadcast events are increasing
// sequence numbers so a reconnecting client can resume with Last-Event-ID.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
	seq       uint64
}

// Subscription narrows what a client receives
type Subscription struct {
	// Types limits the stream to these event types; empty means all
	Types []string
	// UserID limits visitor events to one visitor; museum-wide events always pass
	UserID string
	// LastEventID replays buffered events newer than this one
	LastEventID string
}

// Client is one connected stream
type Client struct {
	ID           string
	EventChannel chan Event

	types       map[string]bool
	userID      string
	resumeAfter uint64
	resume      bool
}

// Hub fans broadcast events out to clients and keeps a short replay buffer
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup

	// owned by run
	seq    uint64
	recent []Event

	onClientsChanged func(n int)
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
		recent:     make([]Event, 0, ReplayBufferSize),
	}
}

// OnClientsChanged installs a callback invoked with the client count after
// every register and unregister. Call before Start.
func (h *Hub) OnClientsChanged(fn func(n int)) {
	h.onClientsChanged = fn
}

func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, client := range h.clients {
			close(client.EventChannel)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
		h.notify(0)
	})
}

// run serializes registration and broadcast so a resuming client sees every
// buffered event exactly once
func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			if client.resume {
				h.replay(client)
			}
			h.mu.Lock()
			h.clients[client.ID] = client
			n := len(h.clients)
			h.mu.Unlock()
			h.notify(n)

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[clientID]; ok {
				close(client.EventChannel)
				delete(h.clients, clientID)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.notify(n)

		case event := <-h.broadcast:
			h.seq++
			event.seq = h.seq
			event.ID = strconv.FormatUint(h.seq, 10)
			h.remember(event)

			h.mu.RLock()
			for _, client := range h.clients {
				if client.wants(event) {
					deliver(client, event)
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) remember(e Event) {
	if len(h.recent) == ReplayBufferSize {
		copy(h.recent, h.recent[1:])
		h.recent = h.recent[:ReplayBufferSize-1]
	}
	h.recent = append(h.recent, e)
}

// replay queues the newest buffered events the client missed, at most as
// many as its channel holds
func (h *Hub) replay(c *Client) {
	var missed []Event
	for _, e := range h.recent {
		if e.seq > c.resumeAfter && c.wants(e) {
			missed = append(missed, e)
		}
	}
	if over := len(missed) - cap(c.EventChannel); over > 0 {
		missed = missed[over:]
	}
	for _, e := range missed {
		deliver(c, e)
	}
	if len(missed) > 0 {
		slog.Debug(LogMsgReplayed, "client_id", c.ID, "events", len(missed))
	}
}

// deliver never blocks; slow clients miss events rather than stalling the hub
func deliver(c *Client, e Event) {
	select {
	case c.EventChannel <- e:
	default:
	}
}

func (h *Hub) notify(n int) {
	if h.onClientsChanged != nil {
		h.onClientsChanged(n)
	}
}

func (c *Client) wants(e Event) bool {
	if c.types != nil && !c.types[e.Type] {
		return false
	}
	return c.userID == "" || e.UserID == "" || c.userID == e.UserID
}

// Register adds a client. It returns nil once the hub is stopped.
func (h *Hub) Register(sub Subscription) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
		userID:       sub.UserID,
	}
	if len(sub.Types) > 0 {
		client.types = make(map[string]bool, len(sub.Types))
		for _, t := range sub.Types {
			client.types[t] = true
		}
	}
	if sub.LastEventID != "" {
		if after, err := strconv.ParseUint(sub.LastEventID, 10, 64); err == nil {
			client.resumeAfter = after
			client.resume = true
		}
	}

	select {
	case <-h.shutdown:
		return nil
	default:
	}
	select {
	case h.register <- client:
		return client
	case <-h.shutdown:
		return nil
	}
}

func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every interested client. The hub assigns the ID.
func (h *Hub) Broadcast(eventType, userID string, payload interface{}) {
	event := Event{
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- event:
	default:
		slog.Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders an event as an SSE frame
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	msg := make([]byte, 0, len(data)+len(event.ID)+len(event.Type)+24)
	msg = append(msg, "id: "...)
	msg = append(msg, event.ID...)
	msg = append(msg, "\nevent: "...)
	msg = append(msg, event.Type...)
	msg = append(msg, "\ndata: "...)
	msg = append(msg, data...)
	msg = append(msg, "\n\n"...)
	return msg, nil
}
