package sse

import (
	"context"
	"sync"

	"svcmap/internal/events"
)

// Client is one connected event stream.
type Client struct {
	Ch chan events.Event
}

// Hub fans map events out to connected SSE clients. Unlike the map layer's
// synchronous bus, delivery here is asynchronous and slow clients are
// dropped rather than blocking the rest.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan events.Event
	clients    map[*Client]struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan events.Event, 64),
		clients:    make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) Broadcast(event events.Event) {
	h.broadcast <- event
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

func (h *Hub) fanOut(event events.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Ch <- event:
		default:
			// Drop if the client is too slow.
		}
	}
}
