// Package wsevents broadcasts match state to spectator websocket clients.
// It generalizes the teacher's register/unregister/broadcast hub to a
// single room kind, "match", and drops the inbound action protocol
// entirely: a spectator only ever receives snapshots, it never sends a
// move back through the hub.
package wsevents

import (
	"log"
	"sync"
)

type matchBroadcastMessage struct {
	MatchID string
	Message []byte
}

// Hub maintains connected spectator clients and their match-room subscriptions.
type Hub struct {
	clients map[*Client]bool

	broadcast      chan []byte
	matchBroadcast chan matchBroadcastMessage
	register       chan *Client
	unregister     chan *Client

	mu sync.RWMutex

	matchSubscribers map[string]map[*Client]bool
	clientMatches    map[*Client]map[string]bool
}

// NewHub creates an empty Hub. Call Run in its own goroutine before use.
func NewHub() *Hub {
	return &Hub{
		broadcast:        make(chan []byte),
		matchBroadcast:   make(chan matchBroadcastMessage),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		clients:          make(map[*Client]bool),
		matchSubscribers: make(map[string]map[*Client]bool),
		clientMatches:    make(map[*Client]map[string]bool),
	}
}

// Run starts the hub's event loop. It blocks; callers run it in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("spectator connected, total %d", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			h.unregisterClientLocked(client)
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				h.sendToClientLocked(client, message)
			}
			h.mu.RUnlock()

		case msg := <-h.matchBroadcast:
			h.mu.RLock()
			for client := range h.matchSubscribers[msg.MatchID] {
				h.sendToClientLocked(client, msg.Message)
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) unregisterClientLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	if matches := h.clientMatches[client]; matches != nil {
		for matchID := range matches {
			if subscribers := h.matchSubscribers[matchID]; subscribers != nil {
				delete(subscribers, client)
				if len(subscribers) == 0 {
					delete(h.matchSubscribers, matchID)
				}
			}
		}
		delete(h.clientMatches, client)
	}

	close(client.send)
	log.Printf("spectator disconnected, total %d", len(h.clients))
}

func (h *Hub) sendToClientLocked(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		close(client.send)
		delete(h.clients, client)
		if matches := h.clientMatches[client]; matches != nil {
			for matchID := range matches {
				if subscribers := h.matchSubscribers[matchID]; subscribers != nil {
					delete(subscribers, client)
					if len(subscribers) == 0 {
						delete(h.matchSubscribers, matchID)
					}
				}
			}
			delete(h.clientMatches, client)
		}
	}
}

// BroadcastMessage sends message to every connected spectator.
func (h *Hub) BroadcastMessage(message []byte) {
	h.broadcast <- message
}

// BroadcastToMatch sends message to spectators subscribed to one match.
func (h *Hub) BroadcastToMatch(matchID string, message []byte) {
	h.matchBroadcast <- matchBroadcastMessage{MatchID: matchID, Message: message}
}

// JoinMatch subscribes a client to a match's event stream.
func (h *Hub) JoinMatch(client *Client, matchID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[client]; !exists {
		return
	}

	if h.matchSubscribers[matchID] == nil {
		h.matchSubscribers[matchID] = make(map[*Client]bool)
	}
	h.matchSubscribers[matchID][client] = true

	if h.clientMatches[client] == nil {
		h.clientMatches[client] = make(map[string]bool)
	}
	h.clientMatches[client][matchID] = true
}

// LeaveMatch unsubscribes a client from a match's event stream.
func (h *Hub) LeaveMatch(client *Client, matchID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subscribers := h.matchSubscribers[matchID]; subscribers != nil {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.matchSubscribers, matchID)
		}
	}

	if matches := h.clientMatches[client]; matches != nil {
		delete(matches, matchID)
		if len(matches) == 0 {
			delete(h.clientMatches, client)
		}
	}
}

// GetClientCount returns the number of connected spectators.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
