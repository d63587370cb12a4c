package main

import "sync"

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

// Hub manages connected spectators and routes them to battles
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	battles    *BattleManager
	// per-IP and total connection slots, taken from HTTP handlers
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int

	store    *EventStore
	auth     *Auth
	defaults BattleConfig
}

// NewHub creates a new Hub. db and store may be nil.
func NewHub(db *DB, store *EventStore, defaults BattleConfig, fps int) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		battles:    NewBattleManager(store, fps),
		ipConns:    make(map[string]int),
		store:      store,
		auth:       NewAuth(db),
		defaults:   defaults,
	}
}

// Admit reserves a connection slot for ip. Every successful Admit must be
// paired with a Release.
func (h *Hub) Admit(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns || h.ipConns[ip] >= maxConnsPerIP {
		return false
	}
	h.ipConns[ip]++
	h.totalConns++
	return true
}

// Release frees a slot taken by Admit
func (h *Hub) Release(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if n := h.ipConns[ip] - 1; n > 0 {
		h.ipConns[ip] = n
	} else {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// Run processes register/unregister events
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			// stop the battle feed before the send channel goes away
			client.leave()
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the tracked connection count
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}
