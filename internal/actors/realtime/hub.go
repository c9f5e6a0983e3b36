// Package realtime pushes live conversation-list snapshots to connected
// browsers over websockets. Each connection holds its own watch on the
// conversation store; the hub only tracks connections so they can be torn
// down together on shutdown.
package realtime

import (
	log "github.com/sirupsen/logrus"
)

// Hub tracks the open websocket connections per user.
type Hub struct {
	clients    map[string]map[*connection]bool
	register   chan *connection
	unregister chan *connection
	shutdown   chan struct{}
	done       chan struct{}
}

// NewHub builds a hub and starts its bookkeeping loop.
func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[string]map[*connection]bool),
		register:   make(chan *connection),
		unregister: make(chan *connection),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			if _, ok := h.clients[c.userID]; !ok {
				h.clients[c.userID] = make(map[*connection]bool)
			}
			h.clients[c.userID][c] = true
			log.WithField("user_id", c.userID).Debug("realtime client registered")
		case c := <-h.unregister:
			if conns, ok := h.clients[c.userID]; ok {
				if _, exists := conns[c]; exists {
					delete(conns, c)
					c.close()
				}
				if len(conns) == 0 {
					delete(h.clients, c.userID)
				}
			}
		case <-h.shutdown:
			for _, conns := range h.clients {
				for c := range conns {
					c.close()
				}
			}
			h.clients = nil
			close(h.done)
			// Keep draining so connections tearing down concurrently with
			// shutdown never block on their unregister send.
			for {
				select {
				case c := <-h.register:
					c.close()
				case <-h.unregister:
				}
			}
		}
	}
}

// Shutdown closes every open connection and stops the hub loop.
func (h *Hub) Shutdown() {
	close(h.shutdown)
	<-h.done
}
