package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBuffer = 16
)

// connection wraps one websocket. Writes go through the send channel so the
// write loop is the only goroutine touching the socket for output.
type connection struct {
	ws     *websocket.Conn
	send   chan []byte
	userID string

	// mu guards stopWatch and stopped. The watch can close the connection
	// from its own goroutine before the handler has bound the stop func.
	mu        sync.Mutex
	stopWatch func()
	stopped   bool

	closed chan struct{}
	once   sync.Once
}

func newConnection(ws *websocket.Conn, userID string) *connection {
	return &connection{
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		userID: userID,
		closed: make(chan struct{}),
	}
}

// deliver hands a payload to the write loop. A connection whose buffer is
// full is assumed dead and gets closed rather than blocking the caller.
func (c *connection) deliver(payload []byte) {
	select {
	case <-c.closed:
	case c.send <- payload:
	default:
		c.close()
	}
}

// bindStopWatch hands the connection the cancel func for its conversation
// watch. When the connection already closed, the watch is stopped on the spot
// so it cannot outlive the socket.
func (c *connection) bindStopWatch(stop func()) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		stop()
		return
	}
	c.stopWatch = stop
	c.mu.Unlock()
}

func (c *connection) close() {
	c.once.Do(func() {
		close(c.closed)
		c.mu.Lock()
		stop := c.stopWatch
		c.stopWatch = nil
		c.stopped = true
		c.mu.Unlock()
		if stop != nil {
			stop()
		}
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		_ = c.ws.Close()
	})
}

func (c *connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()
	for {
		select {
		case <-c.closed:
			return
		case payload := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop drains the socket so pings and the peer's close frame are
// processed. Clients never send application data on this socket.
func (c *connection) readLoop(onClose func()) {
	defer onClose()
	c.ws.SetReadLimit(512)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}
