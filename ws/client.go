package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client wraps one websocket connection. All outgoing traffic goes through
// the buffered send channel so broadcasts never write to the connection
// concurrently; WritePump is the only writer.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, 64),
	}
}

// WritePump drains the send channel onto the connection. Run it in its own
// goroutine; it returns when the channel is closed or a write fails.
func (c *Client) WritePump() {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// Send queues a text frame for the client. A client whose buffer is full
// loses the frame rather than stalling the broadcast.
func (c *Client) Send(text string) {
	select {
	case c.send <- []byte(text):
	default:
	}
}

// Close shuts the send channel and the underlying connection. Safe to call
// more than once.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}
