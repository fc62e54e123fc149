package ws

import (
	"errors"

	"github.com/gorilla/websocket"
)

const sendBufferSize = 128

// Client wraps a websocket connection with buffered reader and writer
// pumps. R is closed when the peer goes away.
type Client struct {
	Conn *websocket.Conn
	R    chan []byte
	W    chan []byte
}

func NewClient(conn *websocket.Conn) *Client {
	if conn == nil {
		return nil
	}

	c := &Client{
		Conn: conn,
		R:    make(chan []byte, sendBufferSize),
		W:    make(chan []byte, sendBufferSize),
	}

	go c.runReader()
	go c.runWriter()
	return c
}

func (c *Client) runReader() {
	defer close(c.R)

	for {
		t, msg, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		if t == websocket.CloseMessage {
			return
		}

		if t == websocket.TextMessage {
			c.R <- msg
		}
	}
}

func (c *Client) runWriter() {
	for msg := range c.W {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}

	_ = c.Conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Write queues msg for delivery. It returns an error instead of panicking
// when the writer channel is already closed.
func (c *Client) Write(msg []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("connection is closed")
		}
	}()

	select {
	case c.W <- msg:
	default:
		return errors.New("write buffer is full")
	}

	return nil
}

// Close shuts down the writer pump. The reader pump stops when the
// underlying connection closes.
func (c *Client) Close() {
	defer func() { recover() }()
	close(c.W)
}
