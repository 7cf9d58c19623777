package network

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// ErrSendBufferFull is returned when a client is not draining its messages
var ErrSendBufferFull = errors.New("send buffer full")

// Connection wraps the WebSocket connection with a buffered outbox
type Connection struct {
	ws        *websocket.Conn
	send      chan []byte
	logger    zerolog.Logger
	closeOnce sync.Once
	done      chan struct{}
}

// NewConnection creates a new connection wrapper
func NewConnection(ws *websocket.Conn, logger zerolog.Logger) *Connection {
	return &Connection{
		ws:     ws,
		send:   make(chan []byte, 256),
		logger: logger.With().Str("remote", ws.RemoteAddr().String()).Logger(),
		done:   make(chan struct{}),
	}
}

// ReadPump reads messages until the socket fails, then closes the connection
func (c *Connection) ReadPump(h MessageHandler) {
	defer c.Close()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("error reading message")
			}
			return
		}
		h.HandleMessage(c, message)
	}
}

// WritePump drains the outbox and keeps the socket alive with pings
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := c.ws.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// SendMessage queues a JSON message for the client
func (c *Connection) SendMessage(msg interface{}) error {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return websocket.ErrCloseSent
	default:
	}

	select {
	case c.send <- messageBytes:
		return nil
	default:
		c.logger.Warn().Msg("send buffer full, closing connection")
		c.Close()
		return ErrSendBufferFull
	}
}

// Close stops the write pump; safe to call more than once
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// MessageHandler interface for handling messages
type MessageHandler interface {
	HandleMessage(conn *Connection, message []byte)
}
