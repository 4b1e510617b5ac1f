package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 64
)

// Client is one realtime connection bound to a session room. The quiz flow is
// driven over HTTP; the socket only carries server-to-client fan-out, so the
// read pump just keeps the connection alive and detects the disconnect.
type Client struct {
	ID       string
	Room     string
	UserID   string
	Username string
	IsHost   bool

	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	once sync.Once

	// OnClose runs once when the connection goes away, after the client left
	// the hub. The gateway uses it for player-left handling.
	OnClose func(*Client)
}

func NewClient(hub *Hub, conn *websocket.Conn, id, room, userID, username string, isHost bool) *Client {
	return &Client{
		ID:       id,
		Room:     room,
		UserID:   userID,
		Username: username,
		IsHost:   isHost,
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
	}
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// ReadPump consumes the connection until it drops, then unregisters the
// client and fires OnClose.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
		if c.OnClose != nil {
			c.OnClose(c)
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithField("component", "hub").WithError(err).Debug("read pump closed")
			}
			return
		}
	}
}

// WritePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
