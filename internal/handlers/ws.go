package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/services"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/ws"
)

type WSHandler struct {
	hub      *ws.Hub
	sessions *services.SessionService
	log      *logrus.Entry
}

func NewWSHandler(hub *ws.Hub, sessions *services.SessionService) *WSHandler {
	return &WSHandler{
		hub:      hub,
		sessions: sessions,
		log:      logrus.WithField("component", "ws"),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleSession godoc
// @Summary      Realtime channel for a session
// @Description  Connect with playerId or hostId to receive session events
// @Tags         websocket
// @Param        code path string true "Session code"
// @Param        playerId query string false "Player id"
// @Param        hostId query string false "Host id"
// @Param        username query string false "Display name"
// @Router       /ws/session/{code} [get]
func (h *WSHandler) HandleSession(c *gin.Context) {
	code := c.Param("code")
	playerID := c.Query("playerId")
	hostID := c.Query("hostId")
	username := c.Query("username")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	userID := playerID
	isHost := false
	if hostID != "" {
		userID = hostID
		isHost = true
	}

	client := ws.NewClient(h.hub, conn, uuid.NewString(), code, userID, username, isHost)
	h.hub.Register(client)
	go client.WritePump()

	if !h.acknowledge(c.Request.Context(), client, code) {
		h.hub.Unregister(client)
		conn.Close()
		return
	}

	client.OnClose = h.onDisconnect
	client.ReadPump()
}

// acknowledge answers the handshake with joined-session / hosting-session, or
// an error event when the code or caller is not valid for this room.
func (h *WSHandler) acknowledge(ctx context.Context, client *ws.Client, code string) bool {
	snap, err := h.sessions.Status(ctx, code)
	if err != nil {
		h.hub.EmitTo(client.ID, ws.EventError, ws.ErrorPayload{Message: "Session not found"})
		return false
	}

	if client.IsHost {
		if snap.HostID != client.UserID {
			h.hub.EmitTo(client.ID, ws.EventError, ws.ErrorPayload{Message: "You are not the host of this session"})
			return false
		}
		h.hub.EmitTo(client.ID, ws.EventHostingSession, ws.HostingSessionPayload{
			Code:      code,
			SessionID: snap.SessionID,
		})
		return true
	}

	found := false
	for _, p := range snap.Players {
		if p.ID == client.UserID {
			found = true
			break
		}
	}
	if !found {
		h.hub.EmitTo(client.ID, ws.EventError, ws.ErrorPayload{Message: "Player not found in this session"})
		return false
	}

	h.hub.EmitTo(client.ID, ws.EventJoinedSession, ws.JoinedSessionPayload{
		Code:      code,
		SessionID: snap.SessionID,
		PlayerID:  client.UserID,
		Players:   snap.Players,
	})
	return true
}

// onDisconnect removes dropped players from their session. A host disconnect
// leaves the session running so a flaky host connection cannot abort a game.
func (h *WSHandler) onDisconnect(client *ws.Client) {
	if client.IsHost || client.UserID == "" {
		return
	}
	err := h.sessions.RemovePlayer(context.Background(), client.Room, client.UserID)
	if err != nil && err != services.ErrSessionNotFound && err != services.ErrPlayerNotFound {
		h.log.WithError(err).WithFields(logrus.Fields{
			"code":   client.Room,
			"player": client.UserID,
		}).Warn("could not remove disconnected player")
	}
}
