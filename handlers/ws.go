package handlers

import (
	"log"
	"time"

	"bankfeed-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// WSHandler pushes account events (like a finished bank link) to
// connected clients so the UI can refresh without polling.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-Alive Configuration (Critical for cloud hosting)
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		log.Printf("✅ Client connected: %v", userID)
	})

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		log.Printf("🔌 Client disconnected: %v", userID)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket Error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request and ties the session to the user. The
// identity travels as a session key so concurrent upgrades never share
// handler state.
func (h *WSHandler) HandleWS(c *gin.Context) {
	keys := map[string]interface{}{
		"user_id": middleware.GetUserID(c),
	}

	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// BroadcastUpdate signals all sessions of one user.
func (h *WSHandler) BroadcastUpdate(userID string, updateType string) {
	msg := []byte(`{"type": "` + updateType + `"}`)

	err := h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		id, exists := q.Get("user_id")
		return exists && id == userID
	})

	if err != nil {
		log.Printf("⚠️ Error broadcasting to user %s: %v", userID, err)
	}
}
