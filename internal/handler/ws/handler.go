// Package ws carries the realtime chat protocol: one websocket per session,
// JSON frames in both directions.
package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	chatservice "github.com/feelbetterai/backend/internal/service/chat"
	"github.com/feelbetterai/backend/internal/store"
	"github.com/feelbetterai/backend/pkg/utils"
)

// Handler upgrades chat connections and pumps messages through the pipeline.
type Handler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleConnection)
}

type inboundFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type statusFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (h *Handler) handleConnection(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	// Connection ID keeps log lines apart when a session reconnects.
	connID := uuid.NewString()
	log.Printf("[ws] connection %s established for session=%s", connID, sessionID)
	if err := conn.WriteJSON(statusFrame{Type: "connection_established", Message: "Connected to Feel-Better AI"}); err != nil {
		return
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error on connection %s: %v", connID, err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.writeError(conn, "invalid message format")
			continue
		}

		if frame.Type != "chat_message" {
			h.writeError(conn, "unsupported message type")
			continue
		}

		reply, err := h.chatSvc.HandleUserMessage(r.Context(), sessionID, frame.Content)
		if err != nil {
			log.Printf("[ws] pipeline error for session=%s: %v", sessionID, err)
			h.writeError(conn, "failed to process message")
			continue
		}

		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("[ws] write error for session=%s: %v", sessionID, err)
			return
		}
	}
}

func (h *Handler) writeError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(statusFrame{Type: "error", Message: message}); err != nil {
		log.Printf("[ws] failed to write error frame: %v", err)
	}
}
