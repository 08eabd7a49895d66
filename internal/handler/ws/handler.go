package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatservice "github.com/xmrt-ecosystem/eliza-chat/backend/internal/service/chat"
	"github.com/xmrt-ecosystem/eliza-chat/backend/internal/service/reply"
	"github.com/xmrt-ecosystem/eliza-chat/backend/pkg/utils"
)

// Handler runs the chat exchange over a WebSocket connection.
type Handler struct {
	chatSvc   *chatservice.Service
	processor *reply.Processor
	upgrader  websocket.Upgrader
}

// New creates the WebSocket handler.
func New(chatSvc *chatservice.Service, processor *reply.Processor) *Handler {
	return &Handler{
		chatSvc:   chatSvc,
		processor: processor,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the WebSocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type chatMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, chatservice.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for session=%s", sessionID)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[ws] read error for session=%s: %v", sessionID, err)
			}
			return
		}

		var inbound inboundMessage
		if err := json.Unmarshal(raw, &inbound); err != nil {
			h.sendError(conn, sessionID, "invalid message envelope")
			continue
		}

		switch inbound.Type {
		case "chat":
			h.handleChat(r, conn, sessionID, inbound.Data)
		default:
			h.sendError(conn, sessionID, "unsupported message type: "+inbound.Type)
		}
	}
}

func (h *Handler) handleChat(r *http.Request, conn *websocket.Conn, sessionID string, data json.RawMessage) {
	var msg chatMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sendError(conn, sessionID, "invalid chat payload")
		return
	}

	turns, err := h.processor.Handle(r.Context(), sessionID, msg.Text)
	if err != nil {
		h.sendError(conn, sessionID, err.Error())
		return
	}

	for i := range turns {
		h.send(conn, outgoingMessage{
			Type:      "turn",
			SessionID: sessionID,
			Data:      turns[i],
			Timestamp: time.Now().UnixMilli(),
		})
	}
}

func (h *Handler) send(conn *websocket.Conn, msg outgoingMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[ws] write failed for session=%s: %v", msg.SessionID, err)
	}
}

func (h *Handler) sendError(conn *websocket.Conn, sessionID, message string) {
	h.send(conn, outgoingMessage{
		Type:      "error",
		SessionID: sessionID,
		Data:      map[string]string{"error": message},
		Timestamp: time.Now().UnixMilli(),
	})
}
