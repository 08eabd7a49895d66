package stream

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/xmrt-ecosystem/eliza-chat/backend/internal/model/chat"
	chatservice "github.com/xmrt-ecosystem/eliza-chat/backend/internal/service/chat"
	"github.com/xmrt-ecosystem/eliza-chat/backend/internal/service/reply"
	"github.com/xmrt-ecosystem/eliza-chat/backend/pkg/utils"
)

// Handler pushes processed turns to the client via Server-Sent Events.
type Handler struct {
	chatSvc   *chatservice.Service
	processor *reply.Processor
}

// New creates a new stream handler.
func New(chatSvc *chatservice.Service, processor *reply.Processor) *Handler {
	return &Handler{
		chatSvc:   chatSvc,
		processor: processor,
	}
}

// StreamResponse is one event frame of the SSE stream.
type StreamResponse struct {
	Event     string     `json:"event"`
	SessionID string     `json:"sessionId,omitempty"`
	Turn      *chat.Turn `json:"turn,omitempty"`
	Finished  bool       `json:"finished,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// HandleStreamRequest processes one submitted message and streams the
// resulting user and assistant turns followed by a completion signal.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	if _, err := h.chatSvc.GetSession(ctx, sessionID); err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("session lookup failed: %v", err))
		return err
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "start",
		SessionID: sessionID,
	})

	turns, err := h.processor.Handle(ctx, sessionID, userMessage)
	if err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("processing failed: %v", err))
		return err
	}

	for i := range turns {
		h.sendSSE(w, flusher, StreamResponse{
			Event:     "turn",
			SessionID: sessionID,
			Turn:      &turns[i],
		})
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "end",
		SessionID: sessionID,
		Finished:  true,
	})

	log.Printf("[stream] completed exchange for session=%s", sessionID)
	return nil
}

func (h *Handler) sendSSE(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	utils.SendSSEChunk(w, flusher, response)
}

func (h *Handler) sendSSEError(w http.ResponseWriter, flusher http.Flusher, errorMsg string) {
	h.sendSSE(w, flusher, StreamResponse{
		Event: "error",
		Error: errorMsg,
	})
}
