package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chathandler "github.com/xmrt-ecosystem/eliza-chat/backend/internal/handler/chat"
	profilehandler "github.com/xmrt-ecosystem/eliza-chat/backend/internal/handler/profile"
	"github.com/xmrt-ecosystem/eliza-chat/backend/internal/handler/stream"
	"github.com/xmrt-ecosystem/eliza-chat/backend/internal/handler/ws"
	middlewarePkg "github.com/xmrt-ecosystem/eliza-chat/backend/internal/middleware"
	profileModel "github.com/xmrt-ecosystem/eliza-chat/backend/internal/model/profile"
	chatService "github.com/xmrt-ecosystem/eliza-chat/backend/internal/service/chat"
	"github.com/xmrt-ecosystem/eliza-chat/backend/internal/service/reply"
	"github.com/xmrt-ecosystem/eliza-chat/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chrome profileModel.Profile, chatSvc *chatService.Service, processor *reply.Processor) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	profileHandler := profilehandler.New(chrome)
	chatHandler := chathandler.New(chatSvc, processor)
	streamHandler := stream.New(chatSvc, processor)
	wsHandler := ws.New(chatSvc, processor)

	r.Route("/api", func(api chi.Router) {
		profileHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)

		api.Get("/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			// The chat input widget suppresses empty submissions; this
			// endpoint mirrors that at the transport edge.
			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})
	})

	return r
}
