package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xmrt-ecosystem/eliza-chat/backend/internal/model/profile"
	"github.com/xmrt-ecosystem/eliza-chat/backend/pkg/utils"
)

// Handler serves the static page chrome (title, tagline, sidebar statuses).
type Handler struct {
	profile profile.Profile
}

// New creates the profile handler.
func New(p profile.Profile) *Handler {
	return &Handler{profile: p}
}

// RegisterRoutes registers the profile route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.handleGetProfile)
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.profile)
}
