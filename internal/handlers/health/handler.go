package health

import (
	"conference/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const statusOK = "ok"

type Handler struct{}

func New() Handler {
	return Handler{}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health answers liveness checks.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	response.WithPayload(w, http.StatusOK, map[string]string{"status": statusOK})
}
