package handlers

import (
	"log"
	"net/http"

	"github.com/doafacil/doafacil/internal/service"
)

// StatsHandler handles aggregate statistics requests.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Get(r.Context())
	if err != nil {
		log.Printf("Failed to load stats: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	respondSuccess(w, http.StatusOK, stats, "")
}
