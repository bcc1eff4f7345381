package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vaultpass/batpass-go/internal/middleware"
	"github.com/vaultpass/batpass-go/internal/service"
)

// StatsHandler handles HTTP requests for generation statistics.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// HandleSummary handles GET /api/v1/stats requests.
func (h *StatsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	logAccess(r)
	resp, err := h.service.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleRecent handles GET /api/v1/stats/recent requests.
func (h *StatsHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	logAccess(r)
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("limit must be an integer"))
			return
		}
		limit = n
	}

	events, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// logAccess records which operator read the stats.
func logAccess(r *http.Request) {
	subject, _ := middleware.SubjectFromContext(r.Context())
	slog.InfoContext(r.Context(), "stats accessed", "subject", subject, "path", r.URL.Path)
}
