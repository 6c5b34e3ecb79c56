package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/usecase"
)

// Background refreshes outlive the request that started them.
const backgroundRefreshTimeout = 15 * time.Minute

// StartRefresh kicks off a refresh in the background and returns immediately.
// A refresh already in flight is reported as a conflict instead of queueing.
func (h *Handler) StartRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartRefresh")
	defer span.End()

	if h.refreshService == nil {
		writeError(ctx, w, fmt.Errorf("%w: refresh service is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	if h.refreshService.Running() {
		writeError(ctx, w, fmt.Errorf("%w: refresh already in progress", usecase.ErrConflict))
		return
	}

	background, cancel := context.WithTimeout(context.WithoutCancel(ctx), backgroundRefreshTimeout)
	go func() {
		defer cancel()
		result, err := h.refreshService.Run(background)
		if err != nil {
			h.logger.ErrorContext(background, "background refresh failed", "error", err)
			return
		}
		h.logger.InfoContext(background, "background refresh finished",
			"season", result.Season,
			"players_updated", result.PlayersUpdated,
			"goalies_updated", result.GoaliesUpdated,
			"teams_updated", result.TeamsUpdated,
			"partial", result.Partial,
			"duration_ms", result.DurationMs,
		)
	}()

	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// RunRefresh blocks until the refresh finishes and returns its summary.
func (h *Handler) RunRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefresh")
	defer span.End()

	if h.refreshService == nil {
		writeError(ctx, w, fmt.Errorf("%w: refresh service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.refreshService.Run(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ClearData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearData")
	defer span.End()

	if h.refreshService == nil {
		writeError(ctx, w, fmt.Errorf("%w: refresh service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	if err := h.refreshService.Clear(ctx); err != nil {
		h.logger.ErrorContext(ctx, "clear failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "cleared"})
}
