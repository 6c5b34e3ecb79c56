package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/goalie"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/usecase"
)

func (h *Handler) ListGoalies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGoalies")
	defer span.End()

	scope := teamScopeFromQuery(r)
	if err := h.validateRequest(ctx, scope); err != nil {
		writeError(ctx, w, err)
		return
	}

	profiles, err := h.goalieService.List(ctx, usecase.PlayerQuery{
		Team:       scope.Team,
		Division:   scope.Division,
		Conference: scope.Conference,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list goalies failed", "team", scope.Team, "division", scope.Division, "conference", scope.Conference, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]goalieDTO, 0, len(profiles))
	for _, g := range profiles {
		items = append(items, goalieToDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGoalie(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGoalie")
	defer span.End()

	goalieID, err := strconv.ParseInt(r.PathValue("goalieID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: goalie id must be an integer", usecase.ErrInvalidInput))
		return
	}

	profile, err := h.goalieService.Get(ctx, goalieID)
	if err != nil {
		h.logger.WarnContext(ctx, "get goalie failed", "goalie_id", goalieID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, goalieToDTO(profile))
}

type goalieDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Team         string          `json:"team"`
	JerseyNumber *int            `json:"jerseyNumber,omitempty"`
	Stats        *goalieStatsDTO `json:"stats,omitempty"`
}

type goalieStatsDTO struct {
	Season            string   `json:"season"`
	GamesPlayed       int      `json:"gamesPlayed"`
	Wins              int      `json:"wins"`
	Losses            int      `json:"losses"`
	OTLosses          int      `json:"otLosses"`
	Shutouts          int      `json:"shutouts"`
	GoalsAgainstAvg   *float64 `json:"goalsAgainstAvg,omitempty"`
	SavePct           *float64 `json:"savePct,omitempty"`
	HighDangerSavePct *float64 `json:"highDangerSavePct,omitempty"`
	GAAPctl           *int     `json:"gaaPctl,omitempty"`
	SavePctPctl       *int     `json:"savePctPctl,omitempty"`
	HighDangerPctl    *int     `json:"highDangerPctl,omitempty"`
	UpdatedAt         string   `json:"updatedAt"`
}

func goalieToDTO(v goalie.Profile) goalieDTO {
	dto := goalieDTO{
		ID:           v.ID,
		Name:         v.Name,
		Team:         v.Team,
		JerseyNumber: v.JerseyNumber,
	}
	if v.Stats != nil {
		dto.Stats = &goalieStatsDTO{
			Season:            v.Stats.Season,
			GamesPlayed:       v.Stats.GamesPlayed,
			Wins:              v.Stats.Wins,
			Losses:            v.Stats.Losses,
			OTLosses:          v.Stats.OTLosses,
			Shutouts:          v.Stats.Shutouts,
			GoalsAgainstAvg:   v.Stats.GoalsAgainstAvg,
			SavePct:           pctPtr(v.Stats.SavePct),
			HighDangerSavePct: pctPtr(v.Stats.HighDangerSavePct),
			GAAPctl:           v.Stats.GAAPctl,
			SavePctPctl:       v.Stats.SavePctPctl,
			HighDangerPctl:    v.Stats.HighDangerPctl,
			UpdatedAt:         formatTimeUTC(v.Stats.UpdatedAt),
		}
	}
	return dto
}
