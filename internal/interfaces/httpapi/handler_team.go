package httpapi

import (
	"net/http"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/reference"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/teamstats"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams := h.teamService.Teams(ctx)
	items := make([]referenceTeamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, referenceTeamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisions")
	defer span.End()

	divisions := h.teamService.Divisions(ctx)
	payload := make(map[string][]referenceTeamDTO, len(divisions))
	for name, teams := range divisions {
		items := make([]referenceTeamDTO, 0, len(teams))
		for _, t := range teams {
			items = append(items, referenceTeamToDTO(t))
		}
		payload[name] = items
	}

	writeSuccess(ctx, w, http.StatusOK, payload)
}

func (h *Handler) ListTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamStats")
	defer span.End()

	division := r.URL.Query().Get("division")
	conference := r.URL.Query().Get("conference")

	rows, err := h.teamService.TeamStats(ctx, division, conference)
	if err != nil {
		h.logger.WarnContext(ctx, "list team stats failed", "division", division, "conference", conference, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamStatsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, teamStatsToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHealth")
	defer span.End()

	status, err := h.teamService.Health(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "health check failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := healthDTO{
		Status:      "ok",
		PlayerCount: status.PlayerCount,
		Stale:       status.Stale,
	}
	if status.Stale {
		dto.Status = "stale"
	}
	if status.LastUpdated != nil {
		formatted := formatTimeUTC(*status.LastUpdated)
		dto.LastUpdated = &formatted
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

type referenceTeamDTO struct {
	Abbrev     string `json:"abbrev"`
	Name       string `json:"name"`
	Division   string `json:"division"`
	Conference string `json:"conference"`
}

type teamStatsDTO struct {
	Team            string   `json:"team"`
	Name            string   `json:"name"`
	Division        string   `json:"division"`
	Conference      string   `json:"conference"`
	Season          string   `json:"season"`
	AvgSkatingSpeed *float64 `json:"avgSkatingSpeed,omitempty"`
	AvgShotSpeed    *float64 `json:"avgShotSpeed,omitempty"`
	BurstsPerGame   *float64 `json:"burstsPerGame,omitempty"`
	TotalHits       *int     `json:"totalHits,omitempty"`
	TotalBlocks     *int     `json:"totalBlocks,omitempty"`
	SkaterCount     int      `json:"skaterCount"`
	Wins            *int     `json:"wins,omitempty"`
	Losses          *int     `json:"losses,omitempty"`
	OTLosses        *int     `json:"otLosses,omitempty"`
	Points          *int     `json:"points,omitempty"`
	GoalDiff        *int     `json:"goalDiff,omitempty"`
	PowerPlayPct    *float64 `json:"powerPlayPct,omitempty"`
	PenaltyKillPct  *float64 `json:"penaltyKillPct,omitempty"`
	PointsPctl      *int     `json:"pointsPctl,omitempty"`
	GoalDiffPctl    *int     `json:"goalDiffPctl,omitempty"`
	PowerPlayPctl   *int     `json:"powerPlayPctl,omitempty"`
	PenaltyKillPctl *int     `json:"penaltyKillPctl,omitempty"`
	SpeedPctl       *int     `json:"speedPctl,omitempty"`
	ShotSpeedPctl   *int     `json:"shotSpeedPctl,omitempty"`
	BurstsPctl      *int     `json:"burstsPctl,omitempty"`
	HitsPctl        *int     `json:"hitsPctl,omitempty"`
	BlocksPctl      *int     `json:"blocksPctl,omitempty"`
	UpdatedAt       string   `json:"updatedAt"`
}

type healthDTO struct {
	Status      string  `json:"status"`
	PlayerCount int     `json:"playerCount"`
	LastUpdated *string `json:"lastUpdated,omitempty"`
	Stale       bool    `json:"stale"`
}

func referenceTeamToDTO(v reference.Team) referenceTeamDTO {
	return referenceTeamDTO{
		Abbrev:     v.Abbrev,
		Name:       v.Name,
		Division:   v.Division,
		Conference: v.Conference,
	}
}

func teamStatsToDTO(v teamstats.Aggregate) teamStatsDTO {
	return teamStatsDTO{
		Team:            v.Team,
		Name:            v.Name,
		Division:        v.Division,
		Conference:      v.Conference,
		Season:          v.Season,
		AvgSkatingSpeed: v.AvgSkatingSpeed,
		AvgShotSpeed:    v.AvgShotSpeed,
		BurstsPerGame:   v.BurstsPerGame,
		TotalHits:       v.TotalHits,
		TotalBlocks:     v.TotalBlocks,
		SkaterCount:     v.SkaterCount,
		Wins:            v.Wins,
		Losses:          v.Losses,
		OTLosses:        v.OTLosses,
		Points:          v.Points,
		GoalDiff:        v.GoalDiff,
		PowerPlayPct:    v.PowerPlayPct,
		PenaltyKillPct:  v.PenaltyKillPct,
		PointsPctl:      v.PointsPctl,
		GoalDiffPctl:    v.GoalDiffPctl,
		PowerPlayPctl:   v.PowerPlayPctl,
		PenaltyKillPctl: v.PenaltyKillPctl,
		SpeedPctl:       v.SpeedPctl,
		ShotSpeedPctl:   v.ShotSpeedPctl,
		BurstsPctl:      v.BurstsPctl,
		HitsPctl:        v.HitsPctl,
		BlocksPctl:      v.BlocksPctl,
		UpdatedAt:       formatTimeUTC(v.UpdatedAt),
	}
}
