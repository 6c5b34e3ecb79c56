package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/player"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	scope := teamScopeFromQuery(r)
	if err := h.validateRequest(ctx, scope); err != nil {
		writeError(ctx, w, err)
		return
	}

	profiles, err := h.playerService.List(ctx, usecase.PlayerQuery{
		Team:       scope.Team,
		Division:   scope.Division,
		Conference: scope.Conference,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team", scope.Team, "division", scope.Division, "conference", scope.Conference, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID, err := strconv.ParseInt(r.PathValue("playerID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: player id must be an integer", usecase.ErrInvalidInput))
		return
	}

	profile, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(profile))
}

type playerDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Team         string          `json:"team"`
	Position     string          `json:"position"`
	JerseyNumber *int            `json:"jerseyNumber,omitempty"`
	Stats        *playerStatsDTO `json:"stats,omitempty"`
	Edge         *playerEdgeDTO  `json:"edge,omitempty"`
}

type playerStatsDTO struct {
	Season         string   `json:"season"`
	GamesPlayed    int      `json:"gamesPlayed"`
	Goals          int      `json:"goals"`
	Assists        int      `json:"assists"`
	Points         int      `json:"points"`
	PlusMinus      int      `json:"plusMinus"`
	AvgTOIMinutes  float64  `json:"avgToiMinutes"`
	FaceoffWinPct  *float64 `json:"faceoffWinPct,omitempty"`
	ShotsPer60     *float64 `json:"shotsPer60,omitempty"`
	PointsPer60    *float64 `json:"pointsPer60,omitempty"`
	Hits           int      `json:"hits"`
	BlockedShots   int      `json:"blockedShots"`
	HitsPctl       *int     `json:"hitsPctl,omitempty"`
	BlocksPctl     *int     `json:"blocksPctl,omitempty"`
	PointsPctl     *int     `json:"pointsPctl,omitempty"`
	TOIPctl        *int     `json:"toiPctl,omitempty"`
	UpdatedAt      string   `json:"updatedAt"`
}

type playerEdgeDTO struct {
	Season            string   `json:"season"`
	MaxSkatingSpeed   *float64 `json:"maxSkatingSpeed,omitempty"`
	AvgSkatingSpeed   *float64 `json:"avgSkatingSpeed,omitempty"`
	SpeedBursts20Plus *int     `json:"speedBursts20Plus,omitempty"`
	SpeedBursts22Plus *int     `json:"speedBursts22Plus,omitempty"`
	MaxSpeedPctl      *int     `json:"maxSpeedPctl,omitempty"`
	BurstsPctl        *int     `json:"burstsPctl,omitempty"`
	Bursts22Pctl      *int     `json:"bursts22Pctl,omitempty"`
	MaxShotSpeed      *float64 `json:"maxShotSpeed,omitempty"`
	AvgShotSpeed      *float64 `json:"avgShotSpeed,omitempty"`
	MaxShotSpeedPctl  *int     `json:"maxShotSpeedPctl,omitempty"`
	OffZonePct        *float64 `json:"offZonePct,omitempty"`
	DefZonePct        *float64 `json:"defZonePct,omitempty"`
	NeuZonePct        *float64 `json:"neuZonePct,omitempty"`
	ZoneStartsOffPct  *float64 `json:"zoneStartsOffPct,omitempty"`
	ZoneStartsPctl    *int     `json:"zoneStartsPctl,omitempty"`
	MilesPerGame      *float64 `json:"milesPerGame,omitempty"`
	DistancePctl      *int     `json:"distancePctl,omitempty"`
	ShotsPer60Pctl    *int     `json:"shotsPer60Pctl,omitempty"`
	UpdatedAt         string   `json:"updatedAt"`
}

func playerToDTO(v player.Profile) playerDTO {
	dto := playerDTO{
		ID:           v.ID,
		Name:         v.Name,
		Team:         v.Team,
		Position:     v.Position,
		JerseyNumber: v.JerseyNumber,
	}
	if v.Stats != nil {
		dto.Stats = &playerStatsDTO{
			Season:         v.Stats.Season,
			GamesPlayed:    v.Stats.GamesPlayed,
			Goals:          v.Stats.Goals,
			Assists:        v.Stats.Assists,
			Points:         v.Stats.Points,
			PlusMinus:      v.Stats.PlusMinus,
			AvgTOIMinutes:  round1(v.Stats.AvgTOIMinutes),
			FaceoffWinPct:  pctPtr(v.Stats.FaceoffWinPct),
			ShotsPer60:     v.Stats.ShotsPer60,
			PointsPer60:    v.Stats.PointsPer60,
			Hits:           v.Stats.Hits,
			BlockedShots:   v.Stats.BlockedShots,
			HitsPctl:       v.Stats.HitsPctl,
			BlocksPctl:     v.Stats.BlocksPctl,
			PointsPctl:     v.Stats.PointsPctl,
			TOIPctl:        v.Stats.TOIPctl,
			UpdatedAt:      formatTimeUTC(v.Stats.UpdatedAt),
		}
	}
	if v.Edge != nil {
		dto.Edge = &playerEdgeDTO{
			Season:            v.Edge.Season,
			MaxSkatingSpeed:   v.Edge.MaxSkatingSpeed,
			AvgSkatingSpeed:   v.Edge.AvgSkatingSpeed,
			SpeedBursts20Plus: v.Edge.SpeedBursts20Plus,
			SpeedBursts22Plus: v.Edge.SpeedBursts22Plus,
			MaxSpeedPctl:      v.Edge.MaxSpeedPctl,
			BurstsPctl:        v.Edge.BurstsPctl,
			Bursts22Pctl:      v.Edge.Bursts22Pctl,
			MaxShotSpeed:      v.Edge.MaxShotSpeed,
			AvgShotSpeed:      v.Edge.AvgShotSpeed,
			MaxShotSpeedPctl:  v.Edge.MaxShotSpeedPctl,
			OffZonePct:        v.Edge.OffZonePct,
			DefZonePct:        v.Edge.DefZonePct,
			NeuZonePct:        v.Edge.NeuZonePct,
			ZoneStartsOffPct:  v.Edge.ZoneStartsOffPct,
			ZoneStartsPctl:    v.Edge.ZoneStartsPctl,
			MilesPerGame:      v.Edge.MilesPerGame,
			DistancePctl:      v.Edge.DistancePctl,
			ShotsPer60Pctl:    v.Edge.ShotsPer60Pctl,
			UpdatedAt:         formatTimeUTC(v.Edge.UpdatedAt),
		}
	}
	return dto
}
