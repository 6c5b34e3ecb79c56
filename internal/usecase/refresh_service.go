package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/goalie"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/meta"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/player"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/teamstats"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/platform/logging"
)

type RefreshConfig struct {
	// MinGamesPlayed excludes small-sample skaters and goalies from both
	// persistence and percentile populations.
	MinGamesPlayed int
	// Freshness is the edge snapshot age beyond which a refresh re-fetches.
	Freshness        time.Duration
	SeasonStartMonth time.Month
	// TeamFilter narrows the whole pipeline to a single franchise when set.
	TeamFilter string
	Workers    int
	Pause      time.Duration
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

type RefreshResult struct {
	Season         string     `json:"season"`
	PlayersUpdated int        `json:"players_updated"`
	GoaliesUpdated int        `json:"goalies_updated"`
	TeamsUpdated   int        `json:"teams_updated"`
	EdgeFetches    BatchStats `json:"edge_fetches"`
	Partial        bool       `json:"partial"`
	DurationMs     int64      `json:"duration_ms"`
}

// RefreshService orchestrates one full refresh: league stats, staleness-gated
// edge snapshots, goalie stats, and team aggregates, in that order. Secondary
// feed failures degrade the run; only the initial skater fetch aborts it.
type RefreshService struct {
	provider  NHLProvider
	players   player.Repository
	goalies   goalie.Repository
	teamStats teamstats.Repository
	meta      meta.Repository
	batcher   *FetchBatcher
	cfg       RefreshConfig
	logger    *logging.Logger
	running   atomic.Bool
}

func NewRefreshService(
	provider NHLProvider,
	players player.Repository,
	goalies goalie.Repository,
	teamStats teamstats.Repository,
	metaRepo meta.Repository,
	cfg RefreshConfig,
	logger *logging.Logger,
) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MinGamesPlayed <= 0 {
		cfg.MinGamesPlayed = 10
	}
	if cfg.Freshness <= 0 {
		cfg.Freshness = DefaultFreshness
	}
	if cfg.SeasonStartMonth == 0 {
		cfg.SeasonStartMonth = DefaultSeasonStartMonth
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &RefreshService{
		provider:  provider,
		players:   players,
		goalies:   goalies,
		teamStats: teamStats,
		meta:      metaRepo,
		batcher:   NewFetchBatcher(FetchBatcherConfig{Workers: cfg.Workers, Pause: cfg.Pause, Logger: logger}),
		cfg:       cfg,
		logger:    logger,
	}
}

// Running reports whether a refresh is currently in flight.
func (s *RefreshService) Running() bool {
	return s.running.Load()
}

func (s *RefreshService) Run(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.Run")
	defer span.End()

	if s.provider == nil || s.players == nil || s.goalies == nil || s.teamStats == nil || s.meta == nil {
		return RefreshResult{}, fmt.Errorf("%w: refresh service is not fully configured", ErrDependencyUnavailable)
	}
	if !s.running.CompareAndSwap(false, true) {
		return RefreshResult{}, fmt.Errorf("%w: refresh already in progress", ErrConflict)
	}
	defer s.running.Store(false)

	started := s.cfg.Now()
	season := SeasonID(started, s.cfg.SeasonStartMonth)
	result := RefreshResult{Season: season}

	skaters, err := s.provider.FetchSkaterStats(ctx, season)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("%w: fetch skater stats season=%s: %v", ErrDependencyUnavailable, season, err)
	}

	qualified := s.filterSkaters(skaters)
	s.logger.InfoContext(ctx, "skater stats fetched",
		"season", season,
		"total", len(skaters),
		"qualified", len(qualified),
		"min_games", s.cfg.MinGamesPlayed,
	)

	// An empty roster aborts before any write: wiping the store because the
	// provider returned nothing would destroy the last good snapshot.
	if len(qualified) == 0 {
		s.logger.WarnContext(ctx, "no qualified skaters returned, leaving store untouched",
			"season", season,
			"total", len(skaters),
		)
		return result, nil
	}

	jerseys := s.fetchJerseyNumbers(ctx, season, qualified)
	players, seasonStats := buildSkaterRows(season, qualified, jerseys, started)

	if err := s.players.UpsertPlayers(ctx, players); err != nil {
		return RefreshResult{}, fmt.Errorf("upsert players: %w", err)
	}
	if err := s.players.ReplaceSeasonStats(ctx, seasonStats); err != nil {
		return RefreshResult{}, fmt.Errorf("replace skater season stats: %w", err)
	}

	edgeUpdated, err := s.players.EdgeUpdatedAt(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "read edge timestamps failed, treating all snapshots as stale", "error", err)
		edgeUpdated = nil
		result.Partial = true
	}

	ids := make([]int64, 0, len(qualified))
	for _, row := range qualified {
		ids = append(ids, row.PlayerID)
	}
	fresh, stale := PartitionByAge(ids, edgeUpdated, s.cfg.Freshness, started)
	s.logger.InfoContext(ctx, "edge staleness partitioned",
		"fresh", len(fresh),
		"stale", len(stale),
		"max_age", s.cfg.Freshness,
	)

	snapshots, batchStats, err := s.batcher.FetchEdgeDetails(ctx, stale, s.provider.FetchEdgeDetail)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("fetch edge snapshots: %w", err)
	}
	result.EdgeFetches = batchStats
	if batchStats.Failed > 0 {
		result.Partial = true
	}

	edgeRows := buildEdgeRows(season, snapshots, qualified, started)
	if len(edgeRows) > 0 {
		if err := s.players.ReplaceEdgeStats(ctx, edgeRows); err != nil {
			return RefreshResult{}, fmt.Errorf("replace edge stats: %w", err)
		}
	}
	result.PlayersUpdated = len(edgeRows)

	goaliesUpdated, goaliePartial := s.refreshGoalies(ctx, season, jerseys, started)
	result.GoaliesUpdated = goaliesUpdated
	result.Partial = result.Partial || goaliePartial

	teamsUpdated, teamPartial, err := s.refreshTeamAggregates(ctx, season, started)
	if err != nil {
		return RefreshResult{}, err
	}
	result.TeamsUpdated = teamsUpdated
	result.Partial = result.Partial || teamPartial

	if err := s.meta.SetLastUpdated(ctx, started); err != nil {
		return RefreshResult{}, fmt.Errorf("record last updated: %w", err)
	}

	result.DurationMs = time.Since(started).Milliseconds()
	s.logger.InfoContext(ctx, "refresh complete",
		"season", season,
		"players_updated", result.PlayersUpdated,
		"goalies_updated", result.GoaliesUpdated,
		"teams_updated", result.TeamsUpdated,
		"partial", result.Partial,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// Clear removes every stored snapshot. Reference data is compiled in and
// unaffected.
func (s *RefreshService) Clear(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.Clear")
	defer span.End()

	if err := s.teamStats.Clear(ctx); err != nil {
		return fmt.Errorf("clear team aggregates: %w", err)
	}
	if err := s.goalies.Clear(ctx); err != nil {
		return fmt.Errorf("clear goalies: %w", err)
	}
	if err := s.players.Clear(ctx); err != nil {
		return fmt.Errorf("clear players: %w", err)
	}
	return nil
}

func (s *RefreshService) filterSkaters(rows []ExternalSkaterStat) []ExternalSkaterStat {
	out := make([]ExternalSkaterStat, 0, len(rows))
	for _, row := range rows {
		if row.GamesPlayed < s.cfg.MinGamesPlayed {
			continue
		}
		if s.cfg.TeamFilter != "" && row.Team != s.cfg.TeamFilter {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (s *RefreshService) fetchJerseyNumbers(ctx context.Context, season string, rows []ExternalSkaterStat) map[int64]int {
	teams := make(map[string]struct{}, 32)
	for _, row := range rows {
		if row.Team != "" {
			teams[row.Team] = struct{}{}
		}
	}

	ordered := make([]string, 0, len(teams))
	for team := range teams {
		ordered = append(ordered, team)
	}
	sort.Strings(ordered)

	out := make(map[int64]int, len(rows))
	for _, team := range ordered {
		roster, err := s.provider.FetchTeamRoster(ctx, team, season)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch roster failed, jersey numbers missing for team",
				"team", team,
				"error", err,
			)
			continue
		}
		for playerID, number := range roster {
			out[playerID] = number
		}
	}
	return out
}

func (s *RefreshService) refreshGoalies(ctx context.Context, season string, jerseys map[int64]int, now time.Time) (int, bool) {
	rows, err := s.provider.FetchGoalieStats(ctx, season)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch goalie stats failed, keeping previous snapshot", "season", season, "error", err)
		return 0, true
	}

	qualified := make([]ExternalGoalieStat, 0, len(rows))
	for _, row := range rows {
		if row.GamesPlayed < s.cfg.MinGamesPlayed {
			continue
		}
		if s.cfg.TeamFilter != "" && row.Team != s.cfg.TeamFilter {
			continue
		}
		qualified = append(qualified, row)
	}

	goalies, stats := buildGoalieRows(season, qualified, jerseys, now)
	if err := s.goalies.UpsertGoalies(ctx, goalies); err != nil {
		s.logger.WarnContext(ctx, "upsert goalies failed", "error", err)
		return 0, true
	}
	if err := s.goalies.ReplaceSeasonStats(ctx, stats); err != nil {
		s.logger.WarnContext(ctx, "replace goalie stats failed", "error", err)
		return 0, true
	}
	return len(goalies), false
}

func (s *RefreshService) refreshTeamAggregates(ctx context.Context, season string, now time.Time) (int, bool, error) {
	profiles, err := s.players.ListProfiles(ctx, player.Filter{})
	if err != nil {
		return 0, false, fmt.Errorf("list player profiles for aggregation: %w", err)
	}

	partial := false

	standings := make(map[string]ExternalStanding)
	if rows, err := s.provider.FetchStandings(ctx); err != nil {
		s.logger.WarnContext(ctx, "fetch standings failed, aggregates keep nil records", "error", err)
		partial = true
	} else {
		for _, row := range rows {
			standings[row.Team] = row
		}
	}

	special := make(map[string]ExternalTeamSpecialTeams)
	if rows, err := s.provider.FetchTeamSummary(ctx, season); err != nil {
		s.logger.WarnContext(ctx, "fetch team summary failed, aggregates keep nil special teams", "error", err)
		partial = true
	} else {
		for _, row := range rows {
			special[row.Team] = row
		}
	}

	aggregates := BuildTeamAggregates(season, profiles, standings, special, now)
	if s.cfg.TeamFilter != "" {
		narrowed := make([]teamstats.Aggregate, 0, 1)
		for _, row := range aggregates {
			if row.Team == s.cfg.TeamFilter {
				narrowed = append(narrowed, row)
			}
		}
		aggregates = narrowed
	}

	if err := s.teamStats.ReplaceAll(ctx, aggregates); err != nil {
		return 0, false, fmt.Errorf("replace team aggregates: %w", err)
	}
	return len(aggregates), partial, nil
}

// isForward groups the roles whose ice time is ranked together; defensemen
// form their own population because their minutes run structurally higher.
func isForward(position string) bool {
	return position == "C" || position == "L" || position == "R"
}

func buildSkaterRows(season string, rows []ExternalSkaterStat, jerseys map[int64]int, now time.Time) ([]player.Player, []player.SeasonStats) {
	hitsPop := make([]float64, 0, len(rows))
	blocksPop := make([]float64, 0, len(rows))
	pointsPop := make([]float64, 0, len(rows))
	forwardTOI := make([]float64, 0, len(rows))
	defenseTOI := make([]float64, 0, len(rows))
	for _, row := range rows {
		hitsPop = append(hitsPop, float64(row.Hits))
		blocksPop = append(blocksPop, float64(row.BlockedShots))
		if row.PointsPer60 != nil {
			pointsPop = append(pointsPop, *row.PointsPer60)
		}
		if row.AvgTOIMinutes > 0 {
			if isForward(row.Position) {
				forwardTOI = append(forwardTOI, row.AvgTOIMinutes)
			} else if row.Position == "D" {
				defenseTOI = append(defenseTOI, row.AvgTOIMinutes)
			}
		}
	}

	players := make([]player.Player, 0, len(rows))
	stats := make([]player.SeasonStats, 0, len(rows))
	for _, row := range rows {
		entity := player.Player{
			ID:       row.PlayerID,
			Name:     row.Name,
			Team:     row.Team,
			Position: row.Position,
		}
		if number, ok := jerseys[row.PlayerID]; ok {
			entity.JerseyNumber = intPtrOf(number)
		}
		players = append(players, entity)

		hits := float64(row.Hits)
		blocks := float64(row.BlockedShots)
		var toiPctl *int
		if row.AvgTOIMinutes > 0 {
			toi := row.AvgTOIMinutes
			if isForward(row.Position) {
				toiPctl = Percentile(&toi, forwardTOI)
			} else if row.Position == "D" {
				toiPctl = Percentile(&toi, defenseTOI)
			}
		}
		stats = append(stats, player.SeasonStats{
			PlayerID:      row.PlayerID,
			Season:        season,
			GamesPlayed:   row.GamesPlayed,
			Goals:         row.Goals,
			Assists:       row.Assists,
			Points:        row.Points,
			PlusMinus:     row.PlusMinus,
			AvgTOIMinutes: row.AvgTOIMinutes,
			FaceoffWinPct: row.FaceoffWinPct,
			ShotsPer60:    row.ShotsPer60,
			PointsPer60:   row.PointsPer60,
			Hits:          row.Hits,
			BlockedShots:  row.BlockedShots,
			HitsPctl:      Percentile(&hits, hitsPop),
			BlocksPctl:    Percentile(&blocks, blocksPop),
			PointsPctl:    Percentile(row.PointsPer60, pointsPop),
			TOIPctl:       toiPctl,
			UpdatedAt:     now,
		})
	}
	return players, stats
}

// buildEdgeRows turns fetched snapshots into persistable rows. The shots/60
// percentile lives on the tracking snapshot but ranks the traditional-feed
// shot rate, so the population comes from the full qualified skater set.
func buildEdgeRows(season string, snapshots map[int64]ExternalEdgeDetail, skaters []ExternalSkaterStat, now time.Time) []player.EdgeStats {
	shotsPop := make([]float64, 0, len(skaters))
	shotsByID := make(map[int64]*float64, len(skaters))
	for _, row := range skaters {
		if row.ShotsPer60 != nil {
			shotsPop = append(shotsPop, *row.ShotsPer60)
		}
		shotsByID[row.PlayerID] = row.ShotsPer60
	}

	ids := make([]int64, 0, len(snapshots))
	for id := range snapshots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]player.EdgeStats, 0, len(snapshots))
	for _, id := range ids {
		detail := snapshots[id]
		out = append(out, player.EdgeStats{
			PlayerID:          id,
			Season:            season,
			MaxSkatingSpeed:   detail.MaxSkatingSpeed,
			AvgSkatingSpeed:   detail.AvgSkatingSpeed,
			SpeedBursts20Plus: detail.SpeedBursts20Plus,
			SpeedBursts22Plus: detail.SpeedBursts22Plus,
			MaxSpeedPctl:      detail.MaxSpeedPctl,
			BurstsPctl:        detail.BurstsPctl,
			Bursts22Pctl:      detail.Bursts22Pctl,
			MaxShotSpeed:      detail.MaxShotSpeed,
			AvgShotSpeed:      detail.AvgShotSpeed,
			MaxShotSpeedPctl:  detail.MaxShotSpeedPctl,
			OffZonePct:        detail.OffZonePct,
			DefZonePct:        detail.DefZonePct,
			NeuZonePct:        detail.NeuZonePct,
			ZoneStartsOffPct:  detail.ZoneStartsOffPct,
			ZoneStartsPctl:    detail.ZoneStartsPctl,
			MilesPerGame:      detail.MilesPerGame,
			DistancePctl:      detail.DistancePctl,
			ShotsPer60Pctl:    Percentile(shotsByID[id], shotsPop),
			UpdatedAt:         now,
		})
	}
	return out
}

func buildGoalieRows(season string, rows []ExternalGoalieStat, jerseys map[int64]int, now time.Time) ([]goalie.Goalie, []goalie.SeasonStats) {
	gaaPop := make([]float64, 0, len(rows))
	savePop := make([]float64, 0, len(rows))
	hdPop := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.GoalsAgainstAvg != nil {
			gaaPop = append(gaaPop, *row.GoalsAgainstAvg)
		}
		if row.SavePct != nil {
			savePop = append(savePop, *row.SavePct)
		}
		if row.HighDangerSavePct != nil {
			hdPop = append(hdPop, *row.HighDangerSavePct)
		}
	}

	goalies := make([]goalie.Goalie, 0, len(rows))
	stats := make([]goalie.SeasonStats, 0, len(rows))
	for _, row := range rows {
		entity := goalie.Goalie{
			ID:   row.GoalieID,
			Name: row.Name,
			Team: row.Team,
		}
		if number, ok := jerseys[row.GoalieID]; ok {
			entity.JerseyNumber = intPtrOf(number)
		}
		goalies = append(goalies, entity)
		stats = append(stats, goalie.SeasonStats{
			GoalieID:          row.GoalieID,
			Season:            season,
			GamesPlayed:       row.GamesPlayed,
			Wins:              row.Wins,
			Losses:            row.Losses,
			OTLosses:          row.OTLosses,
			Shutouts:          row.Shutouts,
			GoalsAgainstAvg:   row.GoalsAgainstAvg,
			SavePct:           row.SavePct,
			HighDangerSavePct: row.HighDangerSavePct,
			GAAPctl:           InvertedPercentile(row.GoalsAgainstAvg, gaaPop),
			SavePctPctl:       Percentile(row.SavePct, savePop),
			HighDangerPctl:    Percentile(row.HighDangerSavePct, hdPop),
			UpdatedAt:         now,
		})
	}
	return goalies, stats
}
