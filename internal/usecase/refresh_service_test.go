package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/goalie"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/player"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/teamstats"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/platform/logging"
)

type stubProvider struct {
	skaters    []ExternalSkaterStat
	skatersErr error
	goalies    []ExternalGoalieStat
	goaliesErr error
	edge       map[int64]ExternalEdgeDetail
	edgeErr    map[int64]error
	rosters    map[string]map[int64]int
	rostersErr error
	standings  []ExternalStanding
	summary    []ExternalTeamSpecialTeams
	summaryErr error

	mu        sync.Mutex
	edgeCalls []int64
}

func (p *stubProvider) FetchSkaterStats(context.Context, string) ([]ExternalSkaterStat, error) {
	return p.skaters, p.skatersErr
}

func (p *stubProvider) FetchGoalieStats(context.Context, string) ([]ExternalGoalieStat, error) {
	return p.goalies, p.goaliesErr
}

func (p *stubProvider) FetchEdgeDetail(_ context.Context, playerID int64) (ExternalEdgeDetail, error) {
	p.mu.Lock()
	p.edgeCalls = append(p.edgeCalls, playerID)
	p.mu.Unlock()
	if err, ok := p.edgeErr[playerID]; ok {
		return ExternalEdgeDetail{}, err
	}
	return p.edge[playerID], nil
}

func (p *stubProvider) FetchTeamRoster(_ context.Context, team string, _ string) (map[int64]int, error) {
	if p.rostersErr != nil {
		return nil, p.rostersErr
	}
	return p.rosters[team], nil
}

func (p *stubProvider) FetchStandings(context.Context) ([]ExternalStanding, error) {
	return p.standings, nil
}

func (p *stubProvider) FetchTeamSummary(context.Context, string) ([]ExternalTeamSpecialTeams, error) {
	return p.summary, p.summaryErr
}

type stubPlayerRepo struct {
	mu          sync.Mutex
	players     []player.Player
	seasonStats []player.SeasonStats
	edgeStats   []player.EdgeStats
	edgeAges    map[int64]time.Time
	profiles    []player.Profile
	cleared     bool
}

func (r *stubPlayerRepo) UpsertPlayers(_ context.Context, rows []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = rows
	return nil
}

func (r *stubPlayerRepo) ReplaceSeasonStats(_ context.Context, rows []player.SeasonStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seasonStats = rows
	return nil
}

func (r *stubPlayerRepo) ReplaceEdgeStats(_ context.Context, rows []player.EdgeStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edgeStats = rows
	return nil
}

func (r *stubPlayerRepo) ListProfiles(context.Context, player.Filter) ([]player.Profile, error) {
	return r.profiles, nil
}

func (r *stubPlayerRepo) GetProfile(context.Context, int64) (player.Profile, bool, error) {
	return player.Profile{}, false, nil
}

func (r *stubPlayerRepo) EdgeUpdatedAt(context.Context) (map[int64]time.Time, error) {
	return r.edgeAges, nil
}

func (r *stubPlayerRepo) Count(context.Context) (int, error) {
	return len(r.players), nil
}

func (r *stubPlayerRepo) Clear(context.Context) error {
	r.cleared = true
	return nil
}

type stubGoalieRepo struct {
	goalies []goalie.Goalie
	stats   []goalie.SeasonStats
	cleared bool
}

func (r *stubGoalieRepo) UpsertGoalies(_ context.Context, rows []goalie.Goalie) error {
	r.goalies = rows
	return nil
}

func (r *stubGoalieRepo) ReplaceSeasonStats(_ context.Context, rows []goalie.SeasonStats) error {
	r.stats = rows
	return nil
}

func (r *stubGoalieRepo) ListProfiles(context.Context, goalie.Filter) ([]goalie.Profile, error) {
	return nil, nil
}

func (r *stubGoalieRepo) GetProfile(context.Context, int64) (goalie.Profile, bool, error) {
	return goalie.Profile{}, false, nil
}

func (r *stubGoalieRepo) Clear(context.Context) error {
	r.cleared = true
	return nil
}

type stubTeamStatsRepo struct {
	rows    []teamstats.Aggregate
	cleared bool
}

func (r *stubTeamStatsRepo) ReplaceAll(_ context.Context, rows []teamstats.Aggregate) error {
	r.rows = rows
	return nil
}

func (r *stubTeamStatsRepo) List(context.Context, teamstats.Filter) ([]teamstats.Aggregate, error) {
	return r.rows, nil
}

func (r *stubTeamStatsRepo) Clear(context.Context) error {
	r.cleared = true
	return nil
}

type stubMetaRepo struct {
	lastUpdated time.Time
	set         bool
}

func (r *stubMetaRepo) SetLastUpdated(_ context.Context, at time.Time) error {
	r.lastUpdated = at
	r.set = true
	return nil
}

func (r *stubMetaRepo) LastUpdated(context.Context) (time.Time, bool, error) {
	return r.lastUpdated, r.set, nil
}

func refreshSkater(id int64, team string, games int, hits int) ExternalSkaterStat {
	return ExternalSkaterStat{
		PlayerID:      id,
		Name:          "Skater",
		Team:          team,
		Position:      "C",
		GamesPlayed:   games,
		Goals:         10,
		Assists:       15,
		Points:        25,
		AvgTOIMinutes: 18.5,
		Hits:          hits,
		BlockedShots:  20,
	}
}

func newRefreshFixture(provider *stubProvider) (*RefreshService, *stubPlayerRepo, *stubGoalieRepo, *stubTeamStatsRepo, *stubMetaRepo) {
	players := &stubPlayerRepo{}
	goalies := &stubGoalieRepo{}
	teams := &stubTeamStatsRepo{}
	metaRepo := &stubMetaRepo{}
	svc := NewRefreshService(provider, players, goalies, teams, metaRepo, RefreshConfig{
		MinGamesPlayed:   10,
		Freshness:        6 * time.Hour,
		SeasonStartMonth: time.October,
		Workers:          2,
		Now:              func() time.Time { return time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC) },
	}, logging.NewNop())
	return svc, players, goalies, teams, metaRepo
}

func TestRefreshServiceRun_FullPipeline(t *testing.T) {
	t.Parallel()

	speed := 22.4
	provider := &stubProvider{
		skaters: []ExternalSkaterStat{
			refreshSkater(1, "COL", 40, 100),
			refreshSkater(2, "COL", 38, 50),
			refreshSkater(3, "DAL", 5, 10), // below the games floor
		},
		goalies: []ExternalGoalieStat{
			{GoalieID: 20, Name: "Goalie", Team: "COL", GamesPlayed: 30, Wins: 18},
		},
		edge: map[int64]ExternalEdgeDetail{
			1: {PlayerID: 1, MaxSkatingSpeed: &speed},
			2: {PlayerID: 2},
		},
		rosters: map[string]map[int64]int{
			"COL": {1: 29, 2: 96, 20: 31},
		},
	}

	svc, players, goalies, teams, metaRepo := newRefreshFixture(provider)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Season != "20252026" {
		t.Fatalf("season = %s, want 20252026", result.Season)
	}
	if len(players.players) != 2 {
		t.Fatalf("persisted players = %d, want 2 (games floor applies)", len(players.players))
	}
	if players.players[0].JerseyNumber == nil || *players.players[0].JerseyNumber != 29 {
		t.Fatalf("jersey number not merged from roster: %+v", players.players[0])
	}
	if result.PlayersUpdated != 2 || result.EdgeFetches.Succeeded != 2 {
		t.Fatalf("edge updates = %d (batch %+v), want 2", result.PlayersUpdated, result.EdgeFetches)
	}
	if result.Partial {
		t.Fatalf("result marked partial on a clean run")
	}
	if result.GoaliesUpdated != 1 || len(goalies.stats) != 1 {
		t.Fatalf("goalies updated = %d, want 1", result.GoaliesUpdated)
	}
	if goalies.goalies[0].JerseyNumber == nil || *goalies.goalies[0].JerseyNumber != 31 {
		t.Fatalf("goalie jersey number not merged from roster: %+v", goalies.goalies[0])
	}
	if len(teams.rows) != 32 {
		t.Fatalf("team aggregates = %d, want one row per franchise", len(teams.rows))
	}
	if !metaRepo.set {
		t.Fatalf("last updated timestamp was not recorded")
	}

	// Percentiles come from the qualified population only.
	if players.seasonStats[0].HitsPctl == nil || *players.seasonStats[0].HitsPctl != 50 {
		t.Fatalf("hits percentile = %v, want 50", players.seasonStats[0].HitsPctl)
	}
}

func TestRefreshServiceRun_EmptyRosterLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	// The feed answered but nobody clears the games floor. Replacing the
	// tables with nothing would erase the last good snapshot.
	provider := &stubProvider{
		skaters: []ExternalSkaterStat{refreshSkater(3, "DAL", 5, 10)},
	}
	svc, players, goalies, teams, metaRepo := newRefreshFixture(provider)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.PlayersUpdated != 0 || result.GoaliesUpdated != 0 || result.TeamsUpdated != 0 {
		t.Fatalf("result reports updates on an empty roster: %+v", result)
	}
	if players.players != nil || players.seasonStats != nil || players.edgeStats != nil {
		t.Fatalf("player tables written on an empty roster")
	}
	if len(provider.edgeCalls) != 0 {
		t.Fatalf("edge detail fetched for %v despite empty roster", provider.edgeCalls)
	}
	if goalies.stats != nil || teams.rows != nil {
		t.Fatalf("goalie or team tables written on an empty roster")
	}
	if metaRepo.set {
		t.Fatalf("last updated recorded despite aborted run")
	}
}

func TestBuildSkaterRows_TOIPercentileByRole(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	rows := []ExternalSkaterStat{
		{PlayerID: 1, Team: "COL", Position: "C", AvgTOIMinutes: 20.0},
		{PlayerID: 2, Team: "COL", Position: "L", AvgTOIMinutes: 18.0},
		{PlayerID: 3, Team: "COL", Position: "D", AvgTOIMinutes: 24.0},
		{PlayerID: 4, Team: "COL", Position: "D", AvgTOIMinutes: 22.0},
	}

	_, stats := buildSkaterRows("20252026", rows, nil, now)

	byID := make(map[int64]player.SeasonStats, len(stats))
	for _, row := range stats {
		byID[row.PlayerID] = row
	}

	// Forwards rank against forwards only. The 20-minute center beats one
	// of two forwards even though every defenseman logs more ice time.
	if got := byID[1].TOIPctl; got == nil || *got != 50 {
		t.Fatalf("forward TOI percentile = %v, want 50", got)
	}
	if got := byID[2].TOIPctl; got == nil || *got != 0 {
		t.Fatalf("forward TOI percentile = %v, want 0", got)
	}
	// The 22-minute defenseman outskates every forward yet ranks at the
	// bottom of the defense group.
	if got := byID[4].TOIPctl; got == nil || *got != 0 {
		t.Fatalf("defenseman TOI percentile = %v, want 0", got)
	}
	if got := byID[3].TOIPctl; got == nil || *got != 50 {
		t.Fatalf("defenseman TOI percentile = %v, want 50", got)
	}
}

func TestBuildEdgeRows_ShotsPer60PercentileFromSkaterPopulation(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	skaters := []ExternalSkaterStat{
		{PlayerID: 1, Team: "COL", ShotsPer60: floatPtrOf(10.0)},
		{PlayerID: 2, Team: "COL", ShotsPer60: floatPtrOf(8.0)},
		{PlayerID: 3, Team: "DAL", ShotsPer60: floatPtrOf(6.0)},
		{PlayerID: 4, Team: "DAL"},
	}
	snapshots := map[int64]ExternalEdgeDetail{
		1: {PlayerID: 1},
		4: {PlayerID: 4},
	}

	rows := buildEdgeRows("20252026", snapshots, skaters, now)
	if len(rows) != 2 {
		t.Fatalf("edge rows = %d, want 2", len(rows))
	}

	// The population spans every qualified skater, not just the fetched
	// snapshots: two of three rates fall below 10.0.
	if got := rows[0].ShotsPer60Pctl; got == nil || *got != 67 {
		t.Fatalf("shots/60 percentile = %v, want 67", got)
	}
	// No shot rate in the traditional feed means no rank.
	if rows[1].ShotsPer60Pctl != nil {
		t.Fatalf("shots/60 percentile = %v for skater without a rate, want nil", rows[1].ShotsPer60Pctl)
	}
}

func TestRefreshServiceRun_SkaterFetchFailureWritesNothing(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{skatersErr: errors.New("upstream down")}
	svc, players, _, _, metaRepo := newRefreshFixture(provider)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("Run() error = %v, want ErrDependencyUnavailable", err)
	}
	if players.players != nil || players.seasonStats != nil {
		t.Fatalf("repository written despite primary fetch failure")
	}
	if metaRepo.set {
		t.Fatalf("last updated recorded despite failed run")
	}
}

func TestRefreshServiceRun_FreshSnapshotsSkipped(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	provider := &stubProvider{
		skaters: []ExternalSkaterStat{
			refreshSkater(1, "COL", 40, 100),
			refreshSkater(2, "COL", 38, 50),
		},
		edge: map[int64]ExternalEdgeDetail{2: {PlayerID: 2}},
	}

	svc, players, _, _, _ := newRefreshFixture(provider)
	players.edgeAges = map[int64]time.Time{
		1: now.Add(-time.Hour),     // fresh
		2: now.Add(-7 * time.Hour), // stale
	}

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(provider.edgeCalls) != 1 || provider.edgeCalls[0] != 2 {
		t.Fatalf("edge calls = %v, want only stale id 2", provider.edgeCalls)
	}
	if result.PlayersUpdated != 1 {
		t.Fatalf("players updated = %d, want 1", result.PlayersUpdated)
	}
}

func TestRefreshServiceRun_SecondaryFailuresMarkPartial(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		skaters: []ExternalSkaterStat{
			refreshSkater(1, "COL", 40, 100),
			refreshSkater(2, "COL", 38, 50),
		},
		goaliesErr: errors.New("goalie feed down"),
		edge:       map[int64]ExternalEdgeDetail{1: {PlayerID: 1}},
		edgeErr:    map[int64]error{2: errors.New("edge timeout")},
	}

	svc, _, goalies, _, _ := newRefreshFixture(provider)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Partial {
		t.Fatalf("result not marked partial despite goalie and edge failures")
	}
	if result.GoaliesUpdated != 0 || goalies.stats != nil {
		t.Fatalf("goalie snapshot written despite feed failure")
	}
	if result.EdgeFetches.Failed != 1 || result.PlayersUpdated != 1 {
		t.Fatalf("edge stats = %+v updated=%d, want 1 failure 1 success", result.EdgeFetches, result.PlayersUpdated)
	}
}

func TestRefreshServiceRun_RejectsConcurrentRun(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		skaters: []ExternalSkaterStat{refreshSkater(1, "COL", 40, 100)},
		edge:    map[int64]ExternalEdgeDetail{1: {PlayerID: 1}},
	}
	svc, _, _, _, _ := newRefreshFixture(provider)
	svc.running.Store(true)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Run() error = %v, want ErrConflict", err)
	}
}

func TestRefreshServiceClear(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{}
	svc, players, goalies, teams, _ := newRefreshFixture(provider)

	if err := svc.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if !players.cleared || !goalies.cleared || !teams.cleared {
		t.Fatalf("clear did not reach all repositories: players=%v goalies=%v teams=%v",
			players.cleared, goalies.cleared, teams.cleared)
	}
}
