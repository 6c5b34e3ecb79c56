package usecase

import (
	"math"
	"time"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/player"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/reference"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/teamstats"
)

type teamAccumulator struct {
	speedSum   float64
	speedTOI   float64
	shotSum    float64
	shotTOI    float64
	bursts     int
	burstGames int
	hits       int
	blocks     int
	statRows   int
	edgeRows   int
}

// BuildTeamAggregates rolls skater snapshots up into one row per franchise.
// Speed averages weight each skater's top speed by ice time, with
// metric-specific denominators: a skater missing shot-speed data still
// contributes to the skating-speed average. The burst rate divides by every
// tracked skater's games, counting absent burst data as zero. Teams with no
// qualifying skaters keep nil aggregates rather than zeros, and those nil
// aggregates stay out of the league percentile populations.
func BuildTeamAggregates(
	season string,
	profiles []player.Profile,
	standings map[string]ExternalStanding,
	special map[string]ExternalTeamSpecialTeams,
	now time.Time,
) []teamstats.Aggregate {
	byTeam := make(map[string]*teamAccumulator, 32)
	for _, profile := range profiles {
		acc := byTeam[profile.Team]
		if acc == nil {
			acc = &teamAccumulator{}
			byTeam[profile.Team] = acc
		}

		if profile.Stats != nil {
			acc.statRows++
			acc.hits += profile.Stats.Hits
			acc.blocks += profile.Stats.BlockedShots
		}

		if profile.Edge == nil {
			continue
		}
		acc.edgeRows++

		toi := 0.0
		if profile.Stats != nil {
			toi = profile.Stats.AvgTOIMinutes
		}
		if toi > 0 {
			if profile.Edge.MaxSkatingSpeed != nil {
				acc.speedSum += *profile.Edge.MaxSkatingSpeed * toi
				acc.speedTOI += toi
			}
			if profile.Edge.MaxShotSpeed != nil {
				acc.shotSum += *profile.Edge.MaxShotSpeed * toi
				acc.shotTOI += toi
			}
		}
		if profile.Stats != nil {
			acc.burstGames += profile.Stats.GamesPlayed
		}
		if profile.Edge.SpeedBursts20Plus != nil {
			acc.bursts += *profile.Edge.SpeedBursts20Plus
		}
	}

	teams := reference.Teams()
	out := make([]teamstats.Aggregate, 0, len(teams))
	for _, team := range teams {
		row := teamstats.Aggregate{
			Team:       team.Abbrev,
			Name:       team.Name,
			Division:   team.Division,
			Conference: team.Conference,
			Season:     season,
			UpdatedAt:  now,
		}

		if acc := byTeam[team.Abbrev]; acc != nil {
			row.SkaterCount = acc.edgeRows
			if acc.speedTOI > 0 {
				row.AvgSkatingSpeed = floatPtrOf(round2(acc.speedSum / acc.speedTOI))
			}
			if acc.shotTOI > 0 {
				row.AvgShotSpeed = floatPtrOf(round2(acc.shotSum / acc.shotTOI))
			}
			if acc.burstGames > 0 {
				row.BurstsPerGame = floatPtrOf(round2(float64(acc.bursts) / float64(acc.burstGames)))
			}
			if acc.statRows > 0 {
				row.TotalHits = intPtrOf(acc.hits)
				row.TotalBlocks = intPtrOf(acc.blocks)
			}
		}

		if standing, ok := standings[team.Abbrev]; ok {
			row.Wins = intPtrOf(standing.Wins)
			row.Losses = intPtrOf(standing.Losses)
			row.OTLosses = intPtrOf(standing.OTLosses)
			row.Points = intPtrOf(standing.Points)
			row.GoalDiff = intPtrOf(standing.GoalDiff)
		}
		if rates, ok := special[team.Abbrev]; ok {
			row.PowerPlayPct = rates.PowerPlayPct
			row.PenaltyKillPct = rates.PenaltyKillPct
		}

		out = append(out, row)
	}

	annotateTeamPercentiles(out)
	return out
}

// annotateTeamPercentiles ranks each team metric across the league. Only
// teams with a defined value enter a metric's population.
func annotateTeamPercentiles(rows []teamstats.Aggregate) {
	points := make([]float64, 0, len(rows))
	goalDiff := make([]float64, 0, len(rows))
	powerPlay := make([]float64, 0, len(rows))
	penaltyKill := make([]float64, 0, len(rows))
	speed := make([]float64, 0, len(rows))
	shotSpeed := make([]float64, 0, len(rows))
	bursts := make([]float64, 0, len(rows))
	hits := make([]float64, 0, len(rows))
	blocks := make([]float64, 0, len(rows))
	for i := range rows {
		appendDefined(&points, intAsFloatPtr(rows[i].Points))
		appendDefined(&goalDiff, intAsFloatPtr(rows[i].GoalDiff))
		appendDefined(&powerPlay, rows[i].PowerPlayPct)
		appendDefined(&penaltyKill, rows[i].PenaltyKillPct)
		appendDefined(&speed, rows[i].AvgSkatingSpeed)
		appendDefined(&shotSpeed, rows[i].AvgShotSpeed)
		appendDefined(&bursts, rows[i].BurstsPerGame)
		appendDefined(&hits, intAsFloatPtr(rows[i].TotalHits))
		appendDefined(&blocks, intAsFloatPtr(rows[i].TotalBlocks))
	}

	for i := range rows {
		rows[i].PointsPctl = Percentile(intAsFloatPtr(rows[i].Points), points)
		rows[i].GoalDiffPctl = Percentile(intAsFloatPtr(rows[i].GoalDiff), goalDiff)
		rows[i].PowerPlayPctl = Percentile(rows[i].PowerPlayPct, powerPlay)
		rows[i].PenaltyKillPctl = Percentile(rows[i].PenaltyKillPct, penaltyKill)
		rows[i].SpeedPctl = Percentile(rows[i].AvgSkatingSpeed, speed)
		rows[i].ShotSpeedPctl = Percentile(rows[i].AvgShotSpeed, shotSpeed)
		rows[i].BurstsPctl = Percentile(rows[i].BurstsPerGame, bursts)
		rows[i].HitsPctl = Percentile(intAsFloatPtr(rows[i].TotalHits), hits)
		rows[i].BlocksPctl = Percentile(intAsFloatPtr(rows[i].TotalBlocks), blocks)
	}
}

func appendDefined(population *[]float64, v *float64) {
	if v != nil {
		*population = append(*population, *v)
	}
}

func intAsFloatPtr(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func floatPtrOf(v float64) *float64 { return &v }

func intPtrOf(v int) *int { return &v }
