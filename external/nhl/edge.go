package nhl

import (
	"context"
	"fmt"
	"math"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/usecase"
)

type edgeDetailPayload struct {
	SkatingSpeed struct {
		MaxSpeed           *float64 `json:"maxSpeed"`
		AvgSpeed           *float64 `json:"avgSpeed"`
		BurstsOver20       *int     `json:"burstsOver20"`
		MaxSpeedPercentile *float64 `json:"maxSpeedPercentile"`
		BurstsPercentile   *float64 `json:"burstsPercentile"`
	} `json:"skatingSpeed"`
	Distance struct {
		MilesPerGame *float64 `json:"milesPerGame"`
		Percentile   *float64 `json:"percentile"`
	} `json:"totalDistance"`
	ZoneTime struct {
		OffensiveZonePct *float64 `json:"offensiveZonePct"`
		DefensiveZonePct *float64 `json:"defensiveZonePct"`
		NeutralZonePct   *float64 `json:"neutralZonePct"`
	} `json:"zoneTime"`
	ShotSpeed struct {
		MaxShotSpeed           *float64 `json:"maxShotSpeed"`
		AvgShotSpeed           *float64 `json:"avgShotSpeed"`
		MaxShotSpeedPercentile *float64 `json:"maxShotSpeedPercentile"`
	} `json:"shotSpeed"`
}

type edgeSpeedBurstPayload struct {
	BurstsOver22           *int     `json:"burstsOver22"`
	BurstsOver22Percentile *float64 `json:"burstsOver22Percentile"`
}

type edgeZoneStartsPayload struct {
	ZoneStarts struct {
		OffensivePct *float64 `json:"offensivePct"`
		Percentile   *float64 `json:"percentile"`
	} `json:"zoneStarts"`
}

// FetchEdgeDetail assembles one player's tracking snapshot from three calls.
// The overall detail call is the snapshot's backbone: if it fails there is no
// snapshot. The speed-burst and zone-start calls only widen it, so their
// failures leave the dependent fields nil.
func (c *Client) FetchEdgeDetail(ctx context.Context, playerID int64) (usecase.ExternalEdgeDetail, error) {
	if playerID <= 0 {
		return usecase.ExternalEdgeDetail{}, fmt.Errorf("player id must be greater than zero")
	}

	var primary edgeDetailPayload
	if err := c.doWebJSON(ctx, fmt.Sprintf("/edge/skater/%d/detail", playerID), nil, &primary); err != nil {
		return usecase.ExternalEdgeDetail{}, fmt.Errorf("fetch edge detail player_id=%d: %w", playerID, err)
	}

	detail := usecase.ExternalEdgeDetail{
		PlayerID:          playerID,
		MaxSkatingSpeed:   roundPtr2(primary.SkatingSpeed.MaxSpeed),
		AvgSkatingSpeed:   roundPtr2(primary.SkatingSpeed.AvgSpeed),
		SpeedBursts20Plus: primary.SkatingSpeed.BurstsOver20,
		MaxSpeedPctl:      percentileToInt(primary.SkatingSpeed.MaxSpeedPercentile),
		BurstsPctl:        percentileToInt(primary.SkatingSpeed.BurstsPercentile),
		MaxShotSpeed:      roundPtr2(primary.ShotSpeed.MaxShotSpeed),
		AvgShotSpeed:      roundPtr2(primary.ShotSpeed.AvgShotSpeed),
		MaxShotSpeedPctl:  percentileToInt(primary.ShotSpeed.MaxShotSpeedPercentile),
		OffZonePct:        shareToPct(primary.ZoneTime.OffensiveZonePct),
		DefZonePct:        shareToPct(primary.ZoneTime.DefensiveZonePct),
		NeuZonePct:        shareToPct(primary.ZoneTime.NeutralZonePct),
		MilesPerGame:      roundPtr2(primary.Distance.MilesPerGame),
		DistancePctl:      percentileToInt(primary.Distance.Percentile),
	}

	var bursts edgeSpeedBurstPayload
	if err := c.doWebJSON(ctx, fmt.Sprintf("/edge/skater/%d/skating-speed-detail", playerID), nil, &bursts); err != nil {
		if ctx.Err() != nil {
			return usecase.ExternalEdgeDetail{}, ctx.Err()
		}
		c.logger.WarnContext(ctx, "fetch edge speed bursts failed, leaving burst-22 fields empty",
			"player_id", playerID,
			"error", err,
		)
	} else {
		detail.SpeedBursts22Plus = bursts.BurstsOver22
		detail.Bursts22Pctl = percentileToInt(bursts.BurstsOver22Percentile)
	}

	var starts edgeZoneStartsPayload
	if err := c.doWebJSON(ctx, fmt.Sprintf("/edge/skater/%d/zone-time", playerID), nil, &starts); err != nil {
		if ctx.Err() != nil {
			return usecase.ExternalEdgeDetail{}, ctx.Err()
		}
		c.logger.WarnContext(ctx, "fetch edge zone starts failed, leaving zone-start fields empty",
			"player_id", playerID,
			"error", err,
		)
	} else {
		detail.ZoneStartsOffPct = shareToPct(starts.ZoneStarts.OffensivePct)
		detail.ZoneStartsPctl = percentileToInt(starts.ZoneStarts.Percentile)
	}

	return detail, nil
}

// percentileToInt converts an upstream 0-1 percentile share into the 0-100
// integer scale the rest of the pipeline uses.
func percentileToInt(v *float64) *int {
	if v == nil {
		return nil
	}
	p := int(math.Round(*v * 100))
	return &p
}

func shareToPct(v *float64) *float64 {
	if v == nil {
		return nil
	}
	p := round1(*v * 100)
	return &p
}
