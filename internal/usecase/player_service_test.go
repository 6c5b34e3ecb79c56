package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/sean-m-sweeney/nhl-edge-report/internal/domain/player"
)

type scopedPlayerRepo struct {
	stubPlayerRepo
	lastFilter player.Filter
	profile    player.Profile
	found      bool
}

func (r *scopedPlayerRepo) ListProfiles(_ context.Context, filter player.Filter) ([]player.Profile, error) {
	r.lastFilter = filter
	return r.profiles, nil
}

func (r *scopedPlayerRepo) GetProfile(context.Context, int64) (player.Profile, bool, error) {
	return r.profile, r.found, nil
}

func TestPlayerServiceList_TeamFilter(t *testing.T) {
	t.Parallel()

	repo := &scopedPlayerRepo{}
	svc := NewPlayerService(repo)

	if _, err := svc.List(context.Background(), PlayerQuery{Team: "col"}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(repo.lastFilter.Teams) != 1 || repo.lastFilter.Teams[0] != "COL" {
		t.Fatalf("filter teams = %v, want [COL]", repo.lastFilter.Teams)
	}
}

func TestPlayerServiceList_DivisionResolvesToTeams(t *testing.T) {
	t.Parallel()

	repo := &scopedPlayerRepo{}
	svc := NewPlayerService(repo)

	if _, err := svc.List(context.Background(), PlayerQuery{Division: "central"}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(repo.lastFilter.Teams) != 8 {
		t.Fatalf("central division resolved to %d teams, want 8", len(repo.lastFilter.Teams))
	}
	for _, team := range repo.lastFilter.Teams {
		if team == "BOS" {
			t.Fatalf("atlantic team leaked into central division filter: %v", repo.lastFilter.Teams)
		}
	}
}

func TestPlayerServiceList_ConferenceResolvesToTeams(t *testing.T) {
	t.Parallel()

	repo := &scopedPlayerRepo{}
	svc := NewPlayerService(repo)

	if _, err := svc.List(context.Background(), PlayerQuery{Conference: "Eastern"}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(repo.lastFilter.Teams) != 16 {
		t.Fatalf("eastern conference resolved to %d teams, want 16", len(repo.lastFilter.Teams))
	}
}

func TestPlayerServiceList_RejectsCombinedFilters(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(&scopedPlayerRepo{})

	_, err := svc.List(context.Background(), PlayerQuery{Team: "COL", Division: "Central"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("List() error = %v, want ErrInvalidInput", err)
	}
}

func TestPlayerServiceList_UnknownScope(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(&scopedPlayerRepo{})

	for _, query := range []PlayerQuery{
		{Team: "ZZZ"},
		{Division: "Northwest"},
		{Conference: "Campbell"},
	} {
		if _, err := svc.List(context.Background(), query); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("List(%+v) error = %v, want ErrInvalidInput", query, err)
		}
	}
}

func TestPlayerServiceGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(&scopedPlayerRepo{})

	_, err := svc.Get(context.Background(), 8478402)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestPlayerServiceGet_InvalidID(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(&scopedPlayerRepo{})

	_, err := svc.Get(context.Background(), 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Get() error = %v, want ErrInvalidInput", err)
	}
}

func TestPlayerServiceGet_Found(t *testing.T) {
	t.Parallel()

	repo := &scopedPlayerRepo{
		profile: player.Profile{Player: player.Player{ID: 8478402, Name: "Connor McDavid", Team: "EDM"}},
		found:   true,
	}
	svc := NewPlayerService(repo)

	profile, err := svc.Get(context.Background(), 8478402)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if profile.Name != "Connor McDavid" {
		t.Fatalf("profile name = %s", profile.Name)
	}
}
