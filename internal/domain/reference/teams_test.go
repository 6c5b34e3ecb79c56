package reference

import "testing"

func TestTeamInfo_KnownAbbreviation(t *testing.T) {
	t.Parallel()

	team := TeamInfo("COL")
	if team.Name != "Colorado Avalanche" {
		t.Fatalf("expected Colorado Avalanche, got=%q", team.Name)
	}
	if team.Division != DivisionCentral {
		t.Fatalf("expected Central division, got=%q", team.Division)
	}
	if team.Conference != ConferenceWestern {
		t.Fatalf("expected Western conference, got=%q", team.Conference)
	}
}

func TestTeamInfo_UnknownAbbreviationFallsBack(t *testing.T) {
	t.Parallel()

	team := TeamInfo("XXX")
	if team.Abbrev != "XXX" || team.Name != "XXX" {
		t.Fatalf("expected abbreviation echoed back, got=%+v", team)
	}
	if team.Division != UnknownDivision || team.Conference != UnknownConference {
		t.Fatalf("expected Unknown grouping, got=%+v", team)
	}
	if Known("XXX") {
		t.Fatal("XXX should not be a known franchise")
	}
}

func TestTeams_FullLeague(t *testing.T) {
	t.Parallel()

	teams := Teams()
	if len(teams) != 32 {
		t.Fatalf("expected 32 franchises, got=%d", len(teams))
	}
	for i := 1; i < len(teams); i++ {
		if teams[i-1].Abbrev >= teams[i].Abbrev {
			t.Fatalf("teams not sorted by abbreviation: %s before %s", teams[i-1].Abbrev, teams[i].Abbrev)
		}
	}

	divisions := Divisions()
	if len(divisions) != 4 {
		t.Fatalf("expected 4 divisions, got=%d", len(divisions))
	}
	for name, members := range divisions {
		if len(members) != 8 {
			t.Fatalf("division %s should have 8 teams, got=%d", name, len(members))
		}
	}
}
