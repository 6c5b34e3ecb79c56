package reference

import "sort"

// Team is a static league franchise entry keyed by tricode abbreviation.
type Team struct {
	Abbrev     string
	Name       string
	Division   string
	Conference string
}

const (
	DivisionAtlantic     = "Atlantic"
	DivisionMetropolitan = "Metropolitan"
	DivisionCentral      = "Central"
	DivisionPacific      = "Pacific"

	ConferenceEastern = "Eastern"
	ConferenceWestern = "Western"

	UnknownDivision   = "Unknown"
	UnknownConference = "Unknown"
)

var teamsByAbbrev = map[string]Team{
	"ANA": {Abbrev: "ANA", Name: "Anaheim Ducks", Division: DivisionPacific, Conference: ConferenceWestern},
	"BOS": {Abbrev: "BOS", Name: "Boston Bruins", Division: DivisionAtlantic, Conference: ConferenceEastern},
	"BUF": {Abbrev: "BUF", Name: "Buffalo Sabres", Division: DivisionAtlantic, Conference: ConferenceEastern},
	"CAR": {Abbrev: "CAR", Name: "Carolina Hurricanes", Division: DivisionMetropolitan, Conference: ConferenceEastern},
	"CBJ": {Abbrev: "CBJ", Name: "Columbus Blue Jackets", Division: DivisionMetropolitan, Conference: ConferenceEastern},
	"CGY": {Abbrev: "CGY", Name: "Calgary Flames", Division: DivisionPacific, Conference: ConferenceWestern},
	"CHI": {Abbrev: "CHI", Name: "Chicago Blackhawks", Division: DivisionCentral, Conference: ConferenceWestern},
	"COL": {Abbrev: "COL", Name: "Colorado Avalanche", Division: DivisionCentral, Conference: ConferenceWestern},
	"DAL": {Abbrev: "DAL", Name: "Dallas Stars", Division: DivisionCentral, Conference: ConferenceWestern},
	"DET": {Abbrev: "DET", Name: "Detroit Red Wings", Division: DivisionAtlantic, Conference: ConferenceEastern},
	"EDM": {Abbrev: "EDM", Name: "Edmonton Oilers", Division: DivisionPacific, Conference: ConferenceWestern},
	"FLA": {Abbrev: "FLA", Name: "Florida Panthers", Division: DivisionAtlantic, Conference: ConferenceEastern},
	"LAK": {Abbrev: "LAK", Name: "Los Angeles Kings", Division: DivisionPacific, Conference: ConferenceWestern},
	"MIN": {Abbrev: "MIN", Name: "Minnesota Wild", Division: DivisionCentral, Conference: ConferenceWestern},
	"MTL": {Abbrev: "MTL", Name: "Montreal Canadiens", Division: DivisionAtlantic, Conference: ConferenceEastern},
	"NJD": {Abbrev: "NJD", Name: "New Jersey Devils", Division: DivisionMetropolitan, Conference: ConferenceEastern},
	"NSH": {Abbrev: "NSH", Name: "Nashville Predators", Division: DivisionCentral, Conference: ConferenceWestern},
	"NYI": {Abbrev: "NYI", Name: "New York Islanders", Division: DivisionMetropolitan, Conference: ConferenceEastern},
	"NYR": {Abbrev: "NYR", Name: "New York Rangers", Division: DivisionMetropolitan, Conference: ConferenceEastern},
	"OTT": {Abbrev: "OTT", Name: "Ottawa Senators", Division: DivisionAtlantic, Conference: ConferenceEastern},
	"PHI": {Abbrev: "PHI", Name: "Philadelphia Flyers", Division: DivisionMetropolitan, Conference: ConferenceEastern},
	"PIT": {Abbrev: "PIT", Name: "Pittsburgh Penguins", Division: DivisionMetropolitan, Conference: ConferenceEastern},
	"SEA": {Abbrev: "SEA", Name: "Seattle Kraken", Division: DivisionPacific, Conference: ConferenceWestern},
	"SJS": {Abbrev: "SJS", Name: "San Jose Sharks", Division: DivisionPacific, Conference: ConferenceWestern},
	"STL": {Abbrev: "STL", Name: "St. Louis Blues", Division: DivisionCentral, Conference: ConferenceWestern},
	"TBL": {Abbrev: "TBL", Name: "Tampa Bay Lightning", Division: DivisionAtlantic, Conference: ConferenceEastern},
	"TOR": {Abbrev: "TOR", Name: "Toronto Maple Leafs", Division: DivisionAtlantic, Conference: ConferenceEastern},
	"UTA": {Abbrev: "UTA", Name: "Utah Hockey Club", Division: DivisionCentral, Conference: ConferenceWestern},
	"VAN": {Abbrev: "VAN", Name: "Vancouver Canucks", Division: DivisionPacific, Conference: ConferenceWestern},
	"VGK": {Abbrev: "VGK", Name: "Vegas Golden Knights", Division: DivisionPacific, Conference: ConferenceWestern},
	"WPG": {Abbrev: "WPG", Name: "Winnipeg Jets", Division: DivisionCentral, Conference: ConferenceWestern},
	"WSH": {Abbrev: "WSH", Name: "Washington Capitals", Division: DivisionMetropolitan, Conference: ConferenceEastern},
}

// TeamInfo resolves a franchise by abbreviation. Unrecognized abbreviations
// return an entry carrying the abbreviation itself with Unknown grouping,
// so callers never need a separate found flag for display paths.
func TeamInfo(abbrev string) Team {
	if team, ok := teamsByAbbrev[abbrev]; ok {
		return team
	}
	return Team{
		Abbrev:     abbrev,
		Name:       abbrev,
		Division:   UnknownDivision,
		Conference: UnknownConference,
	}
}

// Known reports whether the abbreviation names an active franchise.
func Known(abbrev string) bool {
	_, ok := teamsByAbbrev[abbrev]
	return ok
}

// Teams returns all franchises ordered by abbreviation.
func Teams() []Team {
	out := make([]Team, 0, len(teamsByAbbrev))
	for _, team := range teamsByAbbrev {
		out = append(out, team)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Abbrev < out[j].Abbrev })
	return out
}

// Divisions returns division names with their member teams ordered by name.
func Divisions() map[string][]Team {
	out := make(map[string][]Team, 4)
	for _, team := range teamsByAbbrev {
		out[team.Division] = append(out[team.Division], team)
	}
	for division := range out {
		rows := out[division]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
		out[division] = rows
	}
	return out
}
