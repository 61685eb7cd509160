package espn

// Static lookup tables for ESPN's numeric codes. Unknown ids always map to
// a safe placeholder so a new upstream code never fails a request.

const (
	UnknownPosition = "UNKNOWN"
	FreeAgentTeam   = "FA"
)

var lineupSlotNames = map[int]string{
	0:  "QB",
	1:  "TQB",
	2:  "RB",
	3:  "RB/WR",
	4:  "WR",
	5:  "WR/TE",
	6:  "TE",
	7:  "OP",
	8:  "DT",
	9:  "DE",
	10: "LB",
	11: "DL",
	12: "CB",
	13: "S",
	14: "DB",
	15: "DP",
	16: "D/ST",
	17: "K",
	18: "P",
	19: "HC",
	20: "BE",
	21: "IR",
	23: "FLEX",
}

var positionNames = map[int]string{
	1:  "QB",
	2:  "RB",
	3:  "WR",
	4:  "TE",
	5:  "K",
	16: "D/ST",
}

var proTeamAbbrevs = map[int]string{
	1:  "ATL",
	2:  "BUF",
	3:  "CHI",
	4:  "CIN",
	5:  "CLE",
	6:  "DAL",
	7:  "DEN",
	8:  "DET",
	9:  "GB",
	10: "TEN",
	11: "IND",
	12: "KC",
	13: "LV",
	14: "LAR",
	15: "MIA",
	16: "MIN",
	17: "NE",
	18: "NO",
	19: "NYG",
	20: "NYJ",
	21: "PHI",
	22: "ARI",
	23: "PIT",
	24: "LAC",
	25: "SF",
	26: "SEA",
	27: "TB",
	28: "WSH",
	29: "CAR",
	30: "JAX",
	33: "BAL",
	34: "HOU",
}

var scoringTypeNames = map[string]string{
	"H2H_POINTS":          "STANDARD",
	"H2H_CATEGORY":        "STANDARD",
	"H2H_POINTS_PPR":      "PPR",
	"H2H_POINTS_HALFPPR":  "HALF_PPR",
	"TOTAL_SEASON_POINTS": "STANDARD",
}

// SlotName resolves an ESPN lineup-slot id to its abbreviation.
func SlotName(id int) string {
	if name, ok := lineupSlotNames[id]; ok {
		return name
	}
	return UnknownPosition
}

// PositionName resolves an ESPN default-position id to its abbreviation.
func PositionName(id int) string {
	if name, ok := positionNames[id]; ok {
		return name
	}
	return UnknownPosition
}

// ProTeamAbbrev resolves an NFL pro-team id to its code. Id 0 is the
// upstream marker for an unsigned player.
func ProTeamAbbrev(id int) string {
	if abbrev, ok := proTeamAbbrevs[id]; ok {
		return abbrev
	}
	return FreeAgentTeam
}

func scoringTypeName(raw string) string {
	if name, ok := scoringTypeNames[raw]; ok {
		return name
	}
	return "UNKNOWN"
}
