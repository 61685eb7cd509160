package espn

// Upstream JSON shapes for the v3 fantasy API. Only the fields this service
// reads are modeled; everything else passes through untouched.

type leagueEnvelope struct {
	ID              int64          `json:"id"`
	SeasonID        int            `json:"seasonId"`
	ScoringPeriodID int            `json:"scoringPeriodId"`
	Settings        leagueSettings `json:"settings"`
	Status          leagueStatus   `json:"status"`
	Teams           []teamJSON     `json:"teams"`
	Members         []memberJSON   `json:"members"`
	Schedule        []matchupJSON  `json:"schedule"`
	DraftDetail     draftDetail    `json:"draftDetail"`
	Players         []playerEntry  `json:"players"`
}

type leagueSettings struct {
	Name            string          `json:"name"`
	Size            int             `json:"size"`
	ScoringSettings scoringSettings `json:"scoringSettings"`
	RosterSettings  rosterSettings  `json:"rosterSettings"`
}

type scoringSettings struct {
	ScoringType string `json:"scoringType"`
}

type rosterSettings struct {
	// LineupSlotCounts maps a lineup-slot id (as a string key) to the
	// number of slots the league allows.
	LineupSlotCounts map[string]int `json:"lineupSlotCounts"`
}

type leagueStatus struct {
	CurrentMatchupPeriod int `json:"currentMatchupPeriod"`
	LatestScoringPeriod  int `json:"latestScoringPeriod"`
}

type memberJSON struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type teamJSON struct {
	ID          int64      `json:"id"`
	Abbrev      string     `json:"abbrev"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Nickname    string     `json:"nickname"`
	Owners      []string   `json:"owners"`
	PlayoffSeed int        `json:"playoffSeed"`
	Record      recordJSON `json:"record"`
	Roster      rosterJSON `json:"roster"`
}

type recordJSON struct {
	Overall recordLine `json:"overall"`
}

type recordLine struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type rosterJSON struct {
	Entries []rosterEntryJSON `json:"entries"`
}

type rosterEntryJSON struct {
	LineupSlotID    int             `json:"lineupSlotId"`
	AcquisitionType string          `json:"acquisitionType"`
	AcquisitionDate int64           `json:"acquisitionDate"`
	PlayerPoolEntry playerPoolEntry `json:"playerPoolEntry"`
}

type playerPoolEntry struct {
	Player playerJSON `json:"player"`
}

type playerEntry struct {
	OnTeamID int64      `json:"onTeamId"`
	Status   string     `json:"status"`
	Player   playerJSON `json:"player"`
}

type playerJSON struct {
	ID                int64         `json:"id"`
	FullName          string        `json:"fullName"`
	DefaultPositionID int           `json:"defaultPositionId"`
	ProTeamID         int           `json:"proTeamId"`
	InjuryStatus      string        `json:"injuryStatus"`
	Ownership         ownershipJSON `json:"ownership"`
	Stats             []statJSON    `json:"stats"`
}

type ownershipJSON struct {
	PercentOwned   float64 `json:"percentOwned"`
	PercentStarted float64 `json:"percentStarted"`
}

type statJSON struct {
	ScoringPeriodID int     `json:"scoringPeriodId"`
	StatSourceID    int     `json:"statSourceId"`
	AppliedTotal    float64 `json:"appliedTotal"`
}

type draftDetail struct {
	Drafted    bool       `json:"drafted"`
	InProgress bool       `json:"inProgress"`
	Picks      []pickJSON `json:"picks"`
}

type pickJSON struct {
	OverallPickNumber int   `json:"overallPickNumber"`
	RoundID           int   `json:"roundId"`
	RoundPickNumber   int   `json:"roundPickNumber"`
	TeamID            int64 `json:"teamId"`
	PlayerID          int64 `json:"playerId"`
	AutoDraftTypeID   int   `json:"autoDraftTypeId"`
	Keeper            bool  `json:"keeper"`
}

type matchupJSON struct {
	ID              int64       `json:"id"`
	MatchupPeriodID int         `json:"matchupPeriodId"`
	Home            matchupSide `json:"home"`
	Away            matchupSide `json:"away"`
	Winner          string      `json:"winner"`
}

type matchupSide struct {
	TeamID      int64   `json:"teamId"`
	TotalPoints float64 `json:"totalPoints"`
}
