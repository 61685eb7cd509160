package draft

// Pick is a single draft selection, aggregated in memory to compute grades
// and round summaries, then discarded with the response.
type Pick struct {
	Overall     int
	Round       int
	RoundPick   int
	TeamID      int64
	PlayerID    int64
	PlayerName  string
	Position    string
	AutoDrafted bool
	Keeper      bool
}

// Grade is the heuristic draft score for one team. The score is not
// statistically validated; it summarizes pick count, auto-draft usage and
// positional balance on a 0-100 scale.
type Grade struct {
	TeamID         int64
	Score          int
	Letter         string
	TotalPicks     int
	AutoDrafted    int
	PositionCounts map[string]int
}
