package scoreboard

// Matchup is one head-to-head pairing for a scoring week.
type Matchup struct {
	ID         int64
	Week       int
	HomeTeamID int64
	AwayTeamID int64
	HomeScore  float64
	AwayScore  float64
	// Winner is "HOME", "AWAY", "TIE" or "UNDECIDED" while play is live.
	Winner string
}

const (
	WinnerHome      = "HOME"
	WinnerAway      = "AWAY"
	WinnerTie       = "TIE"
	WinnerUndecided = "UNDECIDED"
)
