package team

import "fmt"

// Team is a fantasy team inside a league, derived entirely from upstream
// data on every call.
type Team struct {
	ID            int64
	LeagueID      int64
	Name          string
	Abbrev        string
	Owner         string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	PlayoffSeed   int
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be positive")
	}
	if t.LeagueID <= 0 {
		return fmt.Errorf("team league id must be positive")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Record renders the win/loss/tie line the way the upstream UI shows it.
func (t Team) Record() string {
	if t.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", t.Wins, t.Losses, t.Ties)
	}
	return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
}
