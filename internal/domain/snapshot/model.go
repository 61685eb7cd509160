package snapshot

import (
	"fmt"
	"time"
)

// TeamSnapshot is a persisted copy of a team's upstream state, written by
// the bulk sync job. It is the only entity this service stores.
type TeamSnapshot struct {
	LeagueID int64
	Season   int
	TeamID   int64
	Payload  map[string]any
	SyncedAt time.Time
}

func (s TeamSnapshot) Validate() error {
	if s.LeagueID <= 0 {
		return fmt.Errorf("snapshot league id must be positive")
	}
	if s.Season <= 0 {
		return fmt.Errorf("snapshot season is required")
	}
	if s.TeamID <= 0 {
		return fmt.Errorf("snapshot team id must be positive")
	}

	return nil
}
