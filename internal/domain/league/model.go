package league

import "fmt"

// League is a fantasy league as reported by the upstream platform. It is
// fetched per request and never persisted by this service.
type League struct {
	ID          int64
	Name        string
	Size        int
	Season      int
	ScoringType string
	CurrentWeek int
	// RosterSlots maps a lineup-slot abbreviation to the number of slots
	// the league allows (e.g. "RB" -> 2, "BE" -> 7).
	RosterSlots map[string]int
}

const (
	ScoringStandard = "STANDARD"
	ScoringPPR      = "PPR"
	ScoringHalfPPR  = "HALF_PPR"
	ScoringUnknown  = "UNKNOWN"
)

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id must be positive")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season <= 0 {
		return fmt.Errorf("league season is required")
	}

	return nil
}
