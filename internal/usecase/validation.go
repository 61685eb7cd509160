package usecase

import "fmt"

const (
	MinSeason = 2020
	MaxSeason = 2030

	MinWeek = 1
	MaxWeek = 18

	DefaultFreeAgentLimit = 50
	MaxFreeAgentLimit     = 250
)

var knownPositions = map[string]struct{}{
	"QB":   {},
	"RB":   {},
	"WR":   {},
	"TE":   {},
	"K":    {},
	"D/ST": {},
}

func validateLeagueRef(leagueID int64, season int) error {
	if leagueID <= 0 {
		return fmt.Errorf("%w: league id must be a positive integer", ErrInvalidInput)
	}
	if season < MinSeason || season > MaxSeason {
		return fmt.Errorf("%w: season must be between %d and %d", ErrInvalidInput, MinSeason, MaxSeason)
	}
	return nil
}

func validateWeek(week int) error {
	if week < MinWeek || week > MaxWeek {
		return fmt.Errorf("%w: week must be between %d and %d", ErrInvalidInput, MinWeek, MaxWeek)
	}
	return nil
}

// normalizeFreeAgentQuery applies defaults and bounds before the provider
// call. Position is optional; when set it must be a known abbreviation.
func normalizeFreeAgentQuery(q FreeAgentQuery) (FreeAgentQuery, error) {
	if q.Position != "" {
		if _, ok := knownPositions[q.Position]; !ok {
			return FreeAgentQuery{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, q.Position)
		}
	}
	if q.Limit == 0 {
		q.Limit = DefaultFreeAgentLimit
	}
	if q.Limit < 1 || q.Limit > MaxFreeAgentLimit {
		return FreeAgentQuery{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxFreeAgentLimit)
	}
	if q.Offset < 0 {
		return FreeAgentQuery{}, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}
	return q, nil
}
