package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/league"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
)

// LeagueService exposes league settings from the upstream platform.
type LeagueService struct {
	provider FantasyProvider
	logger   *logging.Logger
}

func NewLeagueService(provider FantasyProvider, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{provider: provider, logger: logger}
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID int64, season int) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.GetLeague")
	defer span.End()

	if err := validateLeagueRef(leagueID, season); err != nil {
		return league.League{}, err
	}

	out, err := s.provider.FetchLeague(ctx, leagueID, season)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if err := out.Validate(); err != nil {
		s.logger.WarnContext(ctx, "upstream league failed validation", "league_id", leagueID, "error", err)
		return league.League{}, fmt.Errorf("%w: upstream league payload incomplete", ErrDependencyUnavailable)
	}

	return out, nil
}
