package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/scoreboard"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
)

// ScoreboardService returns weekly matchup results.
type ScoreboardService struct {
	provider FantasyProvider
	logger   *logging.Logger
}

func NewScoreboardService(provider FantasyProvider, logger *logging.Logger) *ScoreboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreboardService{provider: provider, logger: logger}
}

// GetScoreboard fetches matchups. Week 0 means the league's current
// matchup period.
func (s *ScoreboardService) GetScoreboard(ctx context.Context, leagueID int64, season int, week int) ([]scoreboard.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoreboardService.GetScoreboard")
	defer span.End()

	if err := validateLeagueRef(leagueID, season); err != nil {
		return nil, err
	}
	if week != 0 {
		if err := validateWeek(week); err != nil {
			return nil, err
		}
	}

	out, err := s.provider.FetchScoreboard(ctx, leagueID, season, week)
	if err != nil {
		return nil, fmt.Errorf("get scoreboard: %w", err)
	}

	return out, nil
}
