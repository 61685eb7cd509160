package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/roster"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/team"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
)

// TeamService lists a league's teams and resolves a team's weekly roster.
type TeamService struct {
	provider FantasyProvider
	logger   *logging.Logger
}

func NewTeamService(provider FantasyProvider, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{provider: provider, logger: logger}
}

func (s *TeamService) ListTeams(ctx context.Context, leagueID int64, season int) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListTeams")
	defer span.End()

	if err := validateLeagueRef(leagueID, season); err != nil {
		return nil, err
	}

	out, err := s.provider.FetchTeams(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return out, nil
}

// TeamRoster is a roster split into starters and bench for the response.
type TeamRoster struct {
	TeamID   int64
	Week     int
	Starters []roster.Entry
	Bench    []roster.Entry
}

// GetRoster fetches a team's lineup. Week 0 means the league's current
// scoring period.
func (s *TeamService) GetRoster(ctx context.Context, leagueID int64, season int, teamID int64, week int) (TeamRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetRoster")
	defer span.End()

	if err := validateLeagueRef(leagueID, season); err != nil {
		return TeamRoster{}, err
	}
	if teamID <= 0 {
		return TeamRoster{}, fmt.Errorf("%w: team id must be a positive integer", ErrInvalidInput)
	}
	if week != 0 {
		if err := validateWeek(week); err != nil {
			return TeamRoster{}, err
		}
	}

	out, err := s.provider.FetchRoster(ctx, leagueID, season, teamID, week)
	if err != nil {
		return TeamRoster{}, fmt.Errorf("get roster: %w", err)
	}

	return TeamRoster{
		TeamID:   out.TeamID,
		Week:     out.Week,
		Starters: out.Starters(),
		Bench:    out.Bench(),
	}, nil
}
