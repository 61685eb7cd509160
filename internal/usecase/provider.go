package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/draft"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/league"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/player"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/roster"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/scoreboard"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/team"
)

// FreeAgentQuery narrows a free-agent fetch before post-fetch shaping.
type FreeAgentQuery struct {
	Position string
	Limit    int
	Offset   int
}

// FantasyProvider is the upstream fantasy platform seen through normalized
// domain records. The ESPN client implements it; the mockdata provider
// stands in when the integration is disabled.
type FantasyProvider interface {
	FetchLeague(ctx context.Context, leagueID int64, season int) (league.League, error)
	FetchTeams(ctx context.Context, leagueID int64, season int) ([]team.Team, error)
	FetchRoster(ctx context.Context, leagueID int64, season int, teamID int64, week int) (roster.Roster, error)
	FetchFreeAgents(ctx context.Context, leagueID int64, season int, q FreeAgentQuery) ([]player.Player, error)
	FetchDraft(ctx context.Context, leagueID int64, season int) ([]draft.Pick, error)
	FetchScoreboard(ctx context.Context, leagueID int64, season int, week int) ([]scoreboard.Matchup, error)
}
