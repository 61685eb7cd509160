package usecase

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/draft"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/league"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/player"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/roster"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/scoreboard"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/snapshot"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/team"
)

// stubProvider lets each test pin exactly the provider behavior it needs.
type stubProvider struct {
	league     func(ctx context.Context, leagueID int64, season int) (league.League, error)
	teams      func(ctx context.Context, leagueID int64, season int) ([]team.Team, error)
	roster     func(ctx context.Context, leagueID int64, season int, teamID int64, week int) (roster.Roster, error)
	freeAgents func(ctx context.Context, leagueID int64, season int, q FreeAgentQuery) ([]player.Player, error)
	draft      func(ctx context.Context, leagueID int64, season int) ([]draft.Pick, error)
	scoreboard func(ctx context.Context, leagueID int64, season int, week int) ([]scoreboard.Matchup, error)
}

func (s *stubProvider) FetchLeague(ctx context.Context, leagueID int64, season int) (league.League, error) {
	return s.league(ctx, leagueID, season)
}

func (s *stubProvider) FetchTeams(ctx context.Context, leagueID int64, season int) ([]team.Team, error) {
	return s.teams(ctx, leagueID, season)
}

func (s *stubProvider) FetchRoster(ctx context.Context, leagueID int64, season int, teamID int64, week int) (roster.Roster, error) {
	return s.roster(ctx, leagueID, season, teamID, week)
}

func (s *stubProvider) FetchFreeAgents(ctx context.Context, leagueID int64, season int, q FreeAgentQuery) ([]player.Player, error) {
	return s.freeAgents(ctx, leagueID, season, q)
}

func (s *stubProvider) FetchDraft(ctx context.Context, leagueID int64, season int) ([]draft.Pick, error) {
	return s.draft(ctx, leagueID, season)
}

func (s *stubProvider) FetchScoreboard(ctx context.Context, leagueID int64, season int, week int) ([]scoreboard.Matchup, error) {
	return s.scoreboard(ctx, leagueID, season, week)
}

// memorySnapshotRepo collects upserts for assertions.
type memorySnapshotRepo struct {
	mu        sync.Mutex
	rows      map[[3]int64]snapshot.TeamSnapshot
	upsertErr func(item snapshot.TeamSnapshot) error
}

func newMemorySnapshotRepo() *memorySnapshotRepo {
	return &memorySnapshotRepo{rows: make(map[[3]int64]snapshot.TeamSnapshot)}
}

func (r *memorySnapshotRepo) Upsert(_ context.Context, item snapshot.TeamSnapshot) error {
	if r.upsertErr != nil {
		if err := r.upsertErr(item); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[[3]int64{item.LeagueID, int64(item.Season), item.TeamID}] = item
	return nil
}

func (r *memorySnapshotRepo) ListByLeague(_ context.Context, leagueID int64, season int) ([]snapshot.TeamSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]snapshot.TeamSnapshot, 0, len(r.rows))
	for key, item := range r.rows {
		if key[0] == leagueID && key[1] == int64(season) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memorySnapshotRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}
