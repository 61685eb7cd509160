package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/player"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/roster"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/team"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamService_ListTeams(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teams: func(_ context.Context, leagueID int64, _ int) ([]team.Team, error) {
			return []team.Team{
				{ID: 1, LeagueID: leagueID, Name: "Alpha"},
				{ID: 2, LeagueID: leagueID, Name: "Bravo"},
			}, nil
		},
	}
	svc := NewTeamService(provider, logging.NewNop())

	got, err := svc.ListTeams(context.Background(), 4242, 2025)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Name)
}

func TestTeamService_GetRoster_SplitsStartersAndBench(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		roster: func(_ context.Context, _ int64, _ int, teamID int64, week int) (roster.Roster, error) {
			return roster.Roster{
				TeamID: teamID,
				Week:   week,
				Entries: []roster.Entry{
					{Slot: "QB", Player: player.Player{Name: "Starter QB"}},
					{Slot: roster.SlotBench, Player: player.Player{Name: "Bench RB"}},
					{Slot: "FLEX", Player: player.Player{Name: "Flex WR"}},
					{Slot: roster.SlotIR, Player: player.Player{Name: "Hurt TE"}},
				},
			}, nil
		},
	}
	svc := NewTeamService(provider, logging.NewNop())

	got, err := svc.GetRoster(context.Background(), 4242, 2025, 3, 7)
	require.NoError(t, err)
	require.Len(t, got.Starters, 2)
	require.Len(t, got.Bench, 2)
	assert.Equal(t, "Starter QB", got.Starters[0].Player.Name)
	assert.Equal(t, "Bench RB", got.Bench[0].Player.Name)
	assert.Equal(t, 7, got.Week)
}

func TestTeamService_GetRoster_Validation(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		roster: func(_ context.Context, _ int64, _ int, teamID int64, week int) (roster.Roster, error) {
			return roster.Roster{TeamID: teamID, Week: week}, nil
		},
	}
	svc := NewTeamService(provider, logging.NewNop())

	_, err := svc.GetRoster(context.Background(), 1, 2025, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetRoster(context.Background(), 1, 2025, 3, 19)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// week 0 means current scoring period, not a violation
	_, err = svc.GetRoster(context.Background(), 1, 2025, 3, 0)
	assert.NoError(t, err)
}
