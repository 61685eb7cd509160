package mockdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-assistant/internal/usecase"
)

func TestProvider_Deterministic(t *testing.T) {
	t.Parallel()

	p := New()
	ctx := context.Background()

	first, err := p.FetchTeams(ctx, 99, 2024)
	require.NoError(t, err)
	second, err := p.FetchTeams(ctx, 99, 2024)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, leagueSize)

	other, err := p.FetchTeams(ctx, 100, 2024)
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "different leagues should not share standings")
}

func TestProvider_LeagueShape(t *testing.T) {
	t.Parallel()

	lg, err := New().FetchLeague(context.Background(), 42, 2024)
	require.NoError(t, err)
	require.NoError(t, lg.Validate())

	assert.Equal(t, int64(42), lg.ID)
	assert.Equal(t, leagueSize, lg.Size)
	assert.Equal(t, 2, lg.RosterSlots["RB"])
}

func TestProvider_RosterUnknownTeam(t *testing.T) {
	t.Parallel()

	_, err := New().FetchRoster(context.Background(), 42, 2024, 77, 1)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestProvider_RosterSplitsStartersAndBench(t *testing.T) {
	t.Parallel()

	r, err := New().FetchRoster(context.Background(), 42, 2024, 3, 0)
	require.NoError(t, err)

	assert.Equal(t, currentWeek, r.Week)
	assert.Len(t, r.Entries, rosterSize)
	assert.Len(t, r.Starters(), len(positionCycle))
	assert.Len(t, r.Bench(), rosterSize-len(positionCycle))
}

func TestProvider_DraftIsCompleteSnake(t *testing.T) {
	t.Parallel()

	picks, err := New().FetchDraft(context.Background(), 42, 2024)
	require.NoError(t, err)
	require.Len(t, picks, draftRounds*leagueSize)

	assert.Equal(t, 1, picks[0].Overall)
	assert.Equal(t, int64(1), picks[0].TeamID)
	// round two reverses the order
	assert.Equal(t, leagueSize+1, picks[leagueSize].Overall)
	assert.Equal(t, int64(leagueSize), picks[leagueSize].TeamID)
}

func TestProvider_ScoreboardDecidesPastWeeksOnly(t *testing.T) {
	t.Parallel()

	p := New()

	past, err := p.FetchScoreboard(context.Background(), 42, 2024, currentWeek-1)
	require.NoError(t, err)
	require.Len(t, past, leagueSize/2)
	for _, m := range past {
		assert.NotEqual(t, "UNDECIDED", m.Winner)
	}

	live, err := p.FetchScoreboard(context.Background(), 42, 2024, 0)
	require.NoError(t, err)
	for _, m := range live {
		assert.Equal(t, "UNDECIDED", m.Winner)
	}
}
