package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/league"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeagueService_GetLeague(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		league: func(_ context.Context, leagueID int64, season int) (league.League, error) {
			return league.League{ID: leagueID, Name: "Office League", Season: season, Size: 10}, nil
		},
	}
	svc := NewLeagueService(provider, logging.NewNop())

	got, err := svc.GetLeague(context.Background(), 4242, 2025)
	require.NoError(t, err)
	assert.Equal(t, "Office League", got.Name)
	assert.Equal(t, 2025, got.Season)
}

func TestLeagueService_RejectsBadInput(t *testing.T) {
	t.Parallel()

	called := false
	provider := &stubProvider{
		league: func(_ context.Context, _ int64, _ int) (league.League, error) {
			called = true
			return league.League{}, nil
		},
	}
	svc := NewLeagueService(provider, logging.NewNop())

	cases := []struct {
		name     string
		leagueID int64
		season   int
	}{
		{"zero league", 0, 2025},
		{"negative league", -3, 2025},
		{"season too old", 1, 2019},
		{"season too new", 1, 2031},
	}
	for _, tc := range cases {
		_, err := svc.GetLeague(context.Background(), tc.leagueID, tc.season)
		assert.ErrorIs(t, err, ErrInvalidInput, tc.name)
	}
	assert.False(t, called, "validation must happen before any upstream call")
}

func TestLeagueService_IncompleteUpstreamPayload(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		league: func(_ context.Context, _ int64, _ int) (league.League, error) {
			return league.League{}, nil // missing id and name
		},
	}
	svc := NewLeagueService(provider, logging.NewNop())

	_, err := svc.GetLeague(context.Background(), 1, 2025)
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}
