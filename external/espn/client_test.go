package espn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-assistant/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server, maxRetries int) *Client {
	t.Helper()
	c := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		ESPNS2:     "s2-secret-value",
		SWID:       "{SWID-SECRET}",
		MaxRetries: maxRetries,
		Logger:     logging.NewNop(),
	})
	c.retryDelay = time.Millisecond
	return c
}

func TestClient_FetchLeague_SendsSessionCookies(t *testing.T) {
	t.Parallel()

	var gotCookies, gotViews string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookies = r.Header.Get("Cookie")
		gotViews = r.URL.Query().Encode()
		w.Write([]byte(`{
			"id": 4242, "seasonId": 2025,
			"settings": {"name": "Test League", "size": 8,
				"scoringSettings": {"scoringType": "H2H_POINTS_PPR"},
				"rosterSettings": {"lineupSlotCounts": {"0": 1, "20": 5}}},
			"status": {"currentMatchupPeriod": 4}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0)
	got, err := c.FetchLeague(context.Background(), 4242, 2025)
	require.NoError(t, err)

	assert.Equal(t, "Test League", got.Name)
	assert.Equal(t, "PPR", got.ScoringType)
	assert.Equal(t, 4, got.CurrentWeek)
	assert.Contains(t, gotCookies, "espn_s2=s2-secret-value")
	assert.Contains(t, gotCookies, "SWID={SWID-SECRET}")
	assert.Contains(t, gotViews, "view=mSettings")
	assert.Contains(t, gotViews, "view=mTeam")
}

func TestClient_ErrorClassification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, usecase.ErrAuthFailed},
		{"forbidden", http.StatusForbidden, usecase.ErrAccessDenied},
		{"not found", http.StatusNotFound, usecase.ErrNotFound},
		{"throttled", http.StatusTooManyRequests, usecase.ErrRateLimited},
		{"server error", http.StatusBadGateway, usecase.ErrDependencyUnavailable},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c := newTestClient(t, srv, 1)
			_, err := c.FetchTeams(context.Background(), 1, 2025)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.sentinel), "want %v in chain, got %v", tc.sentinel, err)
		})
	}
}

func TestClient_TerminalStatusDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 3)
	_, err := c.FetchDraft(context.Background(), 1, 2025)
	require.ErrorIs(t, err, usecase.ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_RetriesThrottlingThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"id": 1, "seasonId": 2025, "teams": [{"id": 1, "name": "Solo"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 2)
	teams, err := c.FetchTeams(context.Background(), 1, 2025)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		MaxRetries: 0,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
	c.retryDelay = time.Millisecond

	for i := 0; i < 2; i++ {
		_, err := c.FetchLeague(context.Background(), 1, 2025)
		require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	}
	before := calls.Load()

	_, err := c.FetchLeague(context.Background(), 1, 2025)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.Equal(t, before, calls.Load(), "open breaker must short-circuit without an upstream call")
}

func TestClient_CircuitRecoversAfterHalfOpenSuccess(t *testing.T) {
	t.Parallel()

	var failing atomic.Bool
	failing.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"id": 1, "seasonId": 2025, "settings": {"name": "L", "size": 8}, "status": {"currentMatchupPeriod": 1}}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		MaxRetries: 0,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      10 * time.Millisecond,
			HalfOpenMaxReq:   1,
		},
	})
	c.retryDelay = time.Millisecond

	_, err := c.FetchLeague(context.Background(), 1, 2025)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.NotEqual(t, resilience.CircuitStateClosed, c.breaker.State())

	failing.Store(false)
	time.Sleep(20 * time.Millisecond)

	// Concurrent identical requests collapse into one flight; the breaker
	// must still end up closed, not stranded with half-open admissions.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.FetchLeague(context.Background(), 1, 2025)
		}()
	}
	wg.Wait()

	_, err = c.FetchLeague(context.Background(), 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, resilience.CircuitStateClosed, c.breaker.State())
}

func TestClient_RedactsSessionSecrets(t *testing.T) {
	t.Parallel()

	c := NewClient(ClientConfig{ESPNS2: "super-secret", SWID: "{ABC}", Logger: logging.NewNop()})

	redacted := c.redact("request to ?espn_s2=super-secret&SWID={ABC} failed: super-secret")
	assert.NotContains(t, redacted, "super-secret")
	assert.NotContains(t, redacted, "{ABC}")
	assert.Contains(t, redacted, "REDACTED")
}

func TestClient_FetchRoster_UnknownTeam(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 1, "seasonId": 2025, "scoringPeriodId": 5, "teams": [{"id": 2, "name": "Other"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0)
	_, err := c.FetchRoster(context.Background(), 1, 2025, 99, 5)
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestClient_FetchFreeAgents_SendsFantasyFilter(t *testing.T) {
	t.Parallel()

	var gotFilter string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.Header.Get("X-Fantasy-Filter")
		w.Write([]byte(`{"id": 1, "scoringPeriodId": 3, "players": [
			{"onTeamId": 0, "player": {"id": 10, "fullName": "Open Agent", "defaultPositionId": 3}},
			{"onTeamId": 7, "player": {"id": 11, "fullName": "Rostered Guy", "defaultPositionId": 2}}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0)
	players, err := c.FetchFreeAgents(context.Background(), 1, 2025, usecase.FreeAgentQuery{Limit: 25})
	require.NoError(t, err)

	require.Len(t, players, 1, "rostered players must be filtered out")
	assert.Equal(t, "Open Agent", players[0].Name)
	assert.Contains(t, gotFilter, `"FREEAGENT"`)
	assert.Contains(t, gotFilter, `"WAIVERS"`)
}

func TestClient_FetchDraft_HydratesPlayerNames(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Fantasy-Filter") != "" {
			w.Write([]byte(`{"players": [{"player": {"id": 55, "fullName": "Round One", "defaultPositionId": 2}}]}`))
			return
		}
		w.Write([]byte(`{"draftDetail": {"drafted": true, "picks": [
			{"overallPickNumber": 2, "roundId": 1, "roundPickNumber": 2, "teamId": 4, "playerId": 77, "autoDraftTypeId": 1},
			{"overallPickNumber": 1, "roundId": 1, "roundPickNumber": 1, "teamId": 9, "playerId": 55}
		]}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0)
	picks, err := c.FetchDraft(context.Background(), 1, 2025)
	require.NoError(t, err)
	require.Len(t, picks, 2)

	assert.Equal(t, 1, picks[0].Overall, "picks must come back in overall order")
	assert.Equal(t, "Round One", picks[0].PlayerName)
	assert.Equal(t, "RB", picks[0].Position)
	assert.Empty(t, picks[1].PlayerName, "missing hydration leaves the id only")
	assert.True(t, picks[1].AutoDrafted)
}

func TestClient_FetchDraft_NotStarted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"draftDetail": {"drafted": false, "inProgress": false}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0)
	_, err := c.FetchDraft(context.Background(), 1, 2025)
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestClient_FetchScoreboard_FiltersWeek(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"schedule": [
			{"id": 1, "matchupPeriodId": 3, "home": {"teamId": 1, "totalPoints": 100}, "away": {"teamId": 2, "totalPoints": 90}, "winner": "HOME"},
			{"id": 2, "matchupPeriodId": 4, "home": {"teamId": 3, "totalPoints": 80}, "away": {"teamId": 4, "totalPoints": 85}}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0)
	matchups, err := c.FetchScoreboard(context.Background(), 1, 2025, 3)
	require.NoError(t, err)
	require.Len(t, matchups, 1)
	assert.Equal(t, int64(1), matchups[0].ID)
	assert.Equal(t, "HOME", matchups[0].Winner)
}

func TestClient_InvalidInput(t *testing.T) {
	t.Parallel()

	c := NewClient(ClientConfig{Logger: logging.NewNop()})

	_, err := c.FetchLeague(context.Background(), 0, 2025)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = c.FetchRoster(context.Background(), 1, 2025, 0, 1)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = c.FetchTeams(context.Background(), 5, 0)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}
