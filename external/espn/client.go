package espn

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/draft"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/league"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/player"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/roster"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/scoreboard"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/team"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-assistant/internal/usecase"
)

const (
	defaultBaseURL      = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"
	fantasyFilterHeader = "X-Fantasy-Filter"
	maxResponseBytes    = 6 << 20

	viewSettings    = "mSettings"
	viewTeam        = "mTeam"
	viewRoster      = "mRoster"
	viewPlayerInfo  = "kona_player_info"
	viewDraftDetail = "mDraftDetail"
	viewMatchup     = "mMatchupScore"
)

var cookieValueRegex = regexp.MustCompile(`(espn_s2|SWID)=[^;&\s"']+`)
var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	ESPNS2         string
	SWID           string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the ESPN fantasy API using the private-league session
// cookies and maps upstream JSON into normalized domain records.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	espnS2         string
	swid           string
	maxRetries     int
	retryDelay     time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		espnS2:         strings.TrimSpace(cfg.ESPNS2),
		swid:           strings.TrimSpace(cfg.SWID),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		retryDelay:     time.Second,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchLeague(ctx context.Context, leagueID int64, season int) (league.League, error) {
	if err := validateLeagueRef(leagueID, season); err != nil {
		return league.League{}, err
	}

	var env leagueEnvelope
	if err := c.fetchLeagueViews(ctx, leagueID, season, []string{viewSettings, viewTeam}, nil, "", &env); err != nil {
		return league.League{}, fmt.Errorf("fetch league league_id=%d season=%d: %w", leagueID, season, err)
	}

	return mapLeague(env), nil
}

func (c *Client) FetchTeams(ctx context.Context, leagueID int64, season int) ([]team.Team, error) {
	if err := validateLeagueRef(leagueID, season); err != nil {
		return nil, err
	}

	var env leagueEnvelope
	if err := c.fetchLeagueViews(ctx, leagueID, season, []string{viewSettings, viewTeam}, nil, "", &env); err != nil {
		return nil, fmt.Errorf("fetch teams league_id=%d season=%d: %w", leagueID, season, err)
	}

	owners := mapOwnerNames(env.Members)
	out := make([]team.Team, 0, len(env.Teams))
	for _, item := range env.Teams {
		out = append(out, mapTeam(leagueID, item, owners))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (c *Client) FetchRoster(ctx context.Context, leagueID int64, season int, teamID int64, week int) (roster.Roster, error) {
	if err := validateLeagueRef(leagueID, season); err != nil {
		return roster.Roster{}, err
	}
	if teamID <= 0 {
		return roster.Roster{}, fmt.Errorf("%w: team id must be positive", usecase.ErrInvalidInput)
	}

	query := url.Values{}
	if week > 0 {
		query.Set("scoringPeriodId", strconv.Itoa(week))
	}

	var env leagueEnvelope
	if err := c.fetchLeagueViews(ctx, leagueID, season, []string{viewRoster}, query, "", &env); err != nil {
		return roster.Roster{}, fmt.Errorf("fetch roster league_id=%d team_id=%d: %w", leagueID, teamID, err)
	}

	scoringPeriod := week
	if scoringPeriod <= 0 {
		scoringPeriod = env.ScoringPeriodID
	}

	for _, item := range env.Teams {
		if item.ID != teamID {
			continue
		}
		entries := make([]roster.Entry, 0, len(item.Roster.Entries))
		for _, e := range item.Roster.Entries {
			entries = append(entries, mapRosterEntry(e, scoringPeriod))
		}
		return roster.Roster{TeamID: teamID, Week: scoringPeriod, Entries: entries}, nil
	}

	return roster.Roster{}, fmt.Errorf("%w: team=%d in league=%d", usecase.ErrNotFound, teamID, leagueID)
}

func (c *Client) FetchFreeAgents(ctx context.Context, leagueID int64, season int, q usecase.FreeAgentQuery) ([]player.Player, error) {
	if err := validateLeagueRef(leagueID, season); err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	filter, err := buildFreeAgentFilter(limit + maxInt(q.Offset, 0))
	if err != nil {
		return nil, fmt.Errorf("build free agent filter: %w", err)
	}

	var env leagueEnvelope
	if err := c.fetchLeagueViews(ctx, leagueID, season, []string{viewPlayerInfo}, nil, filter, &env); err != nil {
		return nil, fmt.Errorf("fetch free agents league_id=%d season=%d: %w", leagueID, season, err)
	}

	out := make([]player.Player, 0, len(env.Players))
	for _, item := range env.Players {
		if item.OnTeamID > 0 {
			continue
		}
		out = append(out, mapPlayer(item.Player, env.ScoringPeriodID))
	}

	return out, nil
}

func (c *Client) FetchDraft(ctx context.Context, leagueID int64, season int) ([]draft.Pick, error) {
	if err := validateLeagueRef(leagueID, season); err != nil {
		return nil, err
	}

	var env leagueEnvelope
	if err := c.fetchLeagueViews(ctx, leagueID, season, []string{viewDraftDetail}, nil, "", &env); err != nil {
		return nil, fmt.Errorf("fetch draft league_id=%d season=%d: %w", leagueID, season, err)
	}
	if !env.DraftDetail.Drafted && !env.DraftDetail.InProgress {
		return nil, fmt.Errorf("%w: draft for league=%d has not started", usecase.ErrNotFound, leagueID)
	}

	playerByID := c.fetchDraftPlayerNames(ctx, leagueID, season, env.DraftDetail.Picks)

	out := make([]draft.Pick, 0, len(env.DraftDetail.Picks))
	for _, item := range env.DraftDetail.Picks {
		out = append(out, mapPick(item, playerByID))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Overall < out[j].Overall })

	return out, nil
}

// fetchDraftPlayerNames hydrates pick player names with a side request.
// Draft detail carries ids only; a failed hydration leaves names empty
// rather than failing the draft fetch.
func (c *Client) fetchDraftPlayerNames(ctx context.Context, leagueID int64, season int, picks []pickJSON) map[int64]playerJSON {
	ids := make([]int64, 0, len(picks))
	for _, p := range picks {
		if p.PlayerID > 0 {
			ids = append(ids, p.PlayerID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	filter, err := buildPlayerIDFilter(ids)
	if err != nil {
		c.logger.WarnContext(ctx, "build draft player filter failed, picks keep bare ids", "league_id", leagueID, "error", err)
		return nil
	}

	var env leagueEnvelope
	if err := c.fetchLeagueViews(ctx, leagueID, season, []string{viewPlayerInfo}, nil, filter, &env); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		c.logger.WarnContext(ctx, "fetch draft player names failed, picks keep bare ids", "league_id", leagueID, "error", err)
		return nil
	}

	out := make(map[int64]playerJSON, len(env.Players))
	for _, item := range env.Players {
		if item.Player.ID > 0 {
			out[item.Player.ID] = item.Player
		}
	}
	return out
}

func (c *Client) FetchScoreboard(ctx context.Context, leagueID int64, season int, week int) ([]scoreboard.Matchup, error) {
	if err := validateLeagueRef(leagueID, season); err != nil {
		return nil, err
	}

	query := url.Values{}
	if week > 0 {
		query.Set("scoringPeriodId", strconv.Itoa(week))
	}

	var env leagueEnvelope
	if err := c.fetchLeagueViews(ctx, leagueID, season, []string{viewMatchup}, query, "", &env); err != nil {
		return nil, fmt.Errorf("fetch scoreboard league_id=%d week=%d: %w", leagueID, week, err)
	}

	out := make([]scoreboard.Matchup, 0, len(env.Schedule))
	for _, item := range env.Schedule {
		if week > 0 && item.MatchupPeriodID != week {
			continue
		}
		out = append(out, mapMatchup(item))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (c *Client) fetchLeagueViews(ctx context.Context, leagueID int64, season int, views []string, query url.Values, filter string, target any) error {
	path := fmt.Sprintf("/seasons/%d/segments/0/leagues/%d", season, leagueID)

	values := url.Values{}
	for key, list := range query {
		for _, v := range list {
			values.Add(key, v)
		}
	}
	for _, view := range views {
		values.Add("view", view)
	}

	return c.doJSON(ctx, path, values, filter, target)
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, filter string, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// Admission and outcome recording both happen inside the collapsed
	// flight, so the breaker sees exactly one Allow per upstream attempt.
	key := fullURL + "\n" + filter
	out, err, _ := c.flight.Do(key, func() (any, error) {
		if c.circuitEnabled {
			if err := c.breaker.Allow(); err != nil {
				c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
				return nil, fmt.Errorf("%w: fantasy platform is temporarily unavailable", usecase.ErrDependencyUnavailable)
			}
		}
		raw, reqErr := c.executeRequest(ctx, fullURL, filter)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if stderrors.Is(err, errESPNTransient) && !stderrors.Is(err, usecase.ErrRateLimited) {
			return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, c.redact(err.Error()))
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL, filter string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if filter != "" {
			req.Header.Set(fantasyFilterHeader, filter)
		}
		c.attachSession(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errESPNTransient, c.redact(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				classified := classifyStatus(resp.StatusCode, raw)
				if !isRetryableStatus(resp.StatusCode) {
					return nil, classified
				}
				lastErr = classified
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryDelay
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", c.redact(fullURL), "error", lastErr)
	return nil, lastErr
}

// classifyStatus maps an upstream status into the service error vocabulary.
// 429 and 5xx stay retryable and count against the circuit breaker.
func classifyStatus(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: ESPN session cookies rejected", usecase.ErrAuthFailed)
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: league is private or the session lacks access", usecase.ErrAccessDenied)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: upstream resource does not exist", usecase.ErrNotFound)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w: provider throttled the session", errESPNTransient, usecase.ErrRateLimited)
	case status >= 500:
		return fmt.Errorf("%w: provider status=%d body=%s", errESPNTransient, status, abbreviateBody(body))
	default:
		return fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(body))
	}
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errESPNTransient)
}

func (c *Client) attachSession(req *http.Request) {
	if c.espnS2 != "" {
		req.AddCookie(&http.Cookie{Name: "espn_s2", Value: c.espnS2})
	}
	if c.swid != "" {
		req.AddCookie(&http.Cookie{Name: "SWID", Value: c.swid})
	}
}

// redact strips session cookie values from text destined for logs or errors.
func (c *Client) redact(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if c.espnS2 != "" {
		value = strings.ReplaceAll(value, c.espnS2, "REDACTED")
	}
	if c.swid != "" {
		value = strings.ReplaceAll(value, c.swid, "REDACTED")
	}
	return cookieValueRegex.ReplaceAllString(value, "$1=REDACTED")
}

func buildFreeAgentFilter(limit int) (string, error) {
	filter := map[string]any{
		"players": map[string]any{
			"filterStatus": map[string]any{
				"value": []string{"FREEAGENT", "WAIVERS"},
			},
			"limit":                          limit,
			"sortPercOwned":                  map[string]any{"sortAsc": false, "sortPriority": 1},
			"filterRanksForScoringPeriodIds": map[string]any{"value": []int{}},
		},
	}
	raw, err := sonic.Marshal(filter)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func buildPlayerIDFilter(ids []int64) (string, error) {
	filter := map[string]any{
		"players": map[string]any{
			"filterIds": map[string]any{"value": ids},
			"limit":     len(ids),
		},
	}
	raw, err := sonic.Marshal(filter)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func validateLeagueRef(leagueID int64, season int) error {
	if leagueID <= 0 {
		return fmt.Errorf("%w: league id must be positive", usecase.ErrInvalidInput)
	}
	if season <= 0 {
		return fmt.Errorf("%w: season is required", usecase.ErrInvalidInput)
	}
	return nil
}

func abbreviateBody(raw []byte) string {
	const maxLen = 200
	body := strings.TrimSpace(string(raw))
	if len(body) > maxLen {
		return body[:maxLen] + "..."
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
