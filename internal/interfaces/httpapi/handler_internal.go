package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-assistant/internal/usecase"
)

type syncTeamsRequest struct {
	LeagueID int64 `json:"league_id" validate:"required,gt=0"`
	Season   int   `json:"season" validate:"required,gte=2020,lte=2030"`
}

func (h *Handler) RunTeamSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunTeamSync")
	defer span.End()

	var req syncTeamsRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: team sync is disabled", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.syncService.SyncTeams(ctx, req.LeagueID, req.Season)
	if err != nil {
		h.logger.ErrorContext(ctx, "team sync failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if h.draftPublisher != nil {
		h.draftPublisher.Publish("score_update", map[string]any{
			"league_id":    result.LeagueID,
			"season":       result.Season,
			"teams_synced": result.TeamsSynced,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, syncResultDTO{
		LeagueID:    result.LeagueID,
		Season:      result.Season,
		TeamsSynced: result.TeamsSynced,
		TeamsFailed: result.TeamsFailed,
		DurationMS:  result.Duration.Milliseconds(),
	}, &meta{LeagueID: result.LeagueID, Season: result.Season})
}

// ListTeamSnapshots reports what the last sync persisted for a league, so
// operators can verify a run without touching the database.
func (h *Handler) ListTeamSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamSnapshots")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: team sync is disabled", usecase.ErrDependencyUnavailable))
		return
	}

	rawLeagueID := strings.TrimSpace(r.URL.Query().Get("league_id"))
	leagueID, err := strconv.ParseInt(rawLeagueID, 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: league_id must be a positive integer, got %q", usecase.ErrInvalidInput, rawLeagueID))
		return
	}

	season := h.defaultSeason
	if rawSeason := strings.TrimSpace(r.URL.Query().Get("season")); rawSeason != "" {
		season, err = strconv.Atoi(rawSeason)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: season must be an integer, got %q", usecase.ErrInvalidInput, rawSeason))
			return
		}
	}

	ref := leagueRef{LeagueID: leagueID, Season: season}
	if err := h.validateRequest(ctx, ref); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.syncService.ListSnapshots(ctx, leagueID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list team snapshots failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamSnapshotDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, teamSnapshotDTO{
			TeamID:   row.TeamID,
			Payload:  row.Payload,
			SyncedAt: row.SyncedAt.UTC().Format(time.RFC3339),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items,
		(&meta{LeagueID: leagueID, Season: season}).withCount(len(items)))
}

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearCache")
	defer span.End()

	if h.cacheStore == nil {
		writeSuccess(ctx, w, http.StatusOK, map[string]any{"cleared": 0}, nil)
		return
	}

	cleared := h.cacheStore.Len()
	h.cacheStore.Clear(ctx)
	h.logger.InfoContext(ctx, "response cache cleared", "entries", cleared)

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"cleared": cleared}, nil)
}

type draftEventRequest struct {
	Type string `json:"type" validate:"required,oneof=draft_update score_update player_status_change"`
	Data any    `json:"data"`
}

// PublishDraftEvent relays an operator-supplied event to every connected
// draft-room client.
func (h *Handler) PublishDraftEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishDraftEvent")
	defer span.End()

	var req draftEventRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if h.draftPublisher == nil {
		writeError(ctx, w, fmt.Errorf("%w: draft room is disabled", usecase.ErrDependencyUnavailable))
		return
	}

	h.draftPublisher.Publish(req.Type, req.Data)
	writeSuccess(ctx, w, http.StatusAccepted, map[string]any{"published": true, "type": req.Type}, nil)
}

type teamSnapshotDTO struct {
	TeamID   int64          `json:"teamId"`
	Payload  map[string]any `json:"payload"`
	SyncedAt string         `json:"syncedAt"`
}

type syncResultDTO struct {
	LeagueID    int64 `json:"leagueId"`
	Season      int   `json:"season"`
	TeamsSynced int   `json:"teamsSynced"`
	TeamsFailed int   `json:"teamsFailed"`
	DurationMS  int64 `json:"durationMs"`
}
