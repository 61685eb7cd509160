package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/cache"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
	"github.com/riskibarqy/fantasy-assistant/internal/usecase"
)

// DraftPublisher fans events out to connected draft-room clients.
type DraftPublisher interface {
	Publish(eventType string, data any)
}

type Handler struct {
	leagueService     *usecase.LeagueService
	teamService       *usecase.TeamService
	playerService     *usecase.PlayerService
	draftService      *usecase.DraftService
	scoreboardService *usecase.ScoreboardService
	syncService       *usecase.SyncService
	cacheStore        *cache.Store
	draftPublisher    DraftPublisher
	defaultSeason     int
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	draftService *usecase.DraftService,
	scoreboardService *usecase.ScoreboardService,
	syncService *usecase.SyncService,
	cacheStore *cache.Store,
	draftPublisher DraftPublisher,
	defaultSeason int,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:     leagueService,
		teamService:       teamService,
		playerService:     playerService,
		draftService:      draftService,
		scoreboardService: scoreboardService,
		syncService:       syncService,
		cacheStore:        cacheStore,
		draftPublisher:    draftPublisher,
		defaultSeason:     defaultSeason,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"}, nil)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// leagueRef is the common path + query slice every league-scoped route
// validates before touching upstream.
type leagueRef struct {
	LeagueID int64 `validate:"required,gt=0"`
	Season   int   `validate:"required,gte=2020,lte=2030"`
}

func (h *Handler) leagueRefFromRequest(r *http.Request) (leagueRef, error) {
	rawLeagueID := strings.TrimSpace(r.PathValue("leagueID"))
	leagueID, err := strconv.ParseInt(rawLeagueID, 10, 64)
	if err != nil {
		return leagueRef{}, fmt.Errorf("%w: league id must be a positive integer, got %q", usecase.ErrInvalidInput, rawLeagueID)
	}

	season := h.defaultSeason
	if rawSeason := strings.TrimSpace(r.URL.Query().Get("season")); rawSeason != "" {
		season, err = strconv.Atoi(rawSeason)
		if err != nil {
			return leagueRef{}, fmt.Errorf("%w: season must be an integer, got %q", usecase.ErrInvalidInput, rawSeason)
		}
	}

	ref := leagueRef{LeagueID: leagueID, Season: season}
	if err := h.validateRequest(r.Context(), ref); err != nil {
		return leagueRef{}, err
	}
	return ref, nil
}

func optionalIntQuery(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}
