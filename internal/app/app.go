package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/riskibarqy/fantasy-assistant/external/espn"
	"github.com/riskibarqy/fantasy-assistant/internal/config"
	"github.com/riskibarqy/fantasy-assistant/internal/infrastructure/provider/mockdata"
	"github.com/riskibarqy/fantasy-assistant/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-assistant/internal/interfaces/draftws"
	"github.com/riskibarqy/fantasy-assistant/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/cache"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/ratelimit"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-assistant/internal/usecase"
)

// App holds everything main needs to run and later tear down: the HTTP
// server, the draft-room hub (nil when disabled) and the sync database
// handle (nil when sync is disabled).
type App struct {
	Server *http.Server
	Hub    *draftws.Hub
	DB     *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	provider := buildProvider(cfg, logger)

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL, cfg.CacheMaxEntries)
	}

	var limiter *ratelimit.FixedWindow
	if cfg.RateLimitEnabled {
		limiter = ratelimit.NewFixedWindow(cfg.RateLimitWindow, cfg.RateLimitMax)
	}

	var db *sqlx.DB
	var syncSvc *usecase.SyncService
	if cfg.SyncEnabled {
		opened, err := openDB(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("open sync database: %w", err)
		}
		db = opened
		syncSvc = usecase.NewSyncService(provider, postgres.NewTeamSnapshotRepository(db), cfg.SyncWorkers, logger)
	}

	var hub *draftws.Hub
	var draftRoom http.Handler
	var publisher httpapi.DraftPublisher
	if cfg.DraftRoomEnabled {
		hub = draftws.NewHub(logger)
		draftRoom = hub.Handler(cfg.APIKeys)
		publisher = hub
	}

	handler := httpapi.NewHandler(
		usecase.NewLeagueService(provider, logger),
		usecase.NewTeamService(provider, logger),
		usecase.NewPlayerService(provider, logger),
		usecase.NewDraftService(provider, logger),
		usecase.NewScoreboardService(provider, logger),
		syncSvc,
		cacheStore,
		publisher,
		cfg.DefaultSeason,
		logger,
	)

	router := httpapi.NewRouter(handler, draftRoom, logger, httpapi.RouterConfig{
		APIKeys:            cfg.APIKeys,
		InternalToken:      cfg.InternalToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Limiter:            limiter,
		CacheStore:         cacheStore,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{Server: server, Hub: hub, DB: db}, nil
}

// Close releases resources that outlive the HTTP server shutdown.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildProvider(cfg config.Config, logger *logging.Logger) usecase.FantasyProvider {
	if !cfg.ESPNEnabled {
		logger.Info("espn integration disabled, serving mock data")
		return mockdata.New()
	}

	return espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		ESPNS2:     cfg.ESPNS2,
		SWID:       cfg.SWID,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})
}

func openDB(cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	logger.Info("sync database configured", "db", dbNameFromURL(cfg.DBURL))
	return db, nil
}
