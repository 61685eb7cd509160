package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-assistant/internal/platform/cache"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/ratelimit"
)

// RouterConfig carries the cross-cutting knobs the route table needs.
type RouterConfig struct {
	APIKeys            []string
	InternalToken      string
	CORSAllowedOrigins []string
	Limiter            *ratelimit.FixedWindow
	CacheStore         *cache.Store
}

// NewRouter builds the full handler chain. The draft-room handler performs
// its own key check during the upgrade handshake, so it sits outside the
// header guard.
func NewRouter(handler *Handler, draftRoom http.Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerLeagueRoutes(mux, handler, cfg)
	registerInternalRoutes(mux, handler, cfg)
	if draftRoom != nil {
		mux.Handle("GET /v1/draft/ws", draftRoom)
	}

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
