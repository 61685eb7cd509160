package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	guard := func(h http.HandlerFunc) http.Handler {
		return RequireAPIKey(cfg.APIKeys, RateLimit(cfg.Limiter, CacheResponses(cfg.CacheStore, h)))
	}

	mux.Handle("GET /v1/leagues/{leagueID}", guard(handler.GetLeague))
	mux.Handle("GET /v1/leagues/{leagueID}/teams", guard(handler.ListTeams))
	mux.Handle("GET /v1/leagues/{leagueID}/teams/{teamID}/roster", guard(handler.GetRoster))
	mux.Handle("GET /v1/leagues/{leagueID}/players", guard(handler.ListFreeAgents))
	mux.Handle("GET /v1/leagues/{leagueID}/draft", guard(handler.GetDraftBoard))
	mux.Handle("GET /v1/leagues/{leagueID}/draft/grades", guard(handler.GetDraftGrades))
	mux.Handle("GET /v1/leagues/{leagueID}/scoreboard", guard(handler.GetScoreboard))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.Handle("POST /v1/internal/sync/teams", RequireInternalToken(cfg.InternalToken, http.HandlerFunc(handler.RunTeamSync)))
	mux.Handle("GET /v1/internal/sync/teams", RequireInternalToken(cfg.InternalToken, http.HandlerFunc(handler.ListTeamSnapshots)))
	mux.Handle("POST /v1/internal/draft/events", RequireInternalToken(cfg.InternalToken, http.HandlerFunc(handler.PublishDraftEvent)))
	mux.Handle("DELETE /v1/internal/cache", RequireInternalToken(cfg.InternalToken, http.HandlerFunc(handler.ClearCache)))
}
