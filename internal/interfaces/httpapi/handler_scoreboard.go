package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/scoreboard"
)

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	ref, err := h.leagueRefFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	week, err := optionalIntQuery(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchups, err := h.scoreboardService.GetScoreboard(ctx, ref.LeagueID, ref.Season, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoreboard failed",
			"league_id", ref.LeagueID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchupDTO, 0, len(matchups))
	for _, m := range matchups {
		items = append(items, matchupToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items,
		(&meta{LeagueID: ref.LeagueID, Season: ref.Season, Week: week}).withCount(len(items)))
}

type matchupDTO struct {
	ID         int64   `json:"id"`
	Week       int     `json:"week"`
	HomeTeamID int64   `json:"homeTeamId"`
	AwayTeamID int64   `json:"awayTeamId"`
	HomeScore  float64 `json:"homeScore"`
	AwayScore  float64 `json:"awayScore"`
	Winner     string  `json:"winner"`
}

func matchupToDTO(v scoreboard.Matchup) matchupDTO {
	return matchupDTO{
		ID:         v.ID,
		Week:       v.Week,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		HomeScore:  v.HomeScore,
		AwayScore:  v.AwayScore,
		Winner:     v.Winner,
	}
}
