package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/draft"
	"github.com/riskibarqy/fantasy-assistant/internal/usecase"
)

func (h *Handler) GetDraftBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftBoard")
	defer span.End()

	ref, err := h.leagueRefFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rounds, err := h.draftService.GetDraftBoard(ctx, ref.LeagueID, ref.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft board failed", "league_id", ref.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	totalPicks := 0
	items := make([]draftRoundDTO, 0, len(rounds))
	for _, round := range rounds {
		totalPicks += len(round.Picks)
		items = append(items, draftRoundToDTO(round))
	}

	writeSuccess(ctx, w, http.StatusOK, items,
		(&meta{LeagueID: ref.LeagueID, Season: ref.Season}).withCount(totalPicks))
}

func (h *Handler) GetDraftGrades(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftGrades")
	defer span.End()

	ref, err := h.leagueRefFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	grades, err := h.draftService.GradeDraft(ctx, ref.LeagueID, ref.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "grade draft failed", "league_id", ref.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]draftGradeDTO, 0, len(grades))
	for _, g := range grades {
		items = append(items, draftGradeToDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items,
		(&meta{LeagueID: ref.LeagueID, Season: ref.Season}).withCount(len(items)))
}

type draftRoundDTO struct {
	Round int            `json:"round"`
	Picks []draftPickDTO `json:"picks"`
}

type draftPickDTO struct {
	Overall     int    `json:"overall"`
	Round       int    `json:"round"`
	RoundPick   int    `json:"roundPick"`
	TeamID      int64  `json:"teamId"`
	PlayerID    int64  `json:"playerId"`
	PlayerName  string `json:"playerName,omitempty"`
	Position    string `json:"position,omitempty"`
	AutoDrafted bool   `json:"autoDrafted"`
	Keeper      bool   `json:"keeper"`
}

type draftGradeDTO struct {
	TeamID         int64          `json:"teamId"`
	Score          int            `json:"score"`
	Letter         string         `json:"letter"`
	TotalPicks     int            `json:"totalPicks"`
	AutoDrafted    int            `json:"autoDrafted"`
	PositionCounts map[string]int `json:"positionCounts"`
}

func draftRoundToDTO(v usecase.DraftRound) draftRoundDTO {
	picks := make([]draftPickDTO, 0, len(v.Picks))
	for _, p := range v.Picks {
		picks = append(picks, draftPickDTO{
			Overall:     p.Overall,
			Round:       p.Round,
			RoundPick:   p.RoundPick,
			TeamID:      p.TeamID,
			PlayerID:    p.PlayerID,
			PlayerName:  p.PlayerName,
			Position:    p.Position,
			AutoDrafted: p.AutoDrafted,
			Keeper:      p.Keeper,
		})
	}
	return draftRoundDTO{Round: v.Round, Picks: picks}
}

func draftGradeToDTO(v draft.Grade) draftGradeDTO {
	return draftGradeDTO{
		TeamID:         v.TeamID,
		Score:          v.Score,
		Letter:         v.Letter,
		TotalPicks:     v.TotalPicks,
		AutoDrafted:    v.AutoDrafted,
		PositionCounts: v.PositionCounts,
	}
}
