package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/player"
	"github.com/riskibarqy/fantasy-assistant/internal/usecase"
)

type freeAgentRequest struct {
	Position string `validate:"omitempty,oneof=QB RB WR TE K D/ST"`
	Limit    int    `validate:"omitempty,gte=1,lte=250"`
	Offset   int    `validate:"omitempty,gte=0"`
}

func (h *Handler) ListFreeAgents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFreeAgents")
	defer span.End()

	ref, err := h.leagueRefFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	limit, err := optionalIntQuery(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	offset, err := optionalIntQuery(r, "offset")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := freeAgentRequest{
		Position: strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("position"))),
		Limit:    limit,
		Offset:   offset,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.playerService.ListFreeAgents(ctx, ref.LeagueID, ref.Season, usecase.FreeAgentQuery{
		Position: req.Position,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list free agents failed", "league_id", ref.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items,
		(&meta{LeagueID: ref.LeagueID, Season: ref.Season, Position: req.Position}).withCount(len(items)))
}

type playerDTO struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Position     string  `json:"position"`
	ProTeam      string  `json:"proTeam"`
	OwnershipPct float64 `json:"ownershipPct"`
	StartPct     float64 `json:"startPct"`
	InjuryStatus string  `json:"injuryStatus"`
	Points       float64 `json:"points"`
	ProjPoints   float64 `json:"projectedPoints"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:           v.ID,
		Name:         v.Name,
		Position:     v.Position,
		ProTeam:      v.ProTeam,
		OwnershipPct: v.OwnershipPct,
		StartPct:     v.StartPct,
		InjuryStatus: v.InjuryStatus,
		Points:       v.Points,
		ProjPoints:   v.ProjPoints,
	}
}
