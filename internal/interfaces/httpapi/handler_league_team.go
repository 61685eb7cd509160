package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/league"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/roster"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/team"
	"github.com/riskibarqy/fantasy-assistant/internal/usecase"
)

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	ref, err := h.leagueRefFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.GetLeague(ctx, ref.LeagueID, ref.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", ref.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item), &meta{LeagueID: ref.LeagueID, Season: ref.Season})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	ref, err := h.leagueRefFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.teamService.ListTeams(ctx, ref.LeagueID, ref.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league_id", ref.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items,
		(&meta{LeagueID: ref.LeagueID, Season: ref.Season}).withCount(len(items)))
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	ref, err := h.leagueRefFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rawTeamID := strings.TrimSpace(r.PathValue("teamID"))
	teamID, err := strconv.ParseInt(rawTeamID, 10, 64)
	if err != nil || teamID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: team id must be a positive integer, got %q", usecase.ErrInvalidInput, rawTeamID))
		return
	}

	week, err := optionalIntQuery(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.GetRoster(ctx, ref.LeagueID, ref.Season, teamID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed",
			"league_id", ref.LeagueID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item),
		&meta{LeagueID: ref.LeagueID, Season: ref.Season, Week: item.Week})
}

type leagueDTO struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Size        int            `json:"size"`
	Season      int            `json:"season"`
	ScoringType string         `json:"scoringType"`
	CurrentWeek int            `json:"currentWeek"`
	RosterSlots map[string]int `json:"rosterSlots"`
}

type teamDTO struct {
	ID            int64   `json:"id"`
	LeagueID      int64   `json:"leagueId"`
	Name          string  `json:"name"`
	Abbrev        string  `json:"abbrev"`
	Owner         string  `json:"owner"`
	Record        string  `json:"record"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
	PlayoffSeed   int     `json:"playoffSeed"`
}

type rosterDTO struct {
	TeamID   int64            `json:"teamId"`
	Week     int              `json:"week"`
	Starters []rosterEntryDTO `json:"starters"`
	Bench    []rosterEntryDTO `json:"bench"`
}

type rosterEntryDTO struct {
	Slot            string    `json:"slot"`
	AcquisitionType string    `json:"acquisitionType"`
	Player          playerDTO `json:"player"`
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:          v.ID,
		Name:        v.Name,
		Size:        v.Size,
		Season:      v.Season,
		ScoringType: v.ScoringType,
		CurrentWeek: v.CurrentWeek,
		RosterSlots: v.RosterSlots,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:            v.ID,
		LeagueID:      v.LeagueID,
		Name:          v.Name,
		Abbrev:        v.Abbrev,
		Owner:         v.Owner,
		Record:        v.Record(),
		Wins:          v.Wins,
		Losses:        v.Losses,
		Ties:          v.Ties,
		PointsFor:     v.PointsFor,
		PointsAgainst: v.PointsAgainst,
		PlayoffSeed:   v.PlayoffSeed,
	}
}

func rosterToDTO(v usecase.TeamRoster) rosterDTO {
	return rosterDTO{
		TeamID:   v.TeamID,
		Week:     v.Week,
		Starters: rosterEntriesToDTO(v.Starters),
		Bench:    rosterEntriesToDTO(v.Bench),
	}
}

func rosterEntriesToDTO(entries []roster.Entry) []rosterEntryDTO {
	out := make([]rosterEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, rosterEntryDTO{
			Slot:            e.Slot,
			AcquisitionType: e.AcquisitionType,
			Player:          playerToDTO(e.Player),
		})
	}
	return out
}
