package espn

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/draft"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/league"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/player"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/roster"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/scoreboard"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/team"
)

const (
	statSourceActual    = 0
	statSourceProjected = 1
)

func mapLeague(env leagueEnvelope) league.League {
	slots := make(map[string]int, len(env.Settings.RosterSettings.LineupSlotCounts))
	for rawID, count := range env.Settings.RosterSettings.LineupSlotCounts {
		if count <= 0 {
			continue
		}
		slotID, err := strconv.Atoi(rawID)
		if err != nil {
			continue
		}
		slots[SlotName(slotID)] += count
	}

	return league.League{
		ID:          env.ID,
		Name:        strings.TrimSpace(env.Settings.Name),
		Size:        env.Settings.Size,
		Season:      env.SeasonID,
		ScoringType: scoringTypeName(env.Settings.ScoringSettings.ScoringType),
		CurrentWeek: env.Status.CurrentMatchupPeriod,
		RosterSlots: slots,
	}
}

func mapTeam(leagueID int64, item teamJSON, ownerNameByID map[string]string) team.Team {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		// Pre-2021 leagues split the name into location and nickname.
		name = strings.TrimSpace(strings.TrimSpace(item.Location) + " " + strings.TrimSpace(item.Nickname))
	}

	owner := ""
	if len(item.Owners) > 0 {
		owner = ownerNameByID[item.Owners[0]]
	}

	return team.Team{
		ID:            item.ID,
		LeagueID:      leagueID,
		Name:          name,
		Abbrev:        strings.TrimSpace(item.Abbrev),
		Owner:         owner,
		Wins:          item.Record.Overall.Wins,
		Losses:        item.Record.Overall.Losses,
		Ties:          item.Record.Overall.Ties,
		PointsFor:     item.Record.Overall.PointsFor,
		PointsAgainst: item.Record.Overall.PointsAgainst,
		PlayoffSeed:   item.PlayoffSeed,
	}
}

func mapOwnerNames(members []memberJSON) map[string]string {
	out := make(map[string]string, len(members))
	for _, m := range members {
		out[m.ID] = strings.TrimSpace(m.DisplayName)
	}
	return out
}

func mapRosterEntry(item rosterEntryJSON, scoringPeriod int) roster.Entry {
	return roster.Entry{
		Player:          mapPlayer(item.PlayerPoolEntry.Player, scoringPeriod),
		SlotID:          item.LineupSlotID,
		Slot:            SlotName(item.LineupSlotID),
		AcquisitionType: strings.TrimSpace(item.AcquisitionType),
		AcquisitionDate: item.AcquisitionDate,
	}
}

func mapPlayer(item playerJSON, scoringPeriod int) player.Player {
	return player.Player{
		ID:           item.ID,
		Name:         strings.TrimSpace(item.FullName),
		Position:     PositionName(item.DefaultPositionID),
		ProTeam:      ProTeamAbbrev(item.ProTeamID),
		OwnershipPct: item.Ownership.PercentOwned,
		StartPct:     item.Ownership.PercentStarted,
		InjuryStatus: injuryStatusName(item.InjuryStatus),
		Points:       appliedTotal(item.Stats, scoringPeriod, statSourceActual),
		ProjPoints:   appliedTotal(item.Stats, scoringPeriod, statSourceProjected),
	}
}

func injuryStatusName(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACTIVE":
		return player.InjuryActive
	case "QUESTIONABLE":
		return player.InjuryQuestionable
	case "DOUBTFUL":
		return player.InjuryDoubtful
	case "OUT":
		return player.InjuryOut
	case "INJURY_RESERVE", "IR":
		return player.InjuryIR
	default:
		return player.InjuryUnknown
	}
}

func appliedTotal(stats []statJSON, scoringPeriod, source int) float64 {
	for _, s := range stats {
		if s.ScoringPeriodID == scoringPeriod && s.StatSourceID == source {
			return s.AppliedTotal
		}
	}
	return 0
}

func mapPick(item pickJSON, playerByID map[int64]playerJSON) draft.Pick {
	pick := draft.Pick{
		Overall:     item.OverallPickNumber,
		Round:       item.RoundID,
		RoundPick:   item.RoundPickNumber,
		TeamID:      item.TeamID,
		PlayerID:    item.PlayerID,
		AutoDrafted: item.AutoDraftTypeID > 0,
		Keeper:      item.Keeper,
	}

	if p, ok := playerByID[item.PlayerID]; ok {
		pick.PlayerName = strings.TrimSpace(p.FullName)
		pick.Position = PositionName(p.DefaultPositionID)
	}

	return pick
}

func mapMatchup(item matchupJSON) scoreboard.Matchup {
	return scoreboard.Matchup{
		ID:         item.ID,
		Week:       item.MatchupPeriodID,
		HomeTeamID: item.Home.TeamID,
		AwayTeamID: item.Away.TeamID,
		HomeScore:  item.Home.TotalPoints,
		AwayScore:  item.Away.TotalPoints,
		Winner:     matchupWinner(item),
	}
}

func matchupWinner(item matchupJSON) string {
	switch strings.ToUpper(strings.TrimSpace(item.Winner)) {
	case scoreboard.WinnerHome:
		return scoreboard.WinnerHome
	case scoreboard.WinnerAway:
		return scoreboard.WinnerAway
	case scoreboard.WinnerTie:
		return scoreboard.WinnerTie
	}
	return scoreboard.WinnerUndecided
}
