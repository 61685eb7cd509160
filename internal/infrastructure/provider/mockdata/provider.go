// Package mockdata is a deterministic stand-in for the upstream fantasy
// platform, used when the ESPN integration is disabled. The same league id
// and season always produce the same league, so local development and
// examples stay reproducible.
package mockdata

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/draft"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/league"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/player"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/roster"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/scoreboard"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/team"
	"github.com/riskibarqy/fantasy-assistant/internal/usecase"
)

const (
	leagueSize  = 10
	rosterSize  = 16
	draftRounds = rosterSize
	freeAgentN  = 120
	currentWeek = 4
)

var teamNames = []string{
	"Gridiron Gurus", "End Zone Elite", "Blitz Brigade", "Hail Mary Heroes",
	"Pocket Passers", "Red Zone Raiders", "Fourth Down Faithful", "Pylon Pirates",
	"Cellar Dwellers", "Waiver Wire Wizards",
}

var ownerNames = []string{
	"alex", "bailey", "casey", "devon", "emery",
	"frankie", "gale", "harper", "indigo", "jordan",
}

var positionCycle = []string{"QB", "RB", "RB", "WR", "WR", "TE", "K", "D/ST"}

var proTeamCycle = []string{"KC", "BUF", "SF", "DAL", "PHI", "BAL", "DET", "MIA"}

// Provider implements the fantasy provider interface from seeded data.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) FetchLeague(_ context.Context, leagueID int64, season int) (league.League, error) {
	return league.League{
		ID:          leagueID,
		Name:        fmt.Sprintf("Mock League %d", leagueID),
		Size:        leagueSize,
		Season:      season,
		ScoringType: league.ScoringPPR,
		CurrentWeek: currentWeek,
		RosterSlots: map[string]int{
			"QB": 1, "RB": 2, "WR": 2, "TE": 1, "FLEX": 1, "D/ST": 1, "K": 1, "BE": 7,
		},
	}, nil
}

func (p *Provider) FetchTeams(_ context.Context, leagueID int64, _ int) ([]team.Team, error) {
	out := make([]team.Team, 0, leagueSize)
	for i := 0; i < leagueSize; i++ {
		teamID := int64(i + 1)
		wins := int(seed(leagueID, teamID, "wins") % uint64(currentWeek))
		out = append(out, team.Team{
			ID:            teamID,
			LeagueID:      leagueID,
			Name:          teamNames[i],
			Abbrev:        abbrev(teamNames[i]),
			Owner:         ownerNames[i],
			Wins:          wins,
			Losses:        currentWeek - 1 - wins,
			PointsFor:     80 + float64(seed(leagueID, teamID, "pf")%600)/10,
			PointsAgainst: 80 + float64(seed(leagueID, teamID, "pa")%600)/10,
			PlayoffSeed:   i + 1,
		})
	}
	return out, nil
}

func (p *Provider) FetchRoster(_ context.Context, leagueID int64, season int, teamID int64, week int) (roster.Roster, error) {
	if teamID < 1 || teamID > leagueSize {
		return roster.Roster{}, fmt.Errorf("%w: team=%d in league=%d", usecase.ErrNotFound, teamID, leagueID)
	}
	if week <= 0 {
		week = currentWeek
	}

	entries := make([]roster.Entry, 0, rosterSize)
	for slot := 0; slot < rosterSize; slot++ {
		slotName := roster.SlotBench
		if slot < len(positionCycle) {
			slotName = positionCycle[slot]
		}
		entries = append(entries, roster.Entry{
			Player:          p.seededPlayer(leagueID, teamID*100+int64(slot), slot%len(positionCycle)),
			SlotID:          slot,
			Slot:            slotName,
			AcquisitionType: "DRAFT",
		})
	}

	return roster.Roster{TeamID: teamID, Week: week, Entries: entries}, nil
}

func (p *Provider) FetchFreeAgents(_ context.Context, leagueID int64, _ int, _ usecase.FreeAgentQuery) ([]player.Player, error) {
	out := make([]player.Player, 0, freeAgentN)
	for i := 0; i < freeAgentN; i++ {
		out = append(out, p.seededPlayer(leagueID, 10_000+int64(i), i%len(positionCycle)))
	}
	return out, nil
}

func (p *Provider) FetchDraft(_ context.Context, leagueID int64, _ int) ([]draft.Pick, error) {
	out := make([]draft.Pick, 0, draftRounds*leagueSize)
	overall := 0
	for round := 1; round <= draftRounds; round++ {
		for pick := 1; pick <= leagueSize; pick++ {
			overall++
			teamID := int64(pick)
			if round%2 == 0 {
				// snake draft: even rounds run in reverse
				teamID = int64(leagueSize - pick + 1)
			}
			item := p.seededPlayer(leagueID, 20_000+int64(overall), (round-1)%len(positionCycle))
			out = append(out, draft.Pick{
				Overall:     overall,
				Round:       round,
				RoundPick:   pick,
				TeamID:      teamID,
				PlayerID:    item.ID,
				PlayerName:  item.Name,
				Position:    item.Position,
				AutoDrafted: seed(leagueID, int64(overall), "auto")%7 == 0,
			})
		}
	}
	return out, nil
}

func (p *Provider) FetchScoreboard(_ context.Context, leagueID int64, _ int, week int) ([]scoreboard.Matchup, error) {
	if week <= 0 {
		week = currentWeek
	}

	out := make([]scoreboard.Matchup, 0, leagueSize/2)
	for i := 0; i < leagueSize/2; i++ {
		matchupID := int64(week*100 + i)
		home := int64(i*2 + 1)
		away := int64(i*2 + 2)
		homeScore := 70 + float64(seed(leagueID, matchupID, "home")%700)/10
		awayScore := 70 + float64(seed(leagueID, matchupID, "away")%700)/10

		winner := scoreboard.WinnerUndecided
		if week < currentWeek {
			switch {
			case homeScore > awayScore:
				winner = scoreboard.WinnerHome
			case awayScore > homeScore:
				winner = scoreboard.WinnerAway
			default:
				winner = scoreboard.WinnerTie
			}
		}

		out = append(out, scoreboard.Matchup{
			ID:         matchupID,
			Week:       week,
			HomeTeamID: home,
			AwayTeamID: away,
			HomeScore:  homeScore,
			AwayScore:  awayScore,
			Winner:     winner,
		})
	}
	return out, nil
}

func (p *Provider) seededPlayer(leagueID, playerID int64, positionIdx int) player.Player {
	return player.Player{
		ID:           playerID,
		Name:         fmt.Sprintf("Mock Player %d", playerID),
		Position:     positionCycle[positionIdx],
		ProTeam:      proTeamCycle[int(seed(leagueID, playerID, "team"))%len(proTeamCycle)],
		OwnershipPct: float64(seed(leagueID, playerID, "own")%1000) / 10,
		StartPct:     float64(seed(leagueID, playerID, "start")%1000) / 10,
		InjuryStatus: injuryFor(leagueID, playerID),
		Points:       float64(seed(leagueID, playerID, "pts")%300) / 10,
		ProjPoints:   float64(seed(leagueID, playerID, "proj")%300) / 10,
	}
}

func injuryFor(leagueID, playerID int64) string {
	switch seed(leagueID, playerID, "inj") % 20 {
	case 0:
		return player.InjuryQuestionable
	case 1:
		return player.InjuryOut
	default:
		return player.InjuryActive
	}
}

func seed(leagueID, entityID int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d|%d|%s", leagueID, entityID, salt)
	return h.Sum64()
}

func abbrev(name string) string {
	out := make([]byte, 0, 3)
	for i := 0; i < len(name) && len(out) < 3; i++ {
		if name[i] >= 'A' && name[i] <= 'Z' {
			out = append(out, name[i])
		}
	}
	return string(out)
}
