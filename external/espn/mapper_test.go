package espn

import (
	"testing"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/player"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapLeague(t *testing.T) {
	t.Parallel()

	env := leagueEnvelope{
		ID:       4242,
		SeasonID: 2025,
		Settings: leagueSettings{
			Name:            "  Office League  ",
			Size:            10,
			ScoringSettings: scoringSettings{ScoringType: "H2H_POINTS_PPR"},
			RosterSettings: rosterSettings{
				LineupSlotCounts: map[string]int{
					"0":  1,
					"2":  2,
					"4":  2,
					"6":  1,
					"23": 1,
					"20": 6,
					"16": 1,
					"17": 1,
					"11": 0,
					"x":  3,
				},
			},
		},
		Status: leagueStatus{CurrentMatchupPeriod: 7},
	}

	got := mapLeague(env)
	assert.Equal(t, int64(4242), got.ID)
	assert.Equal(t, "Office League", got.Name)
	assert.Equal(t, 10, got.Size)
	assert.Equal(t, 2025, got.Season)
	assert.Equal(t, "PPR", got.ScoringType)
	assert.Equal(t, 7, got.CurrentWeek)
	assert.Equal(t, map[string]int{
		"QB": 1, "RB": 2, "WR": 2, "TE": 1, "FLEX": 1, "BE": 6, "D/ST": 1, "K": 1,
	}, got.RosterSlots)
}

func TestMapTeam(t *testing.T) {
	t.Parallel()

	owners := mapOwnerNames([]memberJSON{
		{ID: "{GUID-1}", DisplayName: " alice "},
		{ID: "{GUID-2}", DisplayName: "bob"},
	})

	t.Run("modern name", func(t *testing.T) {
		got := mapTeam(4242, teamJSON{
			ID:          3,
			Abbrev:      "HAM",
			Name:        "Hamburglars",
			Owners:      []string{"{GUID-1}"},
			PlayoffSeed: 2,
			Record: recordJSON{Overall: recordLine{
				Wins: 5, Losses: 2, Ties: 1, PointsFor: 812.4, PointsAgainst: 701.2,
			}},
		}, owners)

		assert.Equal(t, int64(3), got.ID)
		assert.Equal(t, int64(4242), got.LeagueID)
		assert.Equal(t, "Hamburglars", got.Name)
		assert.Equal(t, "alice", got.Owner)
		assert.Equal(t, 5, got.Wins)
		assert.Equal(t, "5-2-1", got.Record())
	})

	t.Run("legacy split name", func(t *testing.T) {
		got := mapTeam(4242, teamJSON{
			ID:       4,
			Location: "Flying",
			Nickname: "Elvises",
			Owners:   []string{"{GUID-2}"},
		}, owners)
		assert.Equal(t, "Flying Elvises", got.Name)
		assert.Equal(t, "bob", got.Owner)
	})

	t.Run("unknown owner guid", func(t *testing.T) {
		got := mapTeam(4242, teamJSON{ID: 5, Owners: []string{"{NOBODY}"}}, owners)
		assert.Equal(t, "", got.Owner)
	})
}

func TestMapPlayer(t *testing.T) {
	t.Parallel()

	got := mapPlayer(playerJSON{
		ID:                1001,
		FullName:          "Test Runner",
		DefaultPositionID: 2,
		ProTeamID:         12,
		InjuryStatus:      "questionable",
		Ownership:         ownershipJSON{PercentOwned: 97.5, PercentStarted: 88.1},
		Stats: []statJSON{
			{ScoringPeriodID: 6, StatSourceID: statSourceActual, AppliedTotal: 11.0},
			{ScoringPeriodID: 7, StatSourceID: statSourceActual, AppliedTotal: 18.4},
			{ScoringPeriodID: 7, StatSourceID: statSourceProjected, AppliedTotal: 14.2},
		},
	}, 7)

	assert.Equal(t, "Test Runner", got.Name)
	assert.Equal(t, "RB", got.Position)
	assert.Equal(t, "KC", got.ProTeam)
	assert.Equal(t, player.InjuryQuestionable, got.InjuryStatus)
	assert.InDelta(t, 18.4, got.Points, 1e-9)
	assert.InDelta(t, 14.2, got.ProjPoints, 1e-9)
}

func TestMapPlayer_FreeAgentAndUnknowns(t *testing.T) {
	t.Parallel()

	got := mapPlayer(playerJSON{ID: 2, FullName: "Mystery Man", DefaultPositionID: 42}, 1)
	assert.Equal(t, UnknownPosition, got.Position)
	assert.Equal(t, FreeAgentTeam, got.ProTeam)
	assert.Equal(t, player.InjuryUnknown, got.InjuryStatus)
	assert.Zero(t, got.Points)
}

func TestMapRosterEntry(t *testing.T) {
	t.Parallel()

	got := mapRosterEntry(rosterEntryJSON{
		LineupSlotID:    20,
		AcquisitionType: "DRAFT",
		AcquisitionDate: 1756000000000,
		PlayerPoolEntry: playerPoolEntry{Player: playerJSON{ID: 7, FullName: "Bench Guy"}},
	}, 3)

	assert.Equal(t, 20, got.SlotID)
	assert.Equal(t, "BE", got.Slot)
	assert.Equal(t, "DRAFT", got.AcquisitionType)
	assert.Equal(t, "Bench Guy", got.Player.Name)
}

func TestMapPick(t *testing.T) {
	t.Parallel()

	byID := map[int64]playerJSON{
		55: {ID: 55, FullName: "First Overall", DefaultPositionID: 2},
	}

	hydrated := mapPick(pickJSON{
		OverallPickNumber: 1, RoundID: 1, RoundPickNumber: 1,
		TeamID: 9, PlayerID: 55, AutoDraftTypeID: 0,
	}, byID)
	require.Equal(t, "First Overall", hydrated.PlayerName)
	assert.Equal(t, "RB", hydrated.Position)
	assert.False(t, hydrated.AutoDrafted)

	bare := mapPick(pickJSON{
		OverallPickNumber: 2, RoundID: 1, RoundPickNumber: 2,
		TeamID: 4, PlayerID: 77, AutoDraftTypeID: 2,
	}, byID)
	assert.Empty(t, bare.PlayerName)
	assert.True(t, bare.AutoDrafted)
}

func TestMapMatchup(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"HOME", scoreboard.WinnerHome},
		{"away", scoreboard.WinnerAway},
		{"TIE", scoreboard.WinnerTie},
		{"UNDECIDED", scoreboard.WinnerUndecided},
		{"", scoreboard.WinnerUndecided},
	}
	for _, tc := range cases {
		got := mapMatchup(matchupJSON{
			ID:              8,
			MatchupPeriodID: 3,
			Home:            matchupSide{TeamID: 1, TotalPoints: 101.5},
			Away:            matchupSide{TeamID: 2, TotalPoints: 99.0},
			Winner:          tc.raw,
		})
		if got.Winner != tc.want {
			t.Fatalf("winner for %q = %q, want %q", tc.raw, got.Winner, tc.want)
		}
		assert.Equal(t, int64(1), got.HomeTeamID)
		assert.InDelta(t, 101.5, got.HomeScore, 1e-9)
	}
}
