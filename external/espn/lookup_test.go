package espn

import "testing"

func TestSlotName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		id   int
		want string
	}{
		{0, "QB"},
		{2, "RB"},
		{4, "WR"},
		{6, "TE"},
		{16, "D/ST"},
		{17, "K"},
		{20, "BE"},
		{21, "IR"},
		{23, "FLEX"},
		{99, UnknownPosition},
		{-1, UnknownPosition},
	}
	for _, tc := range cases {
		if got := SlotName(tc.id); got != tc.want {
			t.Fatalf("SlotName(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestPositionName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		id   int
		want string
	}{
		{1, "QB"},
		{2, "RB"},
		{3, "WR"},
		{4, "TE"},
		{5, "K"},
		{16, "D/ST"},
		{0, UnknownPosition},
		{42, UnknownPosition},
	}
	for _, tc := range cases {
		if got := PositionName(tc.id); got != tc.want {
			t.Fatalf("PositionName(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestProTeamAbbrev(t *testing.T) {
	t.Parallel()

	cases := []struct {
		id   int
		want string
	}{
		{1, "ATL"},
		{12, "KC"},
		{25, "SF"},
		{33, "BAL"},
		{34, "HOU"},
		{0, FreeAgentTeam},
		{99, FreeAgentTeam},
	}
	for _, tc := range cases {
		if got := ProTeamAbbrev(tc.id); got != tc.want {
			t.Fatalf("ProTeamAbbrev(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestScoringTypeName(t *testing.T) {
	t.Parallel()

	if got := scoringTypeName("H2H_POINTS_PPR"); got != "PPR" {
		t.Fatalf("scoringTypeName(PPR) = %q", got)
	}
	if got := scoringTypeName("H2H_POINTS"); got != "STANDARD" {
		t.Fatalf("scoringTypeName(standard) = %q", got)
	}
	if got := scoringTypeName("SOMETHING_NEW"); got != "UNKNOWN" {
		t.Fatalf("scoringTypeName(unknown) = %q", got)
	}
}
