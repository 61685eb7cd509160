package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/draft"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
)

const (
	gradeBaseScore      = 100
	autoDraftPenalty    = 2
	missingCorePenalty  = 5
	positionOverPenalty = 2
)

// corePositionMinimums is the floor a drafted squad is expected to cover.
var corePositionMinimums = map[string]int{
	"QB":   1,
	"RB":   2,
	"WR":   2,
	"TE":   1,
	"K":    1,
	"D/ST": 1,
}

// positionCaps penalizes hoarding single-starter positions. RB and WR are
// deliberately uncapped.
var positionCaps = map[string]int{
	"QB":   3,
	"TE":   3,
	"K":    2,
	"D/ST": 2,
}

// DraftRound groups picks for the draft-board response.
type DraftRound struct {
	Round int
	Picks []draft.Pick
}

// DraftService returns the draft board and per-team heuristic grades.
type DraftService struct {
	provider FantasyProvider
	logger   *logging.Logger
}

func NewDraftService(provider FantasyProvider, logger *logging.Logger) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DraftService{provider: provider, logger: logger}
}

// GetDraftBoard returns the completed picks grouped by round, in pick order.
func (s *DraftService) GetDraftBoard(ctx context.Context, leagueID int64, season int) ([]DraftRound, error) {
	ctx, span := startUsecaseSpan(ctx, "DraftService.GetDraftBoard")
	defer span.End()

	picks, err := s.fetchPicks(ctx, leagueID, season)
	if err != nil {
		return nil, err
	}

	byRound := make(map[int][]draft.Pick)
	for _, p := range picks {
		byRound[p.Round] = append(byRound[p.Round], p)
	}

	rounds := make([]DraftRound, 0, len(byRound))
	for round, roundPicks := range byRound {
		sort.SliceStable(roundPicks, func(i, j int) bool { return roundPicks[i].Overall < roundPicks[j].Overall })
		rounds = append(rounds, DraftRound{Round: round, Picks: roundPicks})
	}
	sort.SliceStable(rounds, func(i, j int) bool { return rounds[i].Round < rounds[j].Round })

	return rounds, nil
}

// GradeDraft scores every team's draft. The heuristic is documented, not
// statistically validated: auto-drafted picks and positional imbalance pull
// a team down from a perfect score.
func (s *DraftService) GradeDraft(ctx context.Context, leagueID int64, season int) ([]draft.Grade, error) {
	ctx, span := startUsecaseSpan(ctx, "DraftService.GradeDraft")
	defer span.End()

	picks, err := s.fetchPicks(ctx, leagueID, season)
	if err != nil {
		return nil, err
	}

	byTeam := make(map[int64][]draft.Pick)
	for _, p := range picks {
		byTeam[p.TeamID] = append(byTeam[p.TeamID], p)
	}

	grades := make([]draft.Grade, 0, len(byTeam))
	for teamID, teamPicks := range byTeam {
		grades = append(grades, gradeTeam(teamID, teamPicks))
	}
	sort.SliceStable(grades, func(i, j int) bool {
		if grades[i].Score != grades[j].Score {
			return grades[i].Score > grades[j].Score
		}
		return grades[i].TeamID < grades[j].TeamID
	})

	return grades, nil
}

func (s *DraftService) fetchPicks(ctx context.Context, leagueID int64, season int) ([]draft.Pick, error) {
	if err := validateLeagueRef(leagueID, season); err != nil {
		return nil, err
	}

	picks, err := s.provider.FetchDraft(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("fetch draft: %w", err)
	}
	return picks, nil
}

func gradeTeam(teamID int64, picks []draft.Pick) draft.Grade {
	score := gradeBaseScore
	autoDrafted := 0
	counts := make(map[string]int)

	for _, p := range picks {
		if p.AutoDrafted {
			autoDrafted++
		}
		if p.Position != "" {
			counts[p.Position]++
		}
	}
	score -= autoDrafted * autoDraftPenalty

	// No positions at all means name hydration failed upstream; judging
	// balance on an empty map would punish every team equally and wrongly.
	if len(counts) > 0 {
		for position, minimum := range corePositionMinimums {
			if missing := minimum - counts[position]; missing > 0 {
				score -= missing * missingCorePenalty
			}
		}
		for position, limit := range positionCaps {
			if over := counts[position] - limit; over > 0 {
				score -= over * positionOverPenalty
			}
		}
	}

	if score < 0 {
		score = 0
	}
	if score > gradeBaseScore {
		score = gradeBaseScore
	}

	return draft.Grade{
		TeamID:         teamID,
		Score:          score,
		Letter:         letterGrade(score),
		TotalPicks:     len(picks),
		AutoDrafted:    autoDrafted,
		PositionCounts: counts,
	}
}

func letterGrade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
