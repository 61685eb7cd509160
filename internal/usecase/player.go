package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fantasy-assistant/internal/domain/player"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
)

// PlayerService shapes the free-agent pool: position filter, ownership
// ordering and paging happen here, after the provider fetch.
type PlayerService struct {
	provider FantasyProvider
	logger   *logging.Logger
}

func NewPlayerService(provider FantasyProvider, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{provider: provider, logger: logger}
}

func (s *PlayerService) ListFreeAgents(ctx context.Context, leagueID int64, season int, q FreeAgentQuery) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ListFreeAgents")
	defer span.End()

	if err := validateLeagueRef(leagueID, season); err != nil {
		return nil, err
	}
	q, err := normalizeFreeAgentQuery(q)
	if err != nil {
		return nil, err
	}

	pool, err := s.provider.FetchFreeAgents(ctx, leagueID, season, q)
	if err != nil {
		return nil, fmt.Errorf("list free agents: %w", err)
	}

	out := pool
	if q.Position != "" {
		out = make([]player.Player, 0, len(pool))
		for _, p := range pool {
			if p.Position == q.Position {
				out = append(out, p)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OwnershipPct != out[j].OwnershipPct {
			return out[i].OwnershipPct > out[j].OwnershipPct
		}
		return out[i].Name < out[j].Name
	})

	if q.Offset >= len(out) {
		return []player.Player{}, nil
	}
	out = out[q.Offset:]
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}

	return out, nil
}
