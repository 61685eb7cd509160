package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/snapshot"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/team"
	"github.com/riskibarqy/fantasy-assistant/internal/platform/logging"
)

const defaultSyncWorkers = 4

// SyncResult reports the outcome of one bulk team sync. A failed team is
// counted and logged, never fatal for the run.
type SyncResult struct {
	LeagueID    int64
	Season      int
	TeamsSynced int
	TeamsFailed int
	Duration    time.Duration
}

// SyncService persists a snapshot row per team using a bounded worker pool.
type SyncService struct {
	provider FantasyProvider
	repo     snapshot.Repository
	workers  int
	logger   *logging.Logger
	now      func() time.Time
}

func NewSyncService(provider FantasyProvider, repo snapshot.Repository, workers int, logger *logging.Logger) *SyncService {
	if workers <= 0 {
		workers = defaultSyncWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncService{
		provider: provider,
		repo:     repo,
		workers:  workers,
		logger:   logger,
		now:      time.Now,
	}
}

// SyncTeams fetches every team in the league and upserts one snapshot per
// team. Teams fan out over an ants pool; the pool is sized per call so a
// straggling run never starves the next one.
func (s *SyncService) SyncTeams(ctx context.Context, leagueID int64, season int) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncTeams")
	defer span.End()

	if err := validateLeagueRef(leagueID, season); err != nil {
		return SyncResult{}, err
	}
	if s.repo == nil {
		return SyncResult{}, fmt.Errorf("%w: snapshot persistence is not configured", ErrDependencyUnavailable)
	}

	started := s.now()
	teams, err := s.provider.FetchTeams(ctx, leagueID, season)
	if err != nil {
		return SyncResult{}, fmt.Errorf("sync teams: %w", err)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return SyncResult{}, fmt.Errorf("sync teams: build worker pool: %w", err)
	}
	defer pool.Release()

	var synced, failed atomic.Int64
	var wg sync.WaitGroup
	for _, item := range teams {
		item := item
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := s.syncTeam(ctx, leagueID, season, item); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "team snapshot failed",
					"league_id", leagueID, "team_id", item.ID, "error", err)
				return
			}
			synced.Add(1)
		})
		if submitErr != nil {
			wg.Done()
			failed.Add(1)
			s.logger.WarnContext(ctx, "team snapshot not scheduled",
				"league_id", leagueID, "team_id", item.ID, "error", submitErr)
		}
	}
	wg.Wait()

	result := SyncResult{
		LeagueID:    leagueID,
		Season:      season,
		TeamsSynced: int(synced.Load()),
		TeamsFailed: int(failed.Load()),
		Duration:    s.now().Sub(started),
	}
	s.logger.InfoContext(ctx, "team sync finished",
		"league_id", leagueID, "season", season,
		"teams_synced", result.TeamsSynced, "teams_failed", result.TeamsFailed,
		"duration", result.Duration.String())

	return result, nil
}

// ListSnapshots returns the persisted snapshot rows for a league, one per
// synced team.
func (s *SyncService) ListSnapshots(ctx context.Context, leagueID int64, season int) ([]snapshot.TeamSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.ListSnapshots")
	defer span.End()

	if err := validateLeagueRef(leagueID, season); err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, fmt.Errorf("%w: snapshot persistence is not configured", ErrDependencyUnavailable)
	}

	rows, err := s.repo.ListByLeague(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return rows, nil
}

func (s *SyncService) syncTeam(ctx context.Context, leagueID int64, season int, item team.Team) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := snapshot.TeamSnapshot{
		LeagueID: leagueID,
		Season:   season,
		TeamID:   item.ID,
		Payload: map[string]any{
			"name":           item.Name,
			"abbrev":         item.Abbrev,
			"owner":          item.Owner,
			"wins":           item.Wins,
			"losses":         item.Losses,
			"ties":           item.Ties,
			"points_for":     item.PointsFor,
			"points_against": item.PointsAgainst,
			"playoff_seed":   item.PlayoffSeed,
			"record":         item.Record(),
		},
		SyncedAt: s.now().UTC(),
	}
	if err := snap.Validate(); err != nil {
		return err
	}

	return s.repo.Upsert(ctx, snap)
}
