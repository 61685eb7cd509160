package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/snapshot"
)

// TeamSnapshotRepository persists bulk-sync results. One row per
// (league, season, team); re-syncing overwrites in place.
type TeamSnapshotRepository struct {
	db *sqlx.DB
}

func NewTeamSnapshotRepository(db *sqlx.DB) *TeamSnapshotRepository {
	return &TeamSnapshotRepository{db: db}
}

const upsertTeamSnapshotQuery = `
INSERT INTO team_snapshots (league_id, season, team_id, payload, synced_at)
VALUES (:league_id, :season, :team_id, :payload, :synced_at)
ON CONFLICT (league_id, season, team_id)
DO UPDATE SET payload = EXCLUDED.payload, synced_at = EXCLUDED.synced_at`

func (r *TeamSnapshotRepository) Upsert(ctx context.Context, item snapshot.TeamSnapshot) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate snapshot: %w", err)
	}

	row, err := snapshotToRow(item)
	if err != nil {
		return err
	}

	if _, err := r.db.NamedExecContext(ctx, upsertTeamSnapshotQuery, row); err != nil {
		return fmt.Errorf("upsert team snapshot league=%d team=%d: %w", item.LeagueID, item.TeamID, err)
	}

	return nil
}

const listTeamSnapshotsQuery = `
SELECT league_id, season, team_id, payload, synced_at
FROM team_snapshots
WHERE league_id = $1 AND season = $2
ORDER BY team_id`

func (r *TeamSnapshotRepository) ListByLeague(ctx context.Context, leagueID int64, season int) ([]snapshot.TeamSnapshot, error) {
	var rows []teamSnapshotRow
	if err := r.db.SelectContext(ctx, &rows, listTeamSnapshotsQuery, leagueID, season); err != nil {
		return nil, fmt.Errorf("list team snapshots league=%d season=%d: %w", leagueID, season, err)
	}

	out := make([]snapshot.TeamSnapshot, 0, len(rows))
	for _, row := range rows {
		item, err := snapshotFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
