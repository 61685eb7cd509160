package postgres

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-assistant/internal/domain/snapshot"
)

type teamSnapshotRow struct {
	LeagueID int64     `db:"league_id"`
	Season   int       `db:"season"`
	TeamID   int64     `db:"team_id"`
	Payload  []byte    `db:"payload"`
	SyncedAt time.Time `db:"synced_at"`
}

func snapshotToRow(item snapshot.TeamSnapshot) (teamSnapshotRow, error) {
	payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(item.Payload)
	if err != nil {
		return teamSnapshotRow{}, fmt.Errorf("marshal snapshot payload: %w", err)
	}

	return teamSnapshotRow{
		LeagueID: item.LeagueID,
		Season:   item.Season,
		TeamID:   item.TeamID,
		Payload:  payload,
		SyncedAt: item.SyncedAt.UTC(),
	}, nil
}

func snapshotFromRow(row teamSnapshotRow) (snapshot.TeamSnapshot, error) {
	var payload map[string]any
	if len(row.Payload) > 0 {
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(row.Payload, &payload); err != nil {
			return snapshot.TeamSnapshot{}, fmt.Errorf("unmarshal snapshot payload: %w", err)
		}
	}

	return snapshot.TeamSnapshot{
		LeagueID: row.LeagueID,
		Season:   row.Season,
		TeamID:   row.TeamID,
		Payload:  payload,
		SyncedAt: row.SyncedAt,
	}, nil
}
