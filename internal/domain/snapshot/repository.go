package snapshot

import "context"

// Repository describes snapshot persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, item TeamSnapshot) error
	ListByLeague(ctx context.Context, leagueID int64, season int) ([]TeamSnapshot, error)
}
