package repository

import (
	"context"
	"fmt"

	"github.com/havenhq/haven/api/internal/database"
	"github.com/havenhq/haven/api/internal/model"
)

// MatchRepository handles event-to-group match record data access
type MatchRepository struct {
	db database.Database
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db database.Database) *MatchRepository {
	return &MatchRepository{db: db}
}

// CreateMatchRecord appends a match record. Records are append-only and
// intentionally not deduplicated: a pair re-matched by a later run produces
// a new row.
func (r *MatchRepository) CreateMatchRecord(ctx context.Context, match *model.MatchRecord) error {
	query := `
		CREATE match_record CONTENT {
			group_id: $group_id,
			event_id: $event_id,
			score: $score,
			created_on: time::now()
		}
	`
	err := r.db.Execute(ctx, query, map[string]interface{}{
		"group_id": match.GroupID,
		"event_id": match.EventID,
		"score":    match.Score,
	})
	if err != nil {
		return fmt.Errorf("failed to create match record: %w", err)
	}
	return nil
}

// GetMatchesByGroup retrieves match records for a group, newest first.
func (r *MatchRepository) GetMatchesByGroup(ctx context.Context, groupID string) ([]*model.MatchRecord, error) {
	query := `
		SELECT * FROM match_record
		WHERE group_id = $group_id
		ORDER BY created_on DESC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"group_id": groupID})
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	return parseRecords[model.MatchRecord](result)
}

// GetMatchesByEvent retrieves match records for an event, newest first.
func (r *MatchRepository) GetMatchesByEvent(ctx context.Context, eventID string) ([]*model.MatchRecord, error) {
	query := `
		SELECT * FROM match_record
		WHERE event_id = $event_id
		ORDER BY created_on DESC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	return parseRecords[model.MatchRecord](result)
}
