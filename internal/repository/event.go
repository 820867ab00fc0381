package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/havenhq/haven/api/internal/database"
	"github.com/havenhq/haven/api/internal/model"
)

// EventRepository handles event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// CreateEvent stores an event with its caller-assigned ID.
func (r *EventRepository) CreateEvent(ctx context.Context, event *model.Event) error {
	table, eid := splitRecordID(event.ID)
	if table == "" {
		return fmt.Errorf("event ID %q is not a record ID", event.ID)
	}

	query := `
		CREATE type::thing($tb, $eid) CONTENT {
			name: $name,
			target_profile: $target_profile,
			location: $location,
			created_on: time::now()
		}
	`
	err := r.db.Execute(ctx, query, map[string]interface{}{
		"tb":   table,
		"eid":  eid,
		"name": event.Name,
		"target_profile": map[string]interface{}{
			"event_type":           event.TargetProfile.EventType,
			"interests":            event.TargetProfile.Interests,
			"life_transitions":     event.TargetProfile.LifeTransitions,
			"target_phq9_severity": string(event.TargetProfile.TargetPHQ9Severity),
			"target_gad7_severity": string(event.TargetProfile.TargetGAD7Severity),
		},
		"location": locationVar(event.Location),
	})
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetEvent retrieves an event by ID. Returns (nil, nil) if not found.
func (r *EventRepository) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": eventID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return parseRecord[model.Event](result)
}

// GetAllEvents retrieves every stored event, newest first.
func (r *EventRepository) GetAllEvents(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT * FROM event ORDER BY created_on DESC`
	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	return parseRecords[model.Event](result)
}
