package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/havenhq/haven/api/internal/database"
	"github.com/havenhq/haven/api/internal/model"
)

// UserRepository handles user profile data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// GetUser retrieves a user profile by ID. Returns (nil, nil) if not found.
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*model.UserProfile, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": userID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return parseRecord[model.UserProfile](result)
}

// CreateUserProfile creates a user profile with the caller-assigned ID.
// Used by seeding and intake flows; the matching engine itself only reads
// profiles and updates group_id through the join transaction.
func (r *UserRepository) CreateUserProfile(ctx context.Context, user *model.UserProfile) error {
	table, id := splitRecordID(user.ID)
	if table == "" {
		return fmt.Errorf("user ID %q is not a record ID", user.ID)
	}

	query := `
		CREATE type::thing($tb, $uid) CONTENT {
			display_name: $display_name,
			clinical_scores: $clinical_scores,
			interests: $interests,
			life_transitions: $life_transitions,
			location: $location,
			group_id: $group_id,
			questionnaire_done: $questionnaire_done,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	err := r.db.Execute(ctx, query, map[string]interface{}{
		"tb":                 table,
		"uid":                id,
		"display_name":       user.DisplayName,
		"clinical_scores":    scoresVar(user.ClinicalScores),
		"interests":          user.Interests,
		"life_transitions":   user.LifeTransitions,
		"location":           locationVar(user.Location),
		"group_id":           user.GroupID,
		"questionnaire_done": user.QuestionnaireDone,
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return database.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return isConflictError(err, "already exists") || isConflictError(err, "duplicate")
}
