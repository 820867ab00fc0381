package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/havenhq/haven/api/internal/database"
	"github.com/havenhq/haven/api/internal/model"
)

// GroupTable is the SurrealDB table holding support groups. ("group" is a
// SurrealQL keyword, so the table carries the full name.)
const GroupTable = "support_group"

const groupFullTag = "group_full"

// GroupRepository handles support group data access
type GroupRepository struct {
	db database.Database
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db database.Database) *GroupRepository {
	return &GroupRepository{db: db}
}

// GetGroup retrieves a group by ID. Returns (nil, nil) if not found.
func (r *GroupRepository) GetGroup(ctx context.Context, groupID string) (*model.Group, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": groupID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return parseRecord[model.Group](result)
}

// GetOpenGroups retrieves every group still accepting members. The planner
// scans this full set; there is no pre-filtering beyond the open flag.
func (r *GroupRepository) GetOpenGroups(ctx context.Context) ([]*model.Group, error) {
	query := `
		SELECT * FROM support_group
		WHERE capacity.is_open = true
		ORDER BY created_on ASC
	`
	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get open groups: %w", err)
	}

	return parseRecords[model.Group](result)
}

// GetAllGroups retrieves all groups, open or closed.
func (r *GroupRepository) GetAllGroups(ctx context.Context) ([]*model.Group, error) {
	query := `SELECT * FROM support_group ORDER BY created_on ASC`
	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups: %w", err)
	}

	return parseRecords[model.Group](result)
}

// CreateGroupWithFounder creates a new group and assigns the founder to it
// in a single transaction. The group must carry a caller-assigned ID so the
// dependent user update can reference it.
func (r *GroupRepository) CreateGroupWithFounder(ctx context.Context, group *model.Group, founder *model.UserProfile) error {
	table, gid := splitRecordID(group.ID)
	if table == "" {
		return fmt.Errorf("group ID %q is not a record ID", group.ID)
	}

	tb := database.NewTxBuilder()
	tb.Add(`
		CREATE type::thing($tb, $gid) CONTENT {
			members: $members,
			profile: $profile,
			capacity: $capacity,
			created_on: time::now(),
			updated_on: time::now()
		}`, map[string]interface{}{
		"tb":       table,
		"gid":      gid,
		"members":  group.Members,
		"profile":  profileVar(group.Profile),
		"capacity": capacityVar(group.Capacity),
	})
	tb.Add(`
		UPDATE type::record($founder_id) SET
			group_id = $new_group,
			updated_on = time::now()`, map[string]interface{}{
		"founder_id": founder.ID,
		"new_group":  group.ID,
	})

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// JoinGroup commits a planned join atomically. The caller passes the group
// state its plan was based on plus the post-join state from ApplyJoin; the
// transaction revalidates the (id, expected size) precondition and aborts
// with database.ErrConflict when another join won the slot first.
func (r *GroupRepository) JoinGroup(ctx context.Context, groupID string, expectedSize int, joined model.Group, user *model.UserProfile) error {
	tb := database.NewTxBuilder()

	tb.Add(`
		LET $slot = UPDATE type::record($target_group) SET
			members += $member,
			profile.avg_phq9 = $avg_phq9,
			profile.avg_gad7 = $avg_gad7,
			profile.shared_interests = $shared_interests,
			profile.common_life_transitions = $common_life_transitions,
			capacity.current = $new_size,
			capacity.is_open = $still_open,
			updated_on = time::now()
		WHERE capacity.current = $expected_size AND capacity.is_open = true`,
		map[string]interface{}{
			"target_group":            groupID,
			"member":                  user.ID,
			"avg_phq9":                joined.Profile.AvgPHQ9,
			"avg_gad7":                joined.Profile.AvgGAD7,
			"shared_interests":        joined.Profile.SharedInterests,
			"common_life_transitions": joined.Profile.CommonLifeTransitions,
			"new_size":                joined.Capacity.Current,
			"still_open":              joined.Capacity.IsOpen,
			"expected_size":           expectedSize,
		})
	tb.AddRaw(`IF array::len($slot) == 0 { THROW "group_full" }`)
	tb.Add(`
		UPDATE type::record($joining_user) SET
			group_id = $joined_group,
			updated_on = time::now()`,
		map[string]interface{}{
			"joining_user": user.ID,
			"joined_group": groupID,
		})

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		if isConflictError(err, groupFullTag) {
			return fmt.Errorf("%w: group %s", database.ErrConflict, groupID)
		}
		return fmt.Errorf("failed to join group: %w", err)
	}
	return nil
}

// GetUserGroup retrieves the group a user belongs to, or (nil, nil) when the
// user is unassigned.
func (r *GroupRepository) GetUserGroup(ctx context.Context, userID string) (*model.Group, error) {
	query := `SELECT * FROM support_group WHERE $uid IN members LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"uid": userID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user group: %w", err)
	}

	return parseRecord[model.Group](result)
}

func profileVar(p model.GroupProfile) map[string]interface{} {
	return map[string]interface{}{
		"avg_phq9":                p.AvgPHQ9,
		"avg_gad7":                p.AvgGAD7,
		"shared_interests":        p.SharedInterests,
		"common_life_transitions": p.CommonLifeTransitions,
		"centroid":                locationVar(p.Centroid),
	}
}

func capacityVar(c model.GroupCapacity) map[string]interface{} {
	return map[string]interface{}{
		"current": c.Current,
		"max":     c.Max,
		"is_open": c.IsOpen,
	}
}
