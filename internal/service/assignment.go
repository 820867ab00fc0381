package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/havenhq/haven/api/internal/database"
	"github.com/havenhq/haven/api/internal/model"
	"github.com/havenhq/haven/api/pkg/metrics"
)

// UserReader provides read access to user profiles.
type UserReader interface {
	GetUser(ctx context.Context, userID string) (*model.UserProfile, error)
}

// GroupStore provides group persistence for the join protocol.
type GroupStore interface {
	GetGroup(ctx context.Context, groupID string) (*model.Group, error)
	GetOpenGroups(ctx context.Context) ([]*model.Group, error)
	GetUserGroup(ctx context.Context, userID string) (*model.Group, error)
	CreateGroupWithFounder(ctx context.Context, group *model.Group, founder *model.UserProfile) error
	JoinGroup(ctx context.Context, groupID string, expectedSize int, joined model.Group, user *model.UserProfile) error
}

// AffinityTrigger accepts group IDs whose event matches should be refreshed.
// Enqueue must not block; it reports whether the ID was accepted.
type AffinityTrigger interface {
	Enqueue(groupID string) bool
}

// AssignmentService runs the join protocol: plan a placement over the open
// groups, then commit it atomically. A user is assigned at most once.
type AssignmentService struct {
	users    UserReader
	groups   GroupStore
	planner  *Planner
	trigger  AffinityTrigger
	groupMax int
	logger   *slog.Logger
}

// AssignmentServiceConfig holds assignment service dependencies
type AssignmentServiceConfig struct {
	Users   UserReader
	Groups  GroupStore
	Planner *Planner
	// Trigger is optional; without it group changes do not refresh
	// event matches.
	Trigger  AffinityTrigger
	GroupMax int
	Logger   *slog.Logger
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(cfg AssignmentServiceConfig) *AssignmentService {
	planner := cfg.Planner
	if planner == nil {
		planner = NewPlanner(PlannerConfig{})
	}
	groupMax := cfg.GroupMax
	if groupMax < 2 {
		groupMax = model.DefaultGroupMax
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AssignmentService{
		users:    cfg.Users,
		groups:   cfg.Groups,
		planner:  planner,
		trigger:  cfg.Trigger,
		groupMax: groupMax,
		logger:   logger,
	}
}

// AssignUser places a user into a group, creating one when no open group
// clears the matching threshold.
//
// The operation is idempotent: a user who already holds an assignment gets
// their existing group back without the planner running again. A join that
// loses the capacity race returns ErrGroupFull; the caller decides whether
// to resubmit.
func (s *AssignmentService) AssignUser(ctx context.Context, userID string) (*model.AssignmentResult, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.HasGroup() {
		metrics.RecordAssignment(metrics.OutcomeReplayed)
		return &model.AssignmentResult{GroupID: *user.GroupID, Replayed: true}, nil
	}
	if !user.QuestionnaireDone {
		metrics.RecordAssignment(metrics.OutcomeRejected)
		return nil, ErrQuestionnaireIncomplete
	}

	start := time.Now()
	candidates, err := s.groups.GetOpenGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load open groups: %w", err)
	}
	best, score := s.planner.BestMatch(user, candidates)
	metrics.RecordPlanDuration(time.Since(start).Seconds())
	metrics.UpdateOpenGroups(len(candidates))

	if best == nil {
		return s.formGroup(ctx, user)
	}

	joined := best.ApplyJoin(user)
	if err := s.groups.JoinGroup(ctx, best.ID, best.Capacity.Current, joined, user); err != nil {
		if errors.Is(err, database.ErrConflict) {
			metrics.RecordJoinConflict()
			metrics.RecordAssignment(metrics.OutcomeConflict)
			s.logger.Info("join lost capacity race",
				"user_id", user.ID,
				"group_id", best.ID,
			)
			return nil, &GroupFullError{GroupID: best.ID}
		}
		return nil, fmt.Errorf("failed to join group: %w", err)
	}

	metrics.RecordAssignment(metrics.OutcomeJoined)
	s.logger.Info("user joined group",
		"user_id", user.ID,
		"group_id", best.ID,
		"score", score,
		"group_size", joined.Capacity.Current,
	)
	s.refreshAffinity(best.ID)

	return &model.AssignmentResult{GroupID: best.ID}, nil
}

// formGroup creates a singleton group around the user.
func (s *AssignmentService) formGroup(ctx context.Context, user *model.UserProfile) (*model.AssignmentResult, error) {
	group := model.NewGroupWithFounder(newGroupID(), user)
	group.Capacity.Max = s.groupMax
	group.Capacity.IsOpen = group.Capacity.Current < s.groupMax

	if err := s.groups.CreateGroupWithFounder(ctx, group, user); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	metrics.RecordGroupCreated()
	metrics.RecordAssignment(metrics.OutcomeCreated)
	s.logger.Info("group formed",
		"user_id", user.ID,
		"group_id", group.ID,
	)
	s.refreshAffinity(group.ID)

	return &model.AssignmentResult{GroupID: group.ID, Created: true}, nil
}

// refreshAffinity hands a changed group to the async matcher. Runs after
// the join commit; a full queue drops the refresh rather than failing the
// assignment.
func (s *AssignmentService) refreshAffinity(groupID string) {
	if s.trigger == nil {
		return
	}
	if !s.trigger.Enqueue(groupID) {
		metrics.RecordQueueDrop()
		s.logger.Warn("affinity queue full, dropping refresh", "group_id", groupID)
	}
}

// GetGroup retrieves a group by ID.
func (s *AssignmentService) GetGroup(ctx context.Context, groupID string) (*model.Group, error) {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// GetUserGroup retrieves the group a user belongs to. Returns
// ErrUserUnassigned for a known user without an assignment.
func (s *AssignmentService) GetUserGroup(ctx context.Context, userID string) (*model.Group, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.HasGroup() {
		return nil, ErrUserUnassigned
	}

	group, err := s.groups.GetGroup(ctx, *user.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// newGroupID generates a record ID in the support group table. IDs are
// assigned client-side so group creation and the founder update can share
// one transaction.
func newGroupID() string {
	return "support_group:" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
