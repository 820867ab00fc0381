package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/havenhq/haven/api/internal/model"
	"github.com/havenhq/haven/api/pkg/metrics"
)

// GroupLister provides read access to groups for the event matcher.
type GroupLister interface {
	GetGroup(ctx context.Context, groupID string) (*model.Group, error)
	GetAllGroups(ctx context.Context) ([]*model.Group, error)
}

// EventStore provides event persistence.
type EventStore interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
	GetAllEvents(ctx context.Context) ([]*model.Event, error)
}

// MatchStore provides match record persistence.
type MatchStore interface {
	CreateMatchRecord(ctx context.Context, match *model.MatchRecord) error
	GetMatchesByGroup(ctx context.Context, groupID string) ([]*model.MatchRecord, error)
	GetMatchesByEvent(ctx context.Context, eventID string) ([]*model.MatchRecord, error)
}

// AffinityService scores events against group profiles and records the
// pairs that clear the acceptance threshold.
//
// Matching runs in both directions: a new event is scored against every
// group synchronously, and a changed group is rescored against every event
// by the async worker. Records are append-only, so a pair that stays
// matched across runs accumulates one record per run.
type AffinityService struct {
	groups   GroupLister
	events   EventStore
	matches  MatchStore
	geo      *GeoService
	profiles map[string]model.EventTypeWeights
	logger   *slog.Logger
}

// AffinityServiceConfig holds affinity service dependencies
type AffinityServiceConfig struct {
	Groups  GroupLister
	Events  EventStore
	Matches MatchStore
	Geo     *GeoService
	// Profiles maps event types to weight profiles; unknown types use
	// the built-in default profile.
	Profiles map[string]model.EventTypeWeights
	Logger   *slog.Logger
}

// NewAffinityService creates a new affinity service
func NewAffinityService(cfg AffinityServiceConfig) *AffinityService {
	geo := cfg.Geo
	if geo == nil {
		geo = NewGeoService()
	}
	profiles := cfg.Profiles
	if profiles == nil {
		profiles = model.DefaultEventWeightProfiles
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AffinityService{
		groups:   cfg.Groups,
		events:   cfg.Events,
		matches:  cfg.Matches,
		geo:      geo,
		profiles: profiles,
		logger:   logger,
	}
}

// CreateEvent registers an event and immediately matches it against all
// groups. The caller validates the request first; Normalize fills optional
// severity targets.
func (s *AffinityService) CreateEvent(ctx context.Context, req *model.CreateEventRequest) (*model.Event, []*model.MatchRecord, error) {
	req.Normalize()

	event := &model.Event{
		ID:   newEventID(),
		Name: req.Name,
		TargetProfile: model.TargetProfile{
			EventType:          req.EventType,
			Interests:          req.Interests,
			LifeTransitions:    req.LifeTransitions,
			TargetPHQ9Severity: req.TargetPHQ9Severity,
			TargetGAD7Severity: req.TargetGAD7Severity,
		},
		Location: req.Location,
	}

	if err := s.events.CreateEvent(ctx, event); err != nil {
		return nil, nil, fmt.Errorf("failed to create event: %w", err)
	}

	records, err := s.MatchEventToGroups(ctx, event)
	if err != nil {
		// The event exists; matching can be replayed later.
		s.logger.Error("matching after event creation failed",
			"event_id", event.ID,
			"error", err,
		)
		return event, nil, nil
	}
	return event, records, nil
}

// GetEvent retrieves an event by ID.
func (s *AffinityService) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// MatchEventToGroups scores one event against every group and records the
// matches.
func (s *AffinityService) MatchEventToGroups(ctx context.Context, event *model.Event) ([]*model.MatchRecord, error) {
	groups, err := s.groups.GetAllGroups(ctx)
	if err != nil {
		metrics.RecordAffinityRun(metrics.TriggerEventCreated, "error")
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}

	records := make([]*model.MatchRecord, 0)
	for _, group := range groups {
		score, ok := s.scorePair(event, group)
		if !ok {
			continue
		}
		record := &model.MatchRecord{
			GroupID: group.ID,
			EventID: event.ID,
			Score:   score,
		}
		if err := s.matches.CreateMatchRecord(ctx, record); err != nil {
			s.logger.Warn("failed to record match",
				"event_id", event.ID,
				"group_id", group.ID,
				"error", err,
			)
			continue
		}
		records = append(records, record)
	}

	metrics.RecordAffinityMatches(metrics.TriggerEventCreated, len(records))
	metrics.RecordAffinityRun(metrics.TriggerEventCreated, "ok")
	s.logger.Info("event matched against groups",
		"event_id", event.ID,
		"groups_scanned", len(groups),
		"matches", len(records),
	)
	return records, nil
}

// MatchGroupToEvents rescores a group against every known event. Called by
// the async worker after the group's profile changed.
func (s *AffinityService) MatchGroupToEvents(ctx context.Context, groupID string) ([]*model.MatchRecord, error) {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		metrics.RecordAffinityRun(metrics.TriggerGroupChanged, "error")
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if group == nil {
		metrics.RecordAffinityRun(metrics.TriggerGroupChanged, "error")
		return nil, ErrGroupNotFound
	}

	events, err := s.events.GetAllEvents(ctx)
	if err != nil {
		metrics.RecordAffinityRun(metrics.TriggerGroupChanged, "error")
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	records := make([]*model.MatchRecord, 0)
	for _, event := range events {
		score, ok := s.scorePair(event, group)
		if !ok {
			continue
		}
		record := &model.MatchRecord{
			GroupID: group.ID,
			EventID: event.ID,
			Score:   score,
		}
		if err := s.matches.CreateMatchRecord(ctx, record); err != nil {
			s.logger.Warn("failed to record match",
				"event_id", event.ID,
				"group_id", group.ID,
				"error", err,
			)
			continue
		}
		records = append(records, record)
	}

	metrics.RecordAffinityMatches(metrics.TriggerGroupChanged, len(records))
	metrics.RecordAffinityRun(metrics.TriggerGroupChanged, "ok")
	s.logger.Info("group matched against events",
		"group_id", group.ID,
		"events_scanned", len(events),
		"matches", len(records),
	)
	return records, nil
}

// MatchesForGroup returns the recorded event matches for a group, newest
// first.
func (s *AffinityService) MatchesForGroup(ctx context.Context, groupID string) ([]*model.MatchRecord, error) {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return s.matches.GetMatchesByGroup(ctx, groupID)
}

// MatchesForEvent returns the recorded group matches for an event, newest
// first.
func (s *AffinityService) MatchesForEvent(ctx context.Context, eventID string) ([]*model.MatchRecord, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return s.matches.GetMatchesByEvent(ctx, eventID)
}

// scorePair computes the affinity between an event and a group. It returns
// false when the pair is out of operational range or below the acceptance
// threshold.
func (s *AffinityService) scorePair(event *model.Event, group *model.Group) (float64, bool) {
	if !s.geo.IsWithinRadius(
		event.Location.Lat, event.Location.Lng,
		group.Profile.Centroid.Lat, group.Profile.Centroid.Lng,
		model.EventCutoffKm,
	) {
		return 0, false
	}

	weights := model.ProfileFor(s.profiles, event.TargetProfile.EventType)
	score := weights.Interest*Jaccard(event.TargetProfile.Interests, group.Profile.SharedInterests) +
		weights.Transition*Jaccard(event.TargetProfile.LifeTransitions, group.Profile.CommonLifeTransitions) +
		weights.Clinical*clinicalMatch(event, group)

	return score, score >= model.EventMatchThreshold
}

// clinicalMatch returns 1 when the group's mean score falls inside the
// event's target bucket on at least one axis, 0 otherwise.
func clinicalMatch(event *model.Event, group *model.Group) float64 {
	if event.TargetProfile.TargetPHQ9Severity.Contains(group.Profile.AvgPHQ9, model.PHQ9Max) ||
		event.TargetProfile.TargetGAD7Severity.Contains(group.Profile.AvgGAD7, model.GAD7Max) {
		return 1
	}
	return 0
}

// newEventID generates a record ID in the event table.
func newEventID() string {
	return "event:" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
