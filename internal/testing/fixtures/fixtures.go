package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/havenhq/haven/api/internal/database"
	"github.com/havenhq/haven/api/internal/model"
	"github.com/havenhq/haven/api/internal/repository"
)

// Factory creates test entities in the database
type Factory struct {
	users  *repository.UserRepository
	groups *repository.GroupRepository
	events *repository.EventRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		users:  repository.NewUserRepository(db),
		groups: repository.NewGroupRepository(db),
		events: repository.NewEventRepository(db),
	}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ctx returns a context with timeout
func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	_ = cancel
	return c
}

// manhattan is the default fixture location. Every default entity lives
// here so distance gating never interferes unless a test opts out.
var manhattan = model.Location{Lat: 40.7128, Lng: -74.0060}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user profile creation
type UserOpts struct {
	PHQ9              int
	GAD7              int
	Interests         []string
	LifeTransitions   []string
	Location          model.Location
	QuestionnaireDone bool
}

// WithScores sets the clinical assessment scores
func WithScores(phq9, gad7 int) func(*UserOpts) {
	return func(o *UserOpts) {
		o.PHQ9 = phq9
		o.GAD7 = gad7
	}
}

// WithLocation places the user at the given coordinates
func WithLocation(lat, lng float64) func(*UserOpts) {
	return func(o *UserOpts) {
		o.Location = model.Location{Lat: lat, Lng: lng}
	}
}

// WithTags sets the user's interest and life-transition tags
func WithTags(interests, transitions []string) func(*UserOpts) {
	return func(o *UserOpts) {
		o.Interests = interests
		o.LifeTransitions = transitions
	}
}

// WithIncompleteQuestionnaire marks the intake questionnaire unfinished,
// which makes the user ineligible for assignment.
func WithIncompleteQuestionnaire() func(*UserOpts) {
	return func(o *UserOpts) {
		o.QuestionnaireDone = false
	}
}

// CreateUser creates a user profile with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.UserProfile {
	t.Helper()

	o := &UserOpts{
		PHQ9:              10,
		GAD7:              8,
		Interests:         []string{"hiking", "art"},
		LifeTransitions:   []string{"new_parent"},
		Location:          manhattan,
		QuestionnaireDone: true,
	}
	for _, fn := range opts {
		fn(o)
	}

	id := randomID()
	user := &model.UserProfile{
		ID:          "user:" + id,
		DisplayName: fmt.Sprintf("User %s", id),
		ClinicalScores: model.ClinicalScores{
			PHQ9: o.PHQ9,
			GAD7: o.GAD7,
		},
		Interests:         o.Interests,
		LifeTransitions:   o.LifeTransitions,
		Location:          o.Location,
		QuestionnaireDone: o.QuestionnaireDone,
	}

	if err := f.users.CreateUserProfile(ctx(), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// ============================================================================
// Group Fixtures
// ============================================================================

// CreateGroup creates a support group founded by the given user. The group
// profile is seeded from the founder, exactly as the join protocol would.
func (f *Factory) CreateGroup(t *testing.T, founder *model.UserProfile) *model.Group {
	t.Helper()

	group := model.NewGroupWithFounder("support_group:"+randomID(), founder)
	if err := f.groups.CreateGroupWithFounder(ctx(), group, founder); err != nil {
		t.Fatalf("fixtures: failed to create group: %v", err)
	}
	founder.GroupID = &group.ID
	return group
}

// CreateFullGroup creates a group whose capacity is exhausted, so the
// planner must skip it.
func (f *Factory) CreateFullGroup(t *testing.T, founder *model.UserProfile) *model.Group {
	t.Helper()

	group := model.NewGroupWithFounder("support_group:"+randomID(), founder)
	group.Capacity = model.GroupCapacity{Current: 1, Max: 1, IsOpen: false}
	if err := f.groups.CreateGroupWithFounder(ctx(), group, founder); err != nil {
		t.Fatalf("fixtures: failed to create full group: %v", err)
	}
	founder.GroupID = &group.ID
	return group
}

// ============================================================================
// Event Fixtures
// ============================================================================

// EventOpts customizes event creation
type EventOpts struct {
	Name            string
	EventType       string
	Interests       []string
	LifeTransitions []string
	PHQ9Severity    model.SeverityBucket
	GAD7Severity    model.SeverityBucket
	Location        model.Location
}

// WithEventType sets the event type
func WithEventType(eventType string) func(*EventOpts) {
	return func(o *EventOpts) {
		o.EventType = eventType
	}
}

// WithEventLocation places the event at the given coordinates
func WithEventLocation(lat, lng float64) func(*EventOpts) {
	return func(o *EventOpts) {
		o.Location = model.Location{Lat: lat, Lng: lng}
	}
}

// WithEventTags sets the event's target interest and transition tags
func WithEventTags(interests, transitions []string) func(*EventOpts) {
	return func(o *EventOpts) {
		o.Interests = interests
		o.LifeTransitions = transitions
	}
}

// WithTargetSeverities sets the clinical severity buckets the event targets
func WithTargetSeverities(phq9, gad7 model.SeverityBucket) func(*EventOpts) {
	return func(o *EventOpts) {
		o.PHQ9Severity = phq9
		o.GAD7Severity = gad7
	}
}

// CreateEvent stores an event directly, bypassing the affinity service, so
// tests can control exactly which events exist before a matching run.
func (f *Factory) CreateEvent(t *testing.T, opts ...func(*EventOpts)) *model.Event {
	t.Helper()

	id := randomID()
	o := &EventOpts{
		Name:         fmt.Sprintf("Event %s", id),
		EventType:    model.EventTypeVolunteering,
		Interests:    []string{"hiking", "art"},
		PHQ9Severity: model.SeverityAny,
		GAD7Severity: model.SeverityAny,
		Location:     manhattan,
	}
	for _, fn := range opts {
		fn(o)
	}

	event := &model.Event{
		ID:   "event:" + id,
		Name: o.Name,
		TargetProfile: model.TargetProfile{
			EventType:          o.EventType,
			Interests:          o.Interests,
			LifeTransitions:    o.LifeTransitions,
			TargetPHQ9Severity: o.PHQ9Severity,
			TargetGAD7Severity: o.GAD7Severity,
		},
		Location: o.Location,
	}

	if err := f.events.CreateEvent(ctx(), event); err != nil {
		t.Fatalf("fixtures: failed to create event: %v", err)
	}
	return event
}
