package tests

/*
FEATURE: Event Affinity Matching
DOMAIN: Affinity Matcher

ACCEPTANCE CRITERIA:
===================

AC-AFFINITY-001: Event Registration
  GIVEN a valid event payload
  WHEN the event is registered
  THEN it is persisted
  AND a synchronous matching pass scores it against all groups

AC-AFFINITY-002: Distance Gate
  GIVEN a group beyond the distance cutoff
  WHEN an event is matched
  THEN no match record is created for that group

AC-AFFINITY-003: Append-Only History
  GIVEN a group/event pair already matched
  WHEN the pair is rescored by a later run
  THEN a second match record is appended

AC-AFFINITY-004: Group-Triggered Rematch
  GIVEN stored events and a changed group
  WHEN the group is rematched
  THEN the group is scored against every stored event
*/

import (
	"context"
	"testing"

	"github.com/havenhq/haven/api/internal/database"
	"github.com/havenhq/haven/api/internal/model"
	"github.com/havenhq/haven/api/internal/repository"
	"github.com/havenhq/haven/api/internal/service"
	"github.com/havenhq/haven/api/internal/testing/fixtures"
	"github.com/havenhq/haven/api/internal/testing/helpers"
	"github.com/havenhq/haven/api/internal/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAffinityService(db database.Database) *service.AffinityService {
	return service.NewAffinityService(service.AffinityServiceConfig{
		Groups:  repository.NewGroupRepository(db),
		Events:  repository.NewEventRepository(db),
		Matches: repository.NewMatchRepository(db),
	})
}

func TestAffinity_EventRegistration_MatchesNearbyGroup(t *testing.T) {
	// AC-AFFINITY-001: Event Registration
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	svc := newAffinityService(tdb.DB)
	ctx := context.Background()

	founder := f.CreateUser(t)
	group := f.CreateGroup(t, founder)

	req := &model.CreateEventRequest{
		Name:      "Trail Cleanup",
		EventType: model.EventTypeVolunteering,
		Interests: []string{"hiking", "art"},
		Location:  founder.Location,
	}

	event, matches, err := svc.CreateEvent(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, event)
	helpers.AssertRecordExists(t, tdb.DB, "event", event.ID)

	// Volunteering weighs interests at 0.9; full overlap clears the threshold
	require.Len(t, matches, 1)
	assert.Equal(t, group.ID, matches[0].GroupID)
	assert.Equal(t, event.ID, matches[0].EventID)
	assert.Greater(t, matches[0].Score, 0.0)

	// The synchronous pass persisted its records
	stored, err := svc.MatchesForEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, group.ID, stored[0].GroupID)
}

func TestAffinity_DistantGroup_NotMatched(t *testing.T) {
	// AC-AFFINITY-002: Distance Gate
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	svc := newAffinityService(tdb.DB)
	ctx := context.Background()

	// Group centroid in Los Angeles, event in Manhattan
	founder := f.CreateUser(t, fixtures.WithLocation(34.0522, -118.2437))
	f.CreateGroup(t, founder)

	req := &model.CreateEventRequest{
		Name:      "Trail Cleanup",
		EventType: model.EventTypeVolunteering,
		Interests: []string{"hiking", "art"},
		Location:  model.Location{Lat: 40.7128, Lng: -74.0060},
	}

	_, matches, err := svc.CreateEvent(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestAffinity_Rematch_AppendsRecords(t *testing.T) {
	// AC-AFFINITY-003: Append-Only History
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	svc := newAffinityService(tdb.DB)
	ctx := context.Background()

	founder := f.CreateUser(t)
	group := f.CreateGroup(t, founder)

	req := &model.CreateEventRequest{
		Name:      "Trail Cleanup",
		EventType: model.EventTypeVolunteering,
		Interests: []string{"hiking", "art"},
		Location:  founder.Location,
	}
	event, matches, err := svc.CreateEvent(ctx, req)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	// AC-AFFINITY-004: Group-Triggered Rematch
	rematches, err := svc.MatchGroupToEvents(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, rematches, 1)
	assert.Equal(t, event.ID, rematches[0].EventID)

	// Both passes left records; nothing is deduplicated
	stored, err := svc.MatchesForGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestAffinity_ClinicalTargeting(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	svc := newAffinityService(tdb.DB)
	ctx := context.Background()

	// Default fixture scores: PHQ-9 10 (moderate), GAD-7 8 (mild)
	founder := f.CreateUser(t)
	group := f.CreateGroup(t, founder)

	// Support Group events weigh the clinical axis at 0.5; a hit on either
	// severity bucket clears the threshold alone.
	req := &model.CreateEventRequest{
		Name:               "Anxiety Circle",
		EventType:          model.EventTypeSupportGroup,
		Interests:          []string{"meditation"},
		TargetGAD7Severity: model.SeverityMild,
		Location:           founder.Location,
	}
	_, matches, err := svc.CreateEvent(ctx, req)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, group.ID, matches[0].GroupID)

	// Same event aimed at severe-only groups misses on both axes
	miss := &model.CreateEventRequest{
		Name:               "Crisis Support",
		EventType:          model.EventTypeSupportGroup,
		Interests:          []string{"meditation"},
		TargetPHQ9Severity: model.SeveritySevere,
		TargetGAD7Severity: model.SeveritySevere,
		Location:           founder.Location,
	}
	_, matches, err = svc.CreateEvent(ctx, miss)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
