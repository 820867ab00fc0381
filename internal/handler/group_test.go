package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/havenhq/haven/api/internal/model"
	"github.com/havenhq/haven/api/internal/service"
)

func newTestGroupHandler(groups *stubGroups, lister *stubGroupLister, matches *stubMatchStore) *GroupHandler {
	assignment := service.NewAssignmentService(service.AssignmentServiceConfig{
		Users:  &stubUsers{},
		Groups: groups,
	})
	affinity := service.NewAffinityService(service.AffinityServiceConfig{
		Groups:  lister,
		Events:  &stubEventStore{},
		Matches: matches,
	})
	return NewGroupHandler(assignment, affinity)
}

// ============================================================================
// GetGroup Tests
// ============================================================================

func TestGetGroup_Found_ReturnsGroupWithLinks(t *testing.T) {
	t.Parallel()

	group := &model.Group{
		ID:       "support_group:circle",
		Members:  []string{"user:a", "user:b"},
		Capacity: model.GroupCapacity{Current: 2, Max: 10, IsOpen: true},
	}
	h := newTestGroupHandler(&stubGroups{group: group}, &stubGroupLister{}, &stubMatchStore{})

	req := httptest.NewRequest(http.MethodGet, "/v1/groups/support_group:circle", nil)
	req.SetPathValue("groupId", "support_group:circle")
	rec := httptest.NewRecorder()
	h.GetGroup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  model.Group       `json:"data"`
		Links map[string]string `json:"links"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.ID != group.ID {
		t.Errorf("expected %s, got %s", group.ID, resp.Data.ID)
	}
	if resp.Links["events"] != "/v1/groups/support_group:circle/events" {
		t.Errorf("unexpected events link: %q", resp.Links["events"])
	}
}

func TestGetGroup_Missing_Returns404(t *testing.T) {
	t.Parallel()

	h := newTestGroupHandler(&stubGroups{group: nil}, &stubGroupLister{}, &stubMatchStore{})

	req := httptest.NewRequest(http.MethodGet, "/v1/groups/support_group:gone", nil)
	req.SetPathValue("groupId", "support_group:gone")
	rec := httptest.NewRecorder()
	h.GetGroup(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

// ============================================================================
// GetGroupEvents Tests
// ============================================================================

func TestGetGroupEvents_ReturnsRecordedMatches(t *testing.T) {
	t.Parallel()

	group := &model.Group{ID: "support_group:circle"}
	matches := []*model.MatchRecord{
		{ID: "match_record:1", GroupID: group.ID, EventID: "event:a", Score: 0.6},
	}
	h := newTestGroupHandler(&stubGroups{}, &stubGroupLister{group: group}, &stubMatchStore{matches: matches})

	req := httptest.NewRequest(http.MethodGet, "/v1/groups/support_group:circle/events", nil)
	req.SetPathValue("groupId", "support_group:circle")
	rec := httptest.NewRecorder()
	h.GetGroupEvents(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []*model.MatchRecord `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].EventID != "event:a" {
		t.Errorf("unexpected matches: %+v", resp.Data)
	}
}

func TestGetGroupEvents_UnknownGroup_Returns404(t *testing.T) {
	t.Parallel()

	h := newTestGroupHandler(&stubGroups{}, &stubGroupLister{group: nil}, &stubMatchStore{})

	req := httptest.NewRequest(http.MethodGet, "/v1/groups/support_group:gone/events", nil)
	req.SetPathValue("groupId", "support_group:gone")
	rec := httptest.NewRecorder()
	h.GetGroupEvents(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
