package handler

import (
	"net/http"

	"github.com/havenhq/haven/api/internal/model"
	"github.com/havenhq/haven/api/internal/service"
)

// GroupHandler handles support group endpoints
type GroupHandler struct {
	assignmentService *service.AssignmentService
	affinityService   *service.AffinityService
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(assignmentService *service.AssignmentService, affinityService *service.AffinityService) *GroupHandler {
	return &GroupHandler{
		assignmentService: assignmentService,
		affinityService:   affinityService,
	}
}

// GetGroup handles GET /v1/groups/{groupId} - group details
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupId")
	if groupID == "" {
		WriteError(w, model.NewBadRequestError("group ID required"))
		return
	}

	group, err := h.assignmentService.GetGroup(r.Context(), groupID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, group, map[string]string{
		"self":   "/v1/groups/" + groupID,
		"events": "/v1/groups/" + groupID + "/events",
	})
}

// GetGroupEvents handles GET /v1/groups/{groupId}/events - recorded event
// matches for the group, newest first.
func (h *GroupHandler) GetGroupEvents(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupId")
	if groupID == "" {
		WriteError(w, model.NewBadRequestError("group ID required"))
		return
	}

	matches, err := h.affinityService.MatchesForGroup(r.Context(), groupID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, matches, map[string]string{
		"group": "/v1/groups/" + groupID,
	})
}
