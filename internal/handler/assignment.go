package handler

import (
	"net/http"

	"github.com/havenhq/haven/api/internal/model"
	"github.com/havenhq/haven/api/internal/service"
)

// AssignmentHandler handles group assignment endpoints
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// CreateAssignmentRequest is the payload for requesting a group placement.
type CreateAssignmentRequest struct {
	UserID string `json:"user_id"`
}

// CreateAssignment handles POST /v1/assignments - place a user into a group.
// Replays of an existing assignment return 200; fresh placements return 201.
func (h *AssignmentHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req CreateAssignmentRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.UserID == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "user_id", Message: "user_id is required"},
		}))
		return
	}

	result, err := h.assignmentService.AssignUser(r.Context(), req.UserID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	WriteData(w, status, result, map[string]string{
		"group": "/v1/groups/" + result.GroupID,
	})
}

// GetUserGroup handles GET /v1/users/{userId}/group - the caller's group.
func (h *AssignmentHandler) GetUserGroup(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	group, err := h.assignmentService.GetUserGroup(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, group, map[string]string{
		"self": "/v1/groups/" + group.ID,
	})
}
