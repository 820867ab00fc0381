package handler

import (
	"errors"

	"github.com/havenhq/haven/api/internal/model"
	"github.com/havenhq/haven/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// A lost capacity race carries the contested group's ID.
	var groupFull *service.GroupFullError
	if errors.As(err, &groupFull) {
		return model.NewGroupFullError(groupFull.GroupID)
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrGroupNotFound):
		return model.NewNotFoundError("group")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrUserUnassigned):
		return model.NewNotFoundError("group assignment")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrGroupFull):
		return model.NewConflictError(err.Error())

	// ===== Eligibility Errors → 422 =====
	case errors.Is(err, service.ErrQuestionnaireIncomplete):
		return model.NewNotEligibleError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
