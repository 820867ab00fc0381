package handler

import (
	"net/http"

	"github.com/havenhq/haven/api/internal/model"
	"github.com/havenhq/haven/api/internal/service"
)

// EventHandler handles event endpoints
type EventHandler struct {
	affinityService *service.AffinityService
}

// NewEventHandler creates a new event handler
func NewEventHandler(affinityService *service.AffinityService) *EventHandler {
	return &EventHandler{
		affinityService: affinityService,
	}
}

// EventCreatedResponse pairs a registered event with the matches found by
// the synchronous scoring pass.
type EventCreatedResponse struct {
	Event   *model.Event         `json:"event"`
	Matches []*model.MatchRecord `json:"matches"`
}

// CreateEvent handles POST /v1/events - register an event and match it
// against all groups.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	event, matches, err := h.affinityService.CreateEvent(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, EventCreatedResponse{Event: event, Matches: matches}, map[string]string{
		"self": "/v1/events/" + event.ID,
	})
}

// GetEvent handles GET /v1/events/{eventId} - event details
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	event, err := h.affinityService.GetEvent(r.Context(), eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event, map[string]string{
		"self":   "/v1/events/" + eventID,
		"groups": "/v1/events/" + eventID + "/groups",
	})
}

// GetEventGroups handles GET /v1/events/{eventId}/groups - recorded group
// matches for the event, newest first.
func (h *EventHandler) GetEventGroups(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	matches, err := h.affinityService.MatchesForEvent(r.Context(), eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, matches, map[string]string{
		"event": "/v1/events/" + eventID,
	})
}
