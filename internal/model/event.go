package model

import (
	"fmt"
	"time"
)

// Event represents a community event that groups can be matched to.
// Events are immutable once created, as far as matching is concerned.
type Event struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	TargetProfile TargetProfile `json:"target_profile"`
	Location      Location      `json:"location"`
	CreatedOn     time.Time     `json:"created_on"`
}

// TargetProfile describes the audience an event is aimed at: tags it hopes
// to appeal to, and a clinical severity bucket per assessment axis.
type TargetProfile struct {
	EventType           string         `json:"event_type"`
	Interests           []string       `json:"interests,omitempty"`
	LifeTransitions     []string       `json:"life_transitions,omitempty"`
	TargetPHQ9Severity  SeverityBucket `json:"target_phq9_severity"`
	TargetGAD7Severity  SeverityBucket `json:"target_gad7_severity"`
}

// Well-known event types. The matcher accepts any string; unrecognized
// types fall back to the default weight profile.
const (
	EventTypeVolunteering = "Volunteering"
	EventTypeSupportGroup = "Support Group"
	EventTypeSocial       = "Social"
	EventTypeOutdoors     = "Outdoors"
	EventTypeWorkshop     = "Workshop"
)

// CreateEventRequest is the payload accepted when an event is registered
// with the engine for matching.
type CreateEventRequest struct {
	Name                string         `json:"name"`
	EventType           string         `json:"event_type"`
	Interests           []string       `json:"interests,omitempty"`
	LifeTransitions     []string       `json:"life_transitions,omitempty"`
	TargetPHQ9Severity  SeverityBucket `json:"target_phq9_severity,omitempty"`
	TargetGAD7Severity  SeverityBucket `json:"target_gad7_severity,omitempty"`
	Location            Location       `json:"location"`
}

// Event constraints
const (
	MaxEventNameLength = 200
	MaxEventTags       = 25
)

// Validate checks the create-event payload and returns field errors.
func (r *CreateEventRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > MaxEventNameLength {
		errors = append(errors, FieldError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", MaxEventNameLength)})
	}

	if r.EventType == "" {
		errors = append(errors, FieldError{Field: "event_type", Message: "event_type is required"})
	}

	if len(r.Interests) > MaxEventTags {
		errors = append(errors, FieldError{Field: "interests", Message: fmt.Sprintf("at most %d interests allowed", MaxEventTags)})
	}
	if len(r.LifeTransitions) > MaxEventTags {
		errors = append(errors, FieldError{Field: "life_transitions", Message: fmt.Sprintf("at most %d life transitions allowed", MaxEventTags)})
	}

	if r.TargetPHQ9Severity != "" && !ValidSeverity(r.TargetPHQ9Severity) {
		errors = append(errors, FieldError{Field: "target_phq9_severity", Message: "must be one of: any, normal, mild, moderate, severe"})
	}
	if r.TargetGAD7Severity != "" && !ValidSeverity(r.TargetGAD7Severity) {
		errors = append(errors, FieldError{Field: "target_gad7_severity", Message: "must be one of: any, normal, mild, moderate, severe"})
	}

	if r.Location.Lat < -90 || r.Location.Lat > 90 {
		errors = append(errors, FieldError{Field: "location.lat", Message: "latitude must be between -90 and 90"})
	}
	if r.Location.Lng < -180 || r.Location.Lng > 180 {
		errors = append(errors, FieldError{Field: "location.lng", Message: "longitude must be between -180 and 180"})
	}

	return errors
}

// Normalize fills in defaults for optional severity targets. An absent
// target means the event welcomes any severity on that axis.
func (r *CreateEventRequest) Normalize() {
	if r.TargetPHQ9Severity == "" {
		r.TargetPHQ9Severity = SeverityAny
	}
	if r.TargetGAD7Severity == "" {
		r.TargetGAD7Severity = SeverityAny
	}
}
