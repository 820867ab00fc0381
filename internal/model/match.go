package model

import "time"

// MatchRecord links a group to an event with the affinity score that
// cleared the acceptance threshold. Repeated matcher runs over the same
// pair produce separate records; the engine does not deduplicate.
type MatchRecord struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	EventID   string    `json:"event_id"`
	Score     float64   `json:"score"`
	CreatedOn time.Time `json:"created_on"`
}

// AssignmentResult is the outcome of a successful join-protocol run.
type AssignmentResult struct {
	GroupID string `json:"group_id"`
	// Created is true when the planner found no suitable group and a new
	// singleton group was formed instead.
	Created bool `json:"created"`
	// Replayed is true when the user already held an assignment and the
	// existing group was returned without running the planner again.
	Replayed bool `json:"replayed,omitempty"`
}
