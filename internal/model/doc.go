// Package model defines domain entities and data structures for the Haven API.
//
// The model package contains all struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - UserProfile: A person with clinical assessment scores, interest and
//     life-transition tags, and a location
//   - Group: A small peer-support circle with a rolling aggregate profile
//     and bounded capacity
//   - Event: A community event with a target audience profile
//   - MatchRecord: A persisted group-event affinity match
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Group struct {
//	    ID      string       `json:"id"`
//	    Members []string     `json:"members"`
//	    Profile GroupProfile `json:"profile"`
//	}
//
// # Aggregate Update Rules
//
// The Group aggregate owns its own update arithmetic (running means, tag-set
// unions, capacity recomputation) so that the join protocol in the service
// layer stays a thin orchestration over a pure, testable rule.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
