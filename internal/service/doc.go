// Package service implements the matching engine's business logic: the
// planner that scores users against open groups, the join protocol that
// commits placements atomically, and the affinity matcher that pairs
// events with group profiles.
//
// Services depend on small repository interfaces declared in this package
// and return sentinel errors from errors.go; handlers translate those into
// HTTP problem responses.
package service
