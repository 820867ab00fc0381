package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Assignment Errors =====
var (
	ErrUserNotFound            = errors.New("user not found")
	ErrQuestionnaireIncomplete = errors.New("intake questionnaire not completed")
	ErrGroupFull               = errors.New("group is full")
)

// ===== Group Errors =====
var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrUserUnassigned = errors.New("user has no group")
)

// ===== Event Errors =====
var (
	ErrEventNotFound = errors.New("event not found")
)

// GroupFullError reports a join commit that lost the capacity race for a
// specific group. It matches ErrGroupFull under errors.Is.
type GroupFullError struct {
	GroupID string
}

func (e *GroupFullError) Error() string {
	return "group is full: " + e.GroupID
}

func (e *GroupFullError) Is(target error) bool {
	return target == ErrGroupFull
}
