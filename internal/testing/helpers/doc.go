// Package helpers provides common test utilities for acceptance tests:
// HTTP request builders, response validators, and database assertions.
//
// # Request Building
//
//	req := helpers.NewRequest(t, http.MethodPost, "/v1/assignments").
//	    WithBody(payload).
//	    Build()
//
// # Assertions
//
//	helpers.AssertStatus(t, resp, http.StatusCreated)
//	helpers.AssertProblemDetails(t, resp, 409, model.ErrCodeGroupFull)
//	helpers.AssertRecordExists(t, db, "support_group", group.ID)
package helpers
