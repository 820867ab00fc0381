// Package handler provides the HTTP endpoints of the matching engine.
//
// Each handler struct wraps the service it fronts. Requests are decoded and
// validated at the edge, services return sentinel errors, and the error
// mapper translates those into RFC 9457 Problem Details responses.
package handler
