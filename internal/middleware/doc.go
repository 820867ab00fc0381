// Package middleware provides the HTTP middleware chain: request IDs,
// structured request logging, Prometheus metrics, panic recovery, CORS and
// response compression.
package middleware
