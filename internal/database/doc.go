// Package database provides database connectivity for the Haven API.
//
// The database package abstracts SurrealDB operations and provides
// a consistent interface for data access across the application.
//
// # Database Interface
//
// The Database interface defines core operations:
//
//	type Database interface {
//	    Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
//	    QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
//	    Execute(ctx context.Context, query string, vars map[string]interface{}) error
//	    Close() error
//	}
//
// # Transactions
//
// Transactions are BATCH-BASED, not connection-level: statements accumulate
// in memory and are wrapped in BEGIN TRANSACTION / COMMIT TRANSACTION at
// execution time. Conditional writes express their preconditions inside the
// batch (LET / IF / THROW) rather than relying on isolation between calls.
// See transaction.go.
//
// # Error Types
//
// Standard error types for data operations:
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConflict: A transactional precondition failed at commit time
//   - ErrConnection: Database connection failed
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrConflict) {
//	    // The guarded write lost its race
//	}
package database
