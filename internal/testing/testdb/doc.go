// Package testdb provides isolated SurrealDB environments for acceptance
// tests.
//
// Each TestDB gets a unique namespace so tests can run in parallel against
// one SurrealDB instance, with migrations applied on setup:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    // Use tdb.DB for database operations
//	}
//
// For subtests that can share schema setup, NewShared avoids re-running
// migrations per subtest:
//
//	shared := testdb.NewShared(t)
//	t.Run("create", func(t *testing.T) { tdb := shared.SetupSubtest(t); ... })
package testdb
