// Package repository implements data access for the Haven API on SurrealDB.
//
// Each repository wraps the database.Database interface and translates
// between SurrealDB's wire representation and the domain models. Services
// depend on repository interfaces they declare themselves; the concrete
// types here satisfy those interfaces.
//
// # Conventions
//
//   - Record IDs are client-generated ("support_group:<hex>") so that a
//     CREATE and a dependent UPDATE can share one batch transaction.
//   - Reads return (nil, nil) when the record does not exist; services
//     translate that into their own not-found errors.
//   - Conditional writes express their precondition inside the batch
//     (LET / IF / THROW) and surface a lost race as database.ErrConflict.
package repository
