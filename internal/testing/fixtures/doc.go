// Package fixtures provides test data factories for acceptance tests.
//
// Factory methods create domain entities with sensible defaults while
// allowing customization via option functions. Factories persist through
// the real repositories and return fully populated models:
//
//	f := fixtures.New(tdb.DB)
//	user := f.CreateUser(t)
//	group := f.CreateGroup(t, user)
//	event := f.CreateEvent(t)
//
// Defaults describe a moderate-severity profile located in Manhattan, so
// two default users always plan into the same group and a default event
// always lands within the distance cutoff.
package fixtures
