// Package tasks defines the task record and the enums that drive its
// lifecycle.
//
// Priorities are ordinal (LOW through URGENT) and statuses are string values
// with two terminal members, DONE and ABANDONED. Parsing helpers turn raw CLI
// or database values into typed enums and return wrapped sentinel errors when
// the value has no matching member. Due dates carry calendar-day semantics
// only and are parsed with ParseDueDate.
//
// Both the manager and the store speak these types; keep the invariant that
// CompletedAt is set exactly when Status is StatusDone inside the helpers here
// rather than at call sites.
package tasks
