// Package manager implements the task lifecycle rules on top of a Store.
//
// The Manager validates raw inputs (priority codes, status values, due date
// strings), applies the DONE and ABANDONED rules, computes statistics, and
// asks the Store to persist every mutation before returning. Lookups that miss
// are reported as false or nil rather than errors; errors are reserved for
// invalid enum values and storage failures.
//
// Invalid due dates never surface as errors. The Manager writes a short
// message to its user channel and reports the operation as not performed.
package manager
