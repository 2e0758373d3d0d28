// Package preflight provides readiness checks for the filesystem paths and
// database taskman depends on. The CLI "taskman doctor" command runs them
// and prints one line per Result.
package preflight
