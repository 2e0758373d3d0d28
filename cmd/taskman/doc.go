// Package main hosts the taskman CLI entrypoint and command graph.
//
// Each command loads configuration once, opens the task store (which locks
// the data directory for the duration of the command), and calls into
// internal/manager. Output is a table or plain text by default and JSON with
// --json.
package main
