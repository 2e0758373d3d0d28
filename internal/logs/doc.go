// Package logs reads the tail of taskman's log file with bounded memory and
// follows it for new lines. It backs the `taskman logs` command.
package logs
