// Package logging assembles structured slog loggers and attribute helpers used
// across taskman.
//
// It owns the console and JSON handlers, maps the [logging] config section
// onto levels and outputs, and exposes attribute helpers so records carry
// consistent task_id and operation keys. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
