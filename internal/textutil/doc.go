// Package textutil provides small text helpers for terminal output:
// display casing of enum values, width-aware truncation, and a generic
// conditional.
package textutil
