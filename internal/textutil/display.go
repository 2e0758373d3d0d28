package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayLabel turns an identifier such as "in_progress" or "URGENT" into
// "In Progress" or "Urgent".
func DisplayLabel(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
	if value == "" {
		return ""
	}
	return cases.Title(language.Und).String(strings.ToLower(value))
}

// Truncate shortens value to at most width terminal cells, ending with an
// ellipsis when cut. Wide runes count as two cells.
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(value, width, "…")
}

// JoinOrDash joins values with sep, or returns "-" for an empty list.
func JoinOrDash(values []string, sep string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, sep)
}
