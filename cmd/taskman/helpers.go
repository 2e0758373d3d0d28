package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskman/internal/manager"
)

const shortIDLength = 8

// resolveTaskID expands a unique id prefix to the full task id. Unknown ids
// are returned unchanged so the manager reports them as missing.
func resolveTaskID(ctx context.Context, mgr *manager.Manager, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("task id is required")
	}
	all, err := mgr.ListTasks(ctx, manager.ListFilter{})
	if err != nil {
		return "", err
	}
	var matches []string
	for _, task := range all {
		if task.ID == arg {
			return arg, nil
		}
		if strings.HasPrefix(task.ID, arg) {
			matches = append(matches, task.ID)
		}
	}
	switch len(matches) {
	case 0:
		return arg, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task id %q is ambiguous (%d matches)", arg, len(matches))
	}
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func taskNotFound(id string) error {
	return fmt.Errorf("task %s not found", id)
}

type changeResult struct {
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
}

// reportChange prints the outcome of a mutation. A false result is turned
// into notFound's error so the process exits non-zero.
func (c *commandContext) reportChange(cmd *cobra.Command, id string, ok bool, message string, notFound error) error {
	if !ok {
		return notFound
	}
	if c.jsonOutput() {
		return writeJSON(cmd, changeResult{ID: id, Changed: ok})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", message, shortID(id))
	return nil
}
