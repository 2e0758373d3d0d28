package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskman/internal/manager"
	"taskman/internal/tasks"
)

// mutation resolves the id argument and runs apply against the manager.
func (c *commandContext) mutation(cmd *cobra.Command, rawID string, apply func(*manager.Manager, string) (bool, error), message string) error {
	return c.withManager(cmd, func(mgr *manager.Manager) error {
		id, err := resolveTaskID(cmd.Context(), mgr, rawID)
		if err != nil {
			return err
		}
		ok, err := apply(mgr, id)
		if err != nil {
			return err
		}
		return c.reportChange(cmd, id, ok, message, taskNotFound(id))
	})
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <todo|in_progress|done|abandoned>",
		Short: "Set a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.mutation(cmd, args[0], func(mgr *manager.Manager, id string) (bool, error) {
				return mgr.UpdateTaskStatus(cmd.Context(), id, args[1])
			}, "Updated status of task")
		},
	}
}

func newDoneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.mutation(cmd, args[0], func(mgr *manager.Manager, id string) (bool, error) {
				return mgr.UpdateTaskStatus(cmd.Context(), id, string(tasks.StatusDone))
			}, "Completed task")
		},
	}
}

func newPriorityCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "priority <id> <1-4|low|medium|high|urgent>",
		Short: "Set a task's priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			priority, err := tasks.ParsePriorityName(args[1])
			if err != nil {
				return err
			}
			return ctx.mutation(cmd, args[0], func(mgr *manager.Manager, id string) (bool, error) {
				return mgr.UpdateTaskPriority(cmd.Context(), id, int(priority))
			}, "Updated priority of task")
		},
	}
}

func newDueCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "due <id> <YYYY-MM-DD>",
		Short: "Set a task's due date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(cmd, func(mgr *manager.Manager) error {
				id, err := resolveTaskID(cmd.Context(), mgr, args[0])
				if err != nil {
					return err
				}
				ok, err := mgr.UpdateTaskDueDate(cmd.Context(), id, args[1])
				if err != nil {
					return err
				}
				notFound := taskNotFound(id)
				if _, parseErr := tasks.ParseDueDate(args[1]); parseErr != nil {
					// The manager has already printed the format hint.
					notFound = errors.New("due date not changed")
				}
				return ctx.reportChange(cmd, id, ok, "Updated due date of task", notFound)
			})
		},
	}
}

func newTagCommand(ctx *commandContext) *cobra.Command {
	tagCmd := &cobra.Command{
		Use:   "tag",
		Short: "Add or remove task tags",
	}

	tagCmd.AddCommand(&cobra.Command{
		Use:   "add <id> <tag>",
		Short: "Attach a tag to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.mutation(cmd, args[0], func(mgr *manager.Manager, id string) (bool, error) {
				return mgr.AddTagToTask(cmd.Context(), id, args[1])
			}, "Tagged task")
		},
	})

	tagCmd.AddCommand(&cobra.Command{
		Use:   "remove <id> <tag>",
		Short: "Detach a tag from a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(cmd, func(mgr *manager.Manager) error {
				id, err := resolveTaskID(cmd.Context(), mgr, args[0])
				if err != nil {
					return err
				}
				ok, err := mgr.RemoveTagFromTask(cmd.Context(), id, args[1])
				if err != nil {
					return err
				}
				notFound := fmt.Errorf("task %s not found or has no tag %q", id, args[1])
				return ctx.reportChange(cmd, id, ok, "Untagged task", notFound)
			})
		},
	})

	return tagCmd
}
