package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"taskman/internal/manager"
	"taskman/internal/tasks"
	"taskman/internal/textutil"
)

const titleColumnWidth = 40

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		description string
		priority    string
		due         string
		tagsFlag    []string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			code := cfg.Tasks.DefaultPriority
			if strings.TrimSpace(priority) != "" {
				parsed, err := tasks.ParsePriorityName(priority)
				if err != nil {
					return err
				}
				code = int(parsed)
			}

			return ctx.withManager(cmd, func(mgr *manager.Manager) error {
				id, created, err := mgr.CreateTask(cmd.Context(), manager.NewTask{
					Title:       strings.Join(args, " "),
					Description: description,
					Priority:    code,
					DueDate:     due,
					Tags:        tagsFlag,
				})
				if err != nil {
					return err
				}
				if !created {
					return errors.New("task not created")
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, changeResult{ID: id, Changed: true})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", shortID(id))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority: 1-4 or low, medium, high, urgent (default from config)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVarP(&tagsFlag, "tag", "t", nil, "Tag to attach (repeatable)")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		status   string
		priority string
		overdue  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: "List tasks, optionally filtered. Only one filter applies: " +
			"--overdue takes precedence over --status, which takes precedence over --priority.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := manager.ListFilter{Status: status, Overdue: overdue}
			if strings.TrimSpace(priority) != "" {
				parsed, err := tasks.ParsePriorityName(priority)
				if err != nil {
					return err
				}
				filter.Priority = int(parsed)
			}

			return ctx.withManager(cmd, func(mgr *manager.Manager) error {
				list, err := mgr.ListTasks(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, taskRecords(list))
				}
				out := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintln(out, "No tasks")
					return nil
				}
				fmt.Fprint(out, renderTable(taskListColumns(), buildTaskRows(list, time.Now(), shouldColorize(out))))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Only tasks with this status")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Only tasks with this priority")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only overdue tasks")
	return cmd
}

func taskListColumns() []column {
	return []column{
		{header: "ID"},
		{header: "Title"},
		{header: "Priority"},
		{header: "Status"},
		{header: "Due"},
		{header: "Tags"},
	}
}

func buildTaskRows(list []*tasks.Task, now time.Time, colorize bool) [][]string {
	rows := make([][]string, 0, len(list))
	for _, task := range list {
		due := tasks.FormatDueDate(task.DueDate)
		rows = append(rows, []string{
			shortID(task.ID),
			textutil.Truncate(task.Title, titleColumnWidth),
			textutil.DisplayLabel(task.Priority.String()),
			taskStatusCell(task, task.IsOverdue(now), colorize),
			textutil.Ternary(due == "", "-", due),
			textutil.JoinOrDash(task.Tags, ", "),
		})
	}
	return rows
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(cmd, func(mgr *manager.Manager) error {
				id, err := resolveTaskID(cmd.Context(), mgr, args[0])
				if err != nil {
					return err
				}
				task, err := mgr.GetTaskDetails(cmd.Context(), id)
				if err != nil {
					return err
				}
				if task == nil {
					return taskNotFound(id)
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, taskRecords([]*tasks.Task{task})[0])
				}
				out := cmd.OutOrStdout()
				for _, line := range taskDetailLines(task, time.Now(), shouldColorize(out)) {
					fmt.Fprintln(out, line)
				}
				return nil
			})
		},
	}
}

func taskDetailLines(task *tasks.Task, now time.Time, colorize bool) []string {
	lines := []string{
		fmt.Sprintf("ID:          %s", task.ID),
		fmt.Sprintf("Title:       %s", task.Title),
	}
	if task.Description != "" {
		lines = append(lines, fmt.Sprintf("Description: %s", task.Description))
	}
	lines = append(lines,
		fmt.Sprintf("Priority:    %s", textutil.DisplayLabel(task.Priority.String())),
		fmt.Sprintf("Status:      %s", taskStatusCell(task, task.IsOverdue(now), colorize)),
	)
	if task.DueDate != nil {
		lines = append(lines, fmt.Sprintf("Due:         %s (%s)", tasks.FormatDueDate(task.DueDate), humanize.RelTime(*task.DueDate, now, "ago", "from now")))
	}
	lines = append(lines,
		fmt.Sprintf("Tags:        %s", textutil.JoinOrDash(task.Tags, ", ")),
		fmt.Sprintf("Created:     %s (%s)", task.CreatedAt.Format("2006-01-02 15:04"), humanize.RelTime(task.CreatedAt, now, "ago", "from now")),
	)
	if task.CompletedAt != nil {
		lines = append(lines, fmt.Sprintf("Completed:   %s (%s)", task.CompletedAt.Format("2006-01-02 15:04"), humanize.RelTime(*task.CompletedAt, now, "ago", "from now")))
	}
	return lines
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edit manager.Edit
			if cmd.Flags().Changed("title") {
				edit.Title = &title
			}
			if cmd.Flags().Changed("description") {
				edit.Description = &description
			}
			if edit.Title == nil && edit.Description == nil {
				return errors.New("nothing to change: pass --title and/or --description")
			}

			return ctx.withManager(cmd, func(mgr *manager.Manager) error {
				id, err := resolveTaskID(cmd.Context(), mgr, args[0])
				if err != nil {
					return err
				}
				ok, err := mgr.EditTask(cmd.Context(), id, edit)
				if err != nil {
					return err
				}
				return ctx.reportChange(cmd, id, ok, "Updated task", taskNotFound(id))
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(cmd, func(mgr *manager.Manager) error {
				id, err := resolveTaskID(cmd.Context(), mgr, args[0])
				if err != nil {
					return err
				}
				ok, err := mgr.DeleteTask(cmd.Context(), id)
				if err != nil {
					return err
				}
				return ctx.reportChange(cmd, id, ok, "Deleted task", taskNotFound(id))
			})
		},
	}
}
