package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskman/internal/config"
	"taskman/internal/manager"
	"taskman/internal/tasks"
	"taskman/internal/textutil"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(cmd, func(mgr *manager.Manager) error {
				stats, err := mgr.Statistics(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, stats)
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]column{{header: "Metric"}, {header: "Count", align: alignRight}},
					buildStatsRows(stats),
				))
				return nil
			})
		},
	}
}

func buildStatsRows(stats manager.Stats) [][]string {
	rows := [][]string{{"Total", strconv.Itoa(stats.Total)}}
	for _, status := range tasks.AllStatuses() {
		rows = append(rows, []string{
			"Status: " + textutil.DisplayLabel(string(status)),
			strconv.Itoa(stats.ByStatus[string(status)]),
		})
	}
	for _, priority := range tasks.AllPriorities() {
		rows = append(rows, []string{
			"Priority: " + textutil.DisplayLabel(priority.String()),
			strconv.Itoa(stats.ByPriority[priority.String()]),
		})
	}
	rows = append(rows,
		[]string{"Overdue", strconv.Itoa(stats.Overdue)},
		[]string{"Completed last 7 days", strconv.Itoa(stats.CompletedLastWeek)},
	)
	return rows
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export all tasks to CSV, JSON, or PDF",
		Long: "Export all tasks. Without a file the export is written to " +
			"<export_dir>/<filename>.<format> from the config. Without --format the " +
			"format follows the file extension, then the configured default.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var target string
			if len(args) == 1 {
				if target, err = config.ExpandPath(args[0]); err != nil {
					return fmt.Errorf("resolve export path: %w", err)
				}
			}
			resolved, err := resolveExportFormat(format, target, cfg.Export.Format)
			if err != nil {
				return err
			}
			if target == "" {
				target = cfg.DefaultExportPath(resolved)
			}

			return ctx.withManager(cmd, func(mgr *manager.Manager) error {
				if err := mgr.ExportTasksAs(cmd.Context(), target, resolved); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]string{"path": target, "format": resolved})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported tasks to %s\n", target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Export format: csv, json, or pdf")
	return cmd
}

func resolveExportFormat(flag, target, fallback string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" && target != "" {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(target)), ".")
		if slices.Contains(config.ExportFormats, ext) {
			format = ext
		}
	}
	if format == "" {
		format = fallback
	}
	if !slices.Contains(config.ExportFormats, format) {
		return "", fmt.Errorf("unsupported export format %q (expected %s)", format, strings.Join(config.ExportFormats, ", "))
	}
	return format, nil
}

func newAbandonCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Abandon low and medium priority tasks more than a week past due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(cmd, func(mgr *manager.Manager) error {
				count, err := mgr.AbandonOldTasks(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]int{"abandoned": count})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Abandoned %d %s\n", count, textutil.Ternary(count == 1, "task", "tasks"))
				return nil
			})
		},
	}
}
