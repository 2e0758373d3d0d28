package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"taskman/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the taskman log file (requires logging.to_file)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogPath()
			out := cmd.OutOrStdout()

			result, err := logs.Tail(path, lines)
			if err != nil {
				return err
			}
			if len(result.Lines) == 0 && !follow {
				if !cfg.Logging.ToFile {
					fmt.Fprintln(out, "File logging is disabled; set logging.to_file = true")
					return nil
				}
				fmt.Fprintf(out, "No log entries in %s\n", path)
				return nil
			}
			printLines(out, result.Lines)
			if !follow {
				return nil
			}

			followCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return logs.Follow(followCtx, path, result.Offset, 0, func(batch []string) {
				printLines(out, batch)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	return cmd
}

func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
