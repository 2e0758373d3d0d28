package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskman/internal/preflight"
	"taskman/internal/store"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, directories, and the task database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var results []preflight.Result
			openErr := ctx.withStore(func(st *store.Store) error {
				results = preflight.RunAll(cmd.Context(), cfg, st)
				return nil
			})
			if openErr != nil {
				results = preflight.RunAll(cmd.Context(), cfg, nil)
				results[len(results)-1].Detail = openErr.Error()
			}

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, r := range results {
					kind := statusOK
					if !r.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
				}
			}
			if !preflight.AllPassed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
