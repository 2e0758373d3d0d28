package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"taskman/internal/store"
	"taskman/internal/tasks"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// taskRecords converts tasks to their export form, which doubles as the
// JSON output schema.
func taskRecords(list []*tasks.Task) []store.Record {
	records := make([]store.Record, 0, len(list))
	for _, task := range list {
		records = append(records, store.NewRecord(task))
	}
	return records
}
