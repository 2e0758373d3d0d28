package config

import "taskman/internal/tasks"

const (
	defaultConfigPath     = "~/.config/taskman/config.toml"
	projectConfigName     = "taskman.toml"
	defaultDataDir        = "~/.local/share/taskman"
	defaultExportDir      = "~/.local/share/taskman/exports"
	defaultExportFormat   = "csv"
	defaultExportFilename = "tasks"
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ExportDir: defaultExportDir,
		},
		Tasks: Tasks{
			DefaultPriority: int(tasks.DefaultPriority),
		},
		Export: Export{
			Format:   defaultExportFormat,
			Filename: defaultExportFilename,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
