package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"taskman/internal/tasks"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTasks(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateTasks() error {
	if _, err := tasks.ParsePriority(c.Tasks.DefaultPriority); err != nil {
		return fmt.Errorf("tasks.default_priority: %w", err)
	}
	return nil
}

func (c *Config) validateExport() error {
	if !slices.Contains(ExportFormats, c.Export.Format) {
		return fmt.Errorf("export.format must be one of %s, got %q", strings.Join(ExportFormats, ", "), c.Export.Format)
	}
	if strings.ContainsAny(c.Export.Filename, `/\`) {
		return errors.New("export.filename must not contain path separators")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
