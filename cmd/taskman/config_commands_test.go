package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.cfg.Paths.DataDir)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	sampleData := filepath.Join(env.baseDir, "home", ".local", "share", "taskman")
	requireContains(t, out, "Data directory:   "+sampleData)
	requireContains(t, out, "Task database:    "+filepath.Join(sampleData, "tasks.db"))
	requireContains(t, out, "Default export:   "+filepath.Join(sampleData, "exports", "tasks.csv"))
	requireContains(t, out, "Default priority: Medium")

	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# "+env.configPath)
	requireContains(t, out, "[paths]")
	requireContains(t, out, env.cfg.Paths.DataDir)

	out, _, err = runCLI(t, env, "--json", "config", "show")
	if err != nil {
		t.Fatalf("config show --json: %v", err)
	}
	var report struct {
		Path   string `json:"path"`
		Exists bool   `json:"exists"`
		Config struct {
			Paths struct {
				DataDir string `json:"data_dir"`
			} `json:"paths"`
		} `json:"config"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode config show output: %v\n%s", err, out)
	}
	if !report.Exists || report.Path != env.configPath || report.Config.Paths.DataDir != env.cfg.Paths.DataDir {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestInvalidConfigFailsCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[export]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, env, "list"); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestDoctorCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	addTask(t, env, "Something")

	out, _, err := runCLI(t, env, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "Data directory")
	requireContains(t, out, "Task database")
	requireContains(t, out, "1 tasks")
}

func TestLogsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "logs")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "File logging is disabled")

	if err := os.MkdirAll(env.cfg.Paths.DataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.cfg.LogPath(), []byte("first\nsecond\nthird\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err = runCLI(t, env, "logs", "-n", "2")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if out != "second\nthird\n" {
		t.Fatalf("unexpected logs output %q", out)
	}
}
