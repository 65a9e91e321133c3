package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Planner.MaxRetries != 3 {
		t.Errorf("expected default max_retries 3, got %d", cfg.Planner.MaxRetries)
	}
	if cfg.Planner.PlanDays != 7 {
		t.Errorf("expected default plan_days 7, got %d", cfg.Planner.PlanDays)
	}
	if cfg.Database.Path == "" {
		t.Error("expected a default database path")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("database:\n  path: /tmp/test.db\nplanner:\n  max_retries: 5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Planner.MaxRetries != 5 {
		t.Errorf("planner.max_retries = %d", cfg.Planner.MaxRetries)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MEALMIND_DATABASE_PATH", "/tmp/env.db")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/env.db" {
		t.Errorf("database.path = %q, want env override", cfg.Database.Path)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("planner:\n  plan_days: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for plan_days 0")
	}
}
