package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME at a temp dir and clears the env overrides
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"ISSUEBOARD_BACKEND", "ISSUEBOARD_DATA_DIR", "ISSUEBOARD_DSN", "ISSUEBOARD_PROJECT"} {
		t.Setenv(key, "")
	}
	return home
}

func writeSettings(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "issueboard")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Default(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Backend != BackendFS {
		t.Errorf("expected backend 'fs', got %q", cfg.Backend)
	}
	if cfg.DataDir != filepath.Join(home, "issueboard") {
		t.Errorf("unexpected data dir %q", cfg.DataDir)
	}
	if cfg.Project != "default" {
		t.Errorf("expected project 'default', got %q", cfg.Project)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("expected 30s refresh, got %v", cfg.RefreshInterval)
	}
	if !cfg.Mouse {
		t.Error("mouse should default on")
	}
}

func TestLoad_File(t *testing.T) {
	home := isolate(t)
	writeSettings(t, home, `{"backend": "sqlite", "data_dir": "~/boards", "project": "eng", "refresh_seconds": 5, "mouse": false}`)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Backend != BackendSQLite {
		t.Errorf("expected sqlite, got %q", cfg.Backend)
	}
	if cfg.DataDir != filepath.Join(home, "boards") {
		t.Errorf("expected expanded data dir, got %q", cfg.DataDir)
	}
	if cfg.DSN != filepath.Join(home, "boards", "issueboard.db") {
		t.Errorf("expected default sqlite dsn, got %q", cfg.DSN)
	}
	if cfg.RefreshInterval != 5*time.Second {
		t.Errorf("expected 5s refresh, got %v", cfg.RefreshInterval)
	}
	if cfg.Mouse {
		t.Error("mouse should be off")
	}
}

func TestLoad_BadFile(t *testing.T) {
	home := isolate(t)
	writeSettings(t, home, `{not json`)

	if _, err := Load(CLIFlags{}); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestLoad_EnvVar(t *testing.T) {
	home := isolate(t)
	writeSettings(t, home, `{"project": "from-file"}`)
	t.Setenv("ISSUEBOARD_PROJECT", "from-env")
	t.Setenv("ISSUEBOARD_DATA_DIR", "/tmp/env-data")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Project != "from-env" {
		t.Errorf("expected env project, got %q", cfg.Project)
	}
	if cfg.DataDir != "/tmp/env-data" {
		t.Errorf("expected env data dir, got %q", cfg.DataDir)
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolate(t)
	t.Setenv("ISSUEBOARD_PROJECT", "from-env")

	cfg, err := Load(CLIFlags{
		Project: "from-flag",
		Backend: BackendMySQL,
		DSN:     "root@tcp(127.0.0.1:3306)/issues?parseTime=true",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.Project != "from-flag" {
		t.Errorf("expected flag project, got %q", cfg.Project)
	}
	if cfg.Backend != BackendMySQL {
		t.Errorf("expected mysql, got %q", cfg.Backend)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		flags CLIFlags
	}{
		{"unknown backend", CLIFlags{Backend: "postgres"}},
		{"mysql without dsn", CLIFlags{Backend: BackendMySQL}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if _, err := Load(tt.flags); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := isolate(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(home, ".config", "issueboard", "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// The written defaults load cleanly
	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("load after ensure: %v", err)
	}
	if cfg.Backend != BackendFS || !cfg.Mouse {
		t.Errorf("unexpected config %+v", cfg)
	}

	// A second call leaves an existing file alone
	if err := os.WriteFile(path, []byte(`{"project": "kept"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{"project": "kept"}` {
		t.Errorf("existing config overwritten: %s", data)
	}
}
