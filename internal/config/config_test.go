package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
api:
  base_url: "https://workouts.example.com/Prod"
auth:
  token_file: "/home/user/.setlog/token"
server:
  host: "0.0.0.0"
  port: 8080
database:
  driver: "sqlite"
  path: "/var/lib/setlog/setlog.db"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://workouts.example.com/Prod" {
		t.Errorf("api.base_url = %q", cfg.API.BaseURL)
	}
	if cfg.Auth.TokenFile != "/home/user/.setlog/token" {
		t.Errorf("auth.token_file = %q", cfg.Auth.TokenFile)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("database.driver = %q, want sqlite", cfg.Database.Driver)
	}
	if err := cfg.ValidateClient(); err != nil {
		t.Errorf("ValidateClient: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		t.Errorf("ValidateServer: %v", err)
	}
}

// TestEnvOverride verifies that SETLOG_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("SETLOG_API_BASE_URL", "https://staging.example.com")
	t.Setenv("SETLOG_SERVER_PORT", "9999")
	t.Setenv("SETLOG_DB_DRIVER", "postgres")
	t.Setenv("SETLOG_DB_HOST", "db-host")
	t.Setenv("SETLOG_DB_PORT", "5432")
	t.Setenv("SETLOG_DB_NAME", "setlog")
	t.Setenv("SETLOG_DB_USER", "setlog")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://staging.example.com" {
		t.Errorf("api.base_url = %q", cfg.API.BaseURL)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("database.driver = %q, want postgres", cfg.Database.Driver)
	}
	if err := cfg.ValidateServer(); err != nil {
		t.Errorf("ValidateServer with postgres env: %v", err)
	}
	// Unchanged fields keep YAML values.
	if cfg.Auth.TokenFile != "/home/user/.setlog/token" {
		t.Errorf("auth.token_file = %q", cfg.Auth.TokenFile)
	}
}

// TestDefaults verifies the sqlite driver and path defaults apply when the
// database section is omitted.
func TestDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "api:\n  base_url: \"https://x\"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver default = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Path != "setlog.db" {
		t.Errorf("path default = %q, want setlog.db", cfg.Database.Path)
	}
}

// TestValidateErrors verifies required-field checks per binary.
func TestValidateErrors(t *testing.T) {
	cfg, err := Load(writeTemp(t, "server:\n  port: 8080\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.ValidateClient(); err == nil {
		t.Error("ValidateClient accepted missing api.base_url")
	}
	if err := cfg.ValidateServer(); err != nil {
		t.Errorf("ValidateServer with sqlite defaults: %v", err)
	}

	cfg.Database.Driver = "postgres"
	if err := cfg.ValidateServer(); err == nil {
		t.Error("ValidateServer accepted postgres without connection fields")
	}

	cfg.Database.Driver = "oracle"
	if err := cfg.ValidateServer(); err == nil {
		t.Error("ValidateServer accepted unknown driver")
	}

	cfg.Database.Driver = "sqlite"
	cfg.Tailscale.Enabled = true
	if err := cfg.ValidateServer(); err == nil {
		t.Error("ValidateServer accepted tailscale without hostname")
	}
}

// TestLoadMissingFile verifies a helpful error for a missing config path.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
