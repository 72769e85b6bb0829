package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "trainer"
  user: "trainer"
  password: "secret"
  sslmode: "disable"
auth:
  api_key: "test-key-123"
tailscale:
  enabled: false
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
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "trainer" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "trainer")
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
	if cfg.Tailscale.Enabled {
		t.Error("tailscale.enabled = true, want false")
	}
}

// TestEnvOverride verifies that TRAINER_ env vars take precedence over
// YAML values, so production deployments can override config via
// environment.
func TestEnvOverride(t *testing.T) {
	t.Setenv("TRAINER_DB_HOST", "override-host")
	t.Setenv("TRAINER_DB_PORT", "9999")
	t.Setenv("TRAINER_AUTH_API_KEY", "env-key")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Host != "override-host" {
		t.Errorf("database.host = %q, want env override", cfg.Database.Host)
	}
	if cfg.Database.Port != 9999 {
		t.Errorf("database.port = %d, want 9999", cfg.Database.Port)
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want env override", cfg.Auth.APIKey)
	}
}

// TestValidationErrors verifies required fields are enforced.
func TestValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing server port", `
database: {host: h, port: 5432, name: n, user: u}
auth: {api_key: k}
`},
		{"missing db host", `
server: {port: 8080}
database: {port: 5432, name: n, user: u}
auth: {api_key: k}
`},
		{"missing api key", `
server: {port: 8080}
database: {host: h, port: 5432, name: n, user: u}
`},
	}
	for _, tc := range cases {
		if _, err := Load(writeTemp(t, tc.yaml)); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

// TestDSN verifies the connection string format and the sslmode default.
func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "trainer", User: "u", Password: "p"}
	want := "postgres://u:p@db:5432/trainer?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
