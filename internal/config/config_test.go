package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("NEXUS_SERVER__PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %v, want 8080", cfg.Server.Port)
	}
	if cfg.Gemini.TextModel != "gemini-2.5-flash" {
		t.Errorf("text model = %v", cfg.Gemini.TextModel)
	}
	if cfg.Gemini.Voice != "Kore" {
		t.Errorf("voice = %v", cfg.Gemini.Voice)
	}
	if cfg.Generation.PollInterval != 5*time.Second {
		t.Errorf("poll interval = %v, want 5s", cfg.Generation.PollInterval)
	}
	if cfg.Generation.MaxPolls != 60 {
		t.Errorf("max polls = %v, want 60", cfg.Generation.MaxPolls)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("storage type = %v, want memory", cfg.Storage.Type)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	os.Setenv("NEXUS_SERVER__PORT", "9000")
	os.Setenv("NEXUS_GEMINI__VOICE", "Puck")
	defer os.Unsetenv("NEXUS_SERVER__PORT")
	defer os.Unsetenv("NEXUS_GEMINI__VOICE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("port = %v, want 9000", cfg.Server.Port)
	}
	if cfg.Gemini.Voice != "Puck" {
		t.Errorf("voice = %v, want Puck", cfg.Gemini.Voice)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 7777
gemini:
  api_key: ${NEXUS_TEST_KEY}
generation:
  poll_interval: 2s
  max_polls: 10
storage:
  type: sqlite
  sqlite:
    path: /tmp/nexus-test.db
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	os.Setenv("NEXUS_TEST_KEY", "secret-from-env")
	defer os.Unsetenv("NEXUS_TEST_KEY")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("port = %v, want 7777", cfg.Server.Port)
	}
	if cfg.Gemini.APIKey != "secret-from-env" {
		t.Errorf("api key = %q, want substituted value", cfg.Gemini.APIKey)
	}
	if cfg.Generation.PollInterval != 2*time.Second {
		t.Errorf("poll interval = %v, want 2s", cfg.Generation.PollInterval)
	}
	if cfg.Storage.Type != "sqlite" {
		t.Errorf("storage type = %v", cfg.Storage.Type)
	}
}

func TestLoadFileValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown storage type", "storage:\n  type: cassette\n"},
		{"zero max polls", "generation:\n  max_polls: 0\n"},
		{"negative poll interval", "generation:\n  poll_interval: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing config: %v", err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSubstituteEnvVars(t *testing.T) {
	os.Setenv("NEXUS_TEST_SUB", "abc123")
	defer os.Unsetenv("NEXUS_TEST_SUB")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple substitution", "${NEXUS_TEST_SUB}", "abc123"},
		{"embedded substitution", "key-${NEXUS_TEST_SUB}-suffix", "key-abc123-suffix"},
		{"missing var becomes empty", "${NEXUS_NO_SUCH_VAR}", ""},
		{"no pattern untouched", "plain-value", "plain-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := substituteEnvVars(tt.input); got != tt.want {
				t.Errorf("substituteEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
