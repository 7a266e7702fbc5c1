package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertDefaults(t *testing.T, cfg *Config) {
	t.Helper()
	if cfg.RestartDelay != 500*time.Millisecond {
		t.Errorf("RestartDelay = %v, want 500ms", cfg.RestartDelay)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.LogFile != "" {
		t.Errorf("LogFile = %q, want empty", cfg.LogFile)
	}
	if cfg.Serve.Host != "127.0.0.1" {
		t.Errorf("Serve.Host = %q, want 127.0.0.1", cfg.Serve.Host)
	}
	if cfg.Serve.Port != 8080 {
		t.Errorf("Serve.Port = %d, want 8080", cfg.Serve.Port)
	}
}

func TestLoadValidConfig(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `restart_delay: 250ms
log_level: debug
log_file: /tmp/stuckbar.log
serve:
  host: 0.0.0.0
  port: 9090
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RestartDelay != 250*time.Millisecond {
		t.Errorf("RestartDelay = %v, want 250ms", cfg.RestartDelay)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFile != "/tmp/stuckbar.log" {
		t.Errorf("LogFile = %q, want /tmp/stuckbar.log", cfg.LogFile)
	}
	if cfg.Serve.Host != "0.0.0.0" {
		t.Errorf("Serve.Host = %q, want 0.0.0.0", cfg.Serve.Host)
	}
	if cfg.Serve.Port != 9090 {
		t.Errorf("Serve.Port = %d, want 9090", cfg.Serve.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	assertDefaults(t, cfg)
}

func TestLoadEmptyPath(t *testing.T) {
	t.Parallel()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDefaults(t, cfg)
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDefaults(t, cfg)
}

func TestLoadCommentsOnly(t *testing.T) {
	t.Parallel()
	cfg, err := Load(writeConfig(t, `# restart_delay: 1s
# serve:
#   port: 9090
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDefaults(t, cfg)
}

func TestLoadPartialConfig(t *testing.T) {
	t.Parallel()
	cfg, err := Load(writeConfig(t, `serve:
  port: 9191
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Serve.Port != 9191 {
		t.Errorf("Serve.Port = %d, want 9191", cfg.Serve.Port)
	}
	if cfg.Serve.Host != "127.0.0.1" {
		t.Errorf("Serve.Host = %q, want default", cfg.Serve.Host)
	}
	if cfg.RestartDelay != DefaultRestartDelay {
		t.Errorf("RestartDelay = %v, want default", cfg.RestartDelay)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative delay", "restart_delay: -1s\n", "restart_delay"},
		{"bad level", "log_level: loud\n", "log_level"},
		{"bad port", "serve:\n  port: 70000\n", "serve.port"},
		{"bad duration", "restart_delay: soon\n", "parsing config"},
		{"bad yaml", "serve: [\n", "parsing config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()
	path := DefaultPath()
	if path == "" {
		t.Skip("no home directory")
	}
	if !strings.HasSuffix(path, filepath.Join(".stuckbar", "config.yaml")) {
		t.Errorf("DefaultPath = %q", path)
	}
}
