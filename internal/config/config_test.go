package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STAGE", "PORT", "DATABASE_URL", "SEED", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Stage != StageDev {
		t.Fatalf("expected stage: %s\t got: %s", StageDev, cfg.Stage)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("expected port: %d\t got: %d", defaultPort, cfg.Port)
	}
	if cfg.DatabaseUrl != "" || cfg.Seed != 0 {
		t.Fatalf("unexpected optional values: %+v", cfg)
	}
	if cfg.LogLevel != log.InfoLevel {
		t.Fatalf("expected log level: %s\t got: %s", log.InfoLevel, cfg.LogLevel)
	}
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "STAGE=dev\nPORT=9191\nSEED=42\nLOG_LEVEL=debug\nDATABASE_URL=postgres://localhost/seabattle\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9191 || cfg.Seed != 42 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.LogLevel != log.DebugLevel {
		t.Fatalf("expected log level: %s\t got: %s", log.DebugLevel, cfg.LogLevel)
	}
	if cfg.DatabaseUrl != "postgres://localhost/seabattle" {
		t.Fatalf("unexpected database url: %s", cfg.DatabaseUrl)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown stage", map[string]string{"STAGE": "staging"}},
		{"port not a number", map[string]string{"PORT": "eighty"}},
		{"negative seed", map[string]string{"SEED": "-4"}},
		{"unknown log level", map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range test.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
