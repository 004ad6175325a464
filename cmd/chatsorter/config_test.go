package main

import (
	"os"
	"path/filepath"
	"testing"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestResolveSettings_Precedence(t *testing.T) {
	file := fileConfig{APIKey: "file-key", BaseURL: "http://file", LogLevel: "error", LogFormat: "text"}
	env := envMap(map[string]string{envAPIKey: "env-key", envLogLevel: "warn"})
	flags := settings{APIKey: "flag-key"}

	got := resolveSettings(flags, env, file)
	want := settings{APIKey: "flag-key", BaseURL: "http://file", LogLevel: "warn", LogFormat: "text"}
	if got != want {
		t.Errorf("resolveSettings() = %+v, want %+v", got, want)
	}
}

func TestResolveSettings_Empty(t *testing.T) {
	if got := resolveSettings(settings{}, envMap(nil), fileConfig{}); got != (settings{}) {
		t.Errorf("expected zero settings, got %+v", got)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "api_key: sk_test_file\nbase_url: http://localhost:8000\nlog_level: debug\nlog_format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfigFile(path, true)
	if err != nil {
		t.Fatalf("loadConfigFile failed: %v", err)
	}
	want := fileConfig{APIKey: "sk_test_file", BaseURL: "http://localhost:8000", LogLevel: "debug", LogFormat: "json"}
	if cfg != want {
		t.Errorf("loadConfigFile() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigFile_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	if _, err := loadConfigFile(missing, false); err != nil {
		t.Errorf("a missing default config should be ignored, got %v", err)
	}
	if _, err := loadConfigFile(missing, true); err == nil {
		t.Error("a missing explicit config should fail")
	}
	if cfg, err := loadConfigFile("", true); err != nil || cfg != (fileConfig{}) {
		t.Errorf("empty path: got %+v, %v", cfg, err)
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("api_key: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfigFile(path, true); err == nil {
		t.Error("expected a parse error")
	}
}
