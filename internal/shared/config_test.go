package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no stray .env
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("CACHE_CAPACITY", "")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AIModel != "gemini-1.5-flash" || c.AIBaseURL != "https://generativelanguage.googleapis.com/v1beta" {
		t.Fatalf("unexpected AI defaults: %+v", c)
	}
	if c.PageSize != 2 || c.RetryAttempts != 3 || c.RetryUnit != time.Second || c.CatalogSource != "seed" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.CacheCapacity != 1024 || c.CacheTTL != 15*time.Minute {
		t.Fatalf("unexpected cache defaults: %+v", c)
	}
	if c.AIKey != "" {
		t.Fatalf("key must only come from the environment")
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "adlab.yaml")
	yml := `
app:
  env: dev
  page_size: 3
catalog:
  source: mysql
ai:
  model: gemini-2.0-flash
  retry_unit_ms: 5
sessions:
  idle_ttl_seconds: 60
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("PAGE_SIZE", "")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppEnv != "dev" || c.PageSize != 3 || c.CatalogSource != "mysql" {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.AIModel != "gemini-1.5-pro" {
		t.Fatalf("env should override file, got %q", c.AIModel)
	}
	if c.RetryUnit != 5*time.Millisecond || c.SessionIdleTTL != time.Minute {
		t.Fatalf("durations: unit=%v idle=%v", c.RetryUnit, c.SessionIdleTTL)
	}
	if c.AIKey != "k" {
		t.Fatalf("key: %q", c.AIKey)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_ADDR=:9999\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HTTP_ADDR", "")
	// godotenv does not override variables that are already set, even empty ones
	os.Unsetenv("HTTP_ADDR")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	os.Unsetenv("HTTP_ADDR")
	if c.HTTPAddr != ":9999" {
		t.Fatalf("expected .env value, got %q", c.HTTPAddr)
	}
}

func TestLoad_BadFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("app: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}
