package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"CONFIG_FILE", "APP_ENV", "PORT", "LOG_MODE", "CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT_SECONDS",
	"SEED_ADMIN", "DB_DRIVER", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD",
	"POSTGRES_NAME", "POSTGRES_SSLMODE", "SQLITE_PATH", "JWT_TOKEN_SECRET", "JWT_TOKEN_EXPIRESIN",
	"JWT_TOKEN_AUDIENCE", "JWT_TOKEN_ISSUER", "BCRYPT_COST", "METRICS_ENABLED", "METRICS_ADDR",
	"OTEL_ENABLED", "OTEL_SAMPLER_RATIO",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
env: test
port: 4000
shutdownTimeout: 3s
database:
  driver: sqlite
  sqlitePath: /tmp/from-file.db
auth:
  secret: from-file-secret
  issuer: file-issuer
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "5000")
	t.Setenv("JWT_TOKEN_ISSUER", "env-issuer")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 5000 || cfg.Addr() != ":5000" {
		t.Fatalf("env should override port, got %d", cfg.Port)
	}
	if cfg.Env != EnvTest || cfg.Database.SQLitePath != "/tmp/from-file.db" {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("shutdown timeout: %v", cfg.ShutdownTimeout)
	}
	if cfg.Auth.Issuer != "env-issuer" || cfg.Auth.Secret != "from-file-secret" {
		t.Fatalf("auth: %+v", cfg.Auth)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("origins: %v", cfg.AllowedOrigins)
	}
	if cfg.Otel.SampleRatio != 0.5 {
		t.Fatalf("sample ratio: %v", cfg.Otel.SampleRatio)
	}
	if cfg.Auth.ExpiresInSeconds != 3600 {
		t.Fatalf("default expiry lost: %d", cfg.Auth.ExpiresInSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := defaultConfig()
	cfg.Env = "staging"
	cfg.Auth.Secret = "short"
	cfg.Database.User = ""
	cfg.Database.Name = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"APP_ENV", "JWT_TOKEN_SECRET", "POSTGRES_USER", "POSTGRES_NAME"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("missing %s in %q", want, msg)
		}
	}
}

func TestValidateRejectsSeedInProduction(t *testing.T) {
	cfg := defaultConfig()
	cfg.Env = EnvProduction
	cfg.SeedAdmin = true
	cfg.Auth.Secret = "a-long-enough-secret"
	cfg.Database.Driver = "sqlite"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "SEED_ADMIN") {
		t.Fatalf("expected seed error, got %v", err)
	}
}

func TestConvertersCarryValues(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.Driver = "SQLite"
	cfg.Auth.ExpiresInSeconds = 90
	cfg.Otel.Headers = "x-api-key=abc"

	if got := cfg.DB().Driver; got != "sqlite" {
		t.Fatalf("driver not normalized: %q", got)
	}
	if got := cfg.AuthService().TTL; got != 90*time.Second {
		t.Fatalf("ttl: %v", got)
	}
	if got := cfg.OtelService().Headers["x-api-key"]; got != "abc" {
		t.Fatalf("headers: %v", cfg.OtelService().Headers)
	}
}
