package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-jwt-secret-key-0123")
}

func TestLoad_Success(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.JWT.Secret != "test-jwt-secret-key-0123" {
		t.Errorf("JWT.Secret = %q, want %q", cfg.JWT.Secret, "test-jwt-secret-key-0123")
	}
	if cfg.JWT.TTL != 24*time.Hour {
		t.Errorf("JWT.TTL = %v, want 24h", cfg.JWT.TTL)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 5432)
	}
	if cfg.Storage.Backend != BackendPostgres {
		t.Errorf("Storage.Backend = %q, want %q", cfg.Storage.Backend, BackendPostgres)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("error = %v, want mention of JWT_SECRET", err)
	}
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for short JWT_SECRET")
	}
}

func TestLoad_InvalidDBPort(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("DB_PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid DB_PORT")
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("STORAGE_BACKEND", "sheets")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestLoad_MemoryBackend(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("STORAGE_BACKEND", "MEMORY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Storage.Backend = %q, want %q", cfg.Storage.Backend, BackendMemory)
	}
}

func TestLoad_TLSRequiresPaths(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("TLS_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when TLS is enabled without cert paths")
	}

	t.Setenv("TLS_CERT_PATH", "/tmp/cert.pem")
	t.Setenv("TLS_KEY_PATH", "/tmp/key.pem")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() failed with TLS paths set: %v", err)
	}
}

func TestLoad_AllowedHosts(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("ALLOWED_HOSTS", " example.com, ,api.example.com ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := []string{"example.com", "api.example.com"}
	if len(cfg.Server.AllowedHosts) != len(want) {
		t.Fatalf("AllowedHosts = %v, want %v", cfg.Server.AllowedHosts, want)
	}
	for i := range want {
		if cfg.Server.AllowedHosts[i] != want[i] {
			t.Errorf("AllowedHosts[%d] = %q, want %q", i, cfg.Server.AllowedHosts[i], want[i])
		}
	}
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"yes", false, true},
		{"0", true, false},
		{"garbage", true, true},
	}
	for _, tt := range tests {
		t.Setenv("TEST_BOOL", tt.value)
		if got := getBoolEnv("TEST_BOOL", tt.def); got != tt.want {
			t.Errorf("getBoolEnv(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
		}
	}
}

func TestDatabaseConfig_URL(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "fin", SSLMode: "disable"}
	want := "postgres://u:p@db:5433/fin?sslmode=disable"
	if got := c.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
