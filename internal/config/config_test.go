package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// setRequiredEnv は必須環境変数をテスト用の値で設定する。
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/test")
	t.Setenv("BASE_URL", "http://example.com")
	t.Setenv("NONCE_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.FlagBackend != FlagBackendPostgres {
		t.Errorf("FlagBackend = %q, want %q", cfg.FlagBackend, FlagBackendPostgres)
	}
	if !reflect.DeepEqual(cfg.GatedTypes, []string{"post"}) {
		t.Errorf("GatedTypes = %v, want [post]", cfg.GatedTypes)
	}
	if cfg.NonceLifetime != 24*time.Hour {
		t.Errorf("NonceLifetime = %v, want 24h", cfg.NonceLifetime)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want 120", cfg.RateLimitGeneral)
	}
	if cfg.RateLimitAck != 30 {
		t.Errorf("RateLimitAck = %d, want 30", cfg.RateLimitAck)
	}
	if cfg.SessionCleanupInterval != 24*time.Hour {
		t.Errorf("SessionCleanupInterval = %v, want 24h", cfg.SessionCleanupInterval)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("NONCE_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required variables")
	}
	for _, name := range []string{"DATABASE_URL", "BASE_URL", "NONCE_SECRET"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
	}
}

func TestLoad_GatedTypesList(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GATED_TYPES", "post, page ,,news")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"post", "page", "news"}
	if !reflect.DeepEqual(cfg.GatedTypes, want) {
		t.Errorf("GatedTypes = %v, want %v", cfg.GatedTypes, want)
	}
}

// TestLoad_GatedTypesAllEmpty は空要素しかない指定がデフォルトの
// "post"に戻ることを検証する。
func TestLoad_GatedTypesAllEmpty(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GATED_TYPES", " , ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !reflect.DeepEqual(cfg.GatedTypes, []string{"post"}) {
		t.Errorf("GatedTypes = %v, want [post]", cfg.GatedTypes)
	}
}

func TestLoad_RedisBackend(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FLAG_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6380")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.FlagBackend != FlagBackendRedis {
		t.Errorf("FlagBackend = %q, want %q", cfg.FlagBackend, FlagBackendRedis)
	}
	if cfg.RedisAddr != "redis:6380" {
		t.Errorf("RedisAddr = %q, want %q", cfg.RedisAddr, "redis:6380")
	}
}

func TestLoad_InvalidFlagBackend(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FLAG_BACKEND", "memcached")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid FLAG_BACKEND")
	}
}

func TestLoad_InvalidOptionalValuesFallBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RATE_LIMIT_GENERAL", "not-a-number")
	t.Setenv("NONCE_LIFETIME", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want default 120", cfg.RateLimitGeneral)
	}
	if cfg.NonceLifetime != 24*time.Hour {
		t.Errorf("NonceLifetime = %v, want default 24h", cfg.NonceLifetime)
	}
}
