package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// FlagBackend はプレビューフラグの保存先バックエンド種別。
type FlagBackend string

const (
	// FlagBackendPostgres はitemsテーブルのpreviewedカラムにフラグを保持する。
	FlagBackendPostgres FlagBackend = "postgres"
	// FlagBackendRedis はRedisのキーにフラグを保持する。
	// ホストのアイテムストレージに手を入れられない組み込み構成向け。
	FlagBackendRedis FlagBackend = "redis"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Flag store
	FlagBackend FlagBackend
	RedisAddr   string

	// Nonce
	NonceSecret   string
	NonceLifetime time.Duration

	// Gate
	GatedTypes []string

	// Rate Limit（req/min単位）
	RateLimitGeneral int
	RateLimitAck     int

	// Worker
	SessionCleanupInterval time.Duration

	// Server
	ServerPort string
	BaseURL    string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.BaseURL == "" {
		missing = append(missing, "BASE_URL")
	}

	cfg.NonceSecret = os.Getenv("NONCE_SECRET")
	if cfg.NonceSecret == "" {
		missing = append(missing, "NONCE_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.FlagBackend = FlagBackend(getEnvString("FLAG_BACKEND", string(FlagBackendPostgres)))
	switch cfg.FlagBackend {
	case FlagBackendPostgres, FlagBackendRedis:
	default:
		return nil, fmt.Errorf("invalid FLAG_BACKEND: %q (must be postgres or redis)", cfg.FlagBackend)
	}

	cfg.RedisAddr = getEnvString("REDIS_ADDR", "localhost:6379")
	cfg.NonceLifetime = getEnvDuration("NONCE_LIFETIME", 24*time.Hour)
	cfg.GatedTypes = parseTypeList(getEnvString("GATED_TYPES", "post"))
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitAck = getEnvInt("RATE_LIMIT_ACK", 30)
	cfg.SessionCleanupInterval = getEnvDuration("SESSION_CLEANUP_INTERVAL", 24*time.Hour)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")

	return cfg, nil
}

// parseTypeList はカンマ区切りのアイテムタイプ一覧を分解する。
// 空要素と前後空白は捨てる。全要素が空の場合はデフォルトの"post"に戻す。
func parseTypeList(s string) []string {
	parts := strings.Split(s, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			types = append(types, p)
		}
	}
	if len(types) == 0 {
		return []string{"post"}
	}
	return types
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
