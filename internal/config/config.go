package config

import (
	"os"
	"strconv"
	"time"

	commoncfg "outreach-data/pkg/config"
)

// Config outreach-data（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	Database commoncfg.DatabaseConfig
	Redis    commoncfg.RedisConfig
	Log      struct {
		Level  string
		Format string
	}
	// Directory 远端员工目录服务（可选；不配置时用本库 users 表）
	Directory struct {
		BaseURL string
		Timeout time.Duration
	}
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "outreach")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Directory.BaseURL = getEnv("DIRECTORY_URL", "")
	cfg.Directory.Timeout = time.Duration(parseInt(getEnv("DIRECTORY_TIMEOUT_MS", "3000"), 3000)) * time.Millisecond

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
