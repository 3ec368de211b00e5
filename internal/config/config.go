package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// HashScheme identifies a password hashing algorithm.
type HashScheme string

const (
	// SchemeArgon2id is the preferred scheme: memory-hard, no input length ceiling.
	SchemeArgon2id HashScheme = "argon2id"
	// SchemeBcryptSHA256 pre-hashes with SHA-256 to lift bcrypt's 72-byte limit.
	SchemeBcryptSHA256 HashScheme = "bcrypt-sha256"
)

// StoreDriver selects the backing store implementation.
type StoreDriver string

const (
	// DriverMemory keeps all state in process memory.
	DriverMemory StoreDriver = "memory"
	// DriverMySQL persists through GORM to MySQL.
	DriverMySQL StoreDriver = "mysql"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	StoreDriver  StoreDriver
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	HashScheme   HashScheme
	HashFallback HashScheme
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		StoreDriver:  StoreDriver(getEnv("STORE_DRIVER", string(DriverMySQL))),
		MySQLDSN:     getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/medbridge?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		HashScheme:   HashScheme(getEnv("HASH_SCHEME", string(SchemeArgon2id))),
		HashFallback: HashScheme(getEnv("HASH_FALLBACK", string(SchemeBcryptSHA256))),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
	}

	switch cfg.StoreDriver {
	case DriverMemory, DriverMySQL:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	for _, s := range []HashScheme{cfg.HashScheme, cfg.HashFallback} {
		switch s {
		case SchemeArgon2id, SchemeBcryptSHA256:
		default:
			return nil, fmt.Errorf("unknown hash scheme %q", s)
		}
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
