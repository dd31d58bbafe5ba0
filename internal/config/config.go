package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfigFile names an optional TOML file applied between built-in
// defaults and environment variables.
const EnvConfigFile = "DOCSHELF_CONFIG"

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `toml:"host"`
	Port               string `toml:"port"`
	User               string `toml:"user"`
	Password           string `toml:"password"`
	Name               string `toml:"name"`
	SSLMode            string `toml:"sslmode"`
	MaxOpenConns       int    `toml:"max_open_conns"`
	MaxIdleConns       int    `toml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `toml:"conn_max_lifetime_sec"`
}

// KVConfig selects the key-value backend holding the library state.
type KVConfig struct {
	// Driver is one of memory, sqlite, postgres.
	Driver string `toml:"driver"`
	// SQLitePath is the database file used when Driver is sqlite.
	SQLitePath string `toml:"sqlite_path"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
}

// LibraryConfig tunes the document metadata store.
type LibraryConfig struct {
	// MaxRecent caps the recents list; older entries are evicted.
	MaxRecent int `toml:"max_recent"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from defaults, an optional TOML file, and environment
// variables, in that order. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string         `toml:"app_host"`
	Port     string         `toml:"port"`
	Log      LogConfig      `toml:"log"`
	Database DatabaseConfig `toml:"database"`
	KV       KVConfig       `toml:"kv"`
	MinIO    MinIOConfig    `toml:"minio"`
	Library  LibraryConfig  `toml:"library"`
}

// Load reads configuration in three layers: built-in defaults, the optional
// TOML file named by DOCSHELF_CONFIG, then environment variables. Later
// layers win. A .env file can be auto-loaded by importing
// _ "github.com/joho/godotenv/autoload"; real environment variables take
// precedence over it as well.
func Load() (*AppConfig, error) {
	cfg := defaults()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *AppConfig {
	return &AppConfig{
		AppHost: "localhost:8080",
		Port:    "8080",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Database: DatabaseConfig{
			Port:               "5432",
			SSLMode:            "disable",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
		},
		KV: KVConfig{
			Driver:     "memory",
			SQLitePath: "docshelf.db",
		},
		Library: LibraryConfig{
			MaxRecent: 20,
		},
	}
}

// applyFile overlays values from a TOML file. Keys absent from the file
// leave the current value untouched.
func applyFile(cfg *AppConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables; an unset variable keeps the
// current value.
func applyEnv(cfg *AppConfig) {
	cfg.AppHost = getEnv("APP_HOST", cfg.AppHost)
	cfg.Port = getEnv("PORT", cfg.Port)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetimeSec = getEnvInt("DB_CONN_MAX_LIFETIME_SEC", cfg.Database.ConnMaxLifetimeSec)

	cfg.KV.Driver = getEnv("KV_DRIVER", cfg.KV.Driver)
	cfg.KV.SQLitePath = getEnv("KV_SQLITE_PATH", cfg.KV.SQLitePath)

	cfg.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", cfg.MinIO.Endpoint)
	cfg.MinIO.AccessKey = getEnv("MINIO_ACCESS_KEY", cfg.MinIO.AccessKey)
	cfg.MinIO.SecretKey = getEnv("MINIO_SECRET_KEY", cfg.MinIO.SecretKey)
	cfg.MinIO.Bucket = getEnv("MINIO_BUCKET", cfg.MinIO.Bucket)
	cfg.MinIO.UseSSL = getEnvBool("MINIO_USE_SSL", cfg.MinIO.UseSSL)

	cfg.Library.MaxRecent = getEnvInt("LIBRARY_MAX_RECENT", cfg.Library.MaxRecent)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
