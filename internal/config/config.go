package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	DataDir string
	Storage string
	API     APIConfig
	Session SessionConfig
	Logger  LoggerConfig
}

type APIConfig struct {
	BaseURL string
	// Timeout of zero disables the client timeout.
	Timeout time.Duration
}

type SessionConfig struct {
	// Store is "storage" (token kept in the KV substrate) or "keyring".
	Store string
}

type LoggerConfig struct {
	Level    string
	Encoding string
	File     string
}

const (
	SessionStoreStorage = "storage"
	SessionStoreKeyring = "keyring"

	DefaultAPIBaseURL = "http://localhost:5000/api"
)

// Load reads configuration from environment variables (optionally .env).
// A non-empty dataDir, usually the --data-dir flag, takes precedence over
// KINFOLK_DATA_DIR. DataDir is left empty when neither is set.
func Load(dataDir string) (*Config, error) {
	_ = godotenv.Load(".env")

	if dataDir == "" {
		dataDir = os.Getenv("KINFOLK_DATA_DIR")
	}

	cfg := &Config{
		DataDir: dataDir,
		Storage: getString("KINFOLK_STORAGE", "sqlite"),
		API: APIConfig{
			BaseURL: getString("KINFOLK_API_BASE_URL", DefaultAPIBaseURL),
			Timeout: getDuration("KINFOLK_API_TIMEOUT", 0),
		},
		Session: SessionConfig{
			Store: getString("KINFOLK_SESSION_STORE", SessionStoreStorage),
		},
		Logger: LoggerConfig{
			Level:    getString("KINFOLK_LOG_LEVEL", "info"),
			Encoding: getString("KINFOLK_LOG_ENCODING", "json"),
			File:     os.Getenv("KINFOLK_LOG_FILE"),
		},
	}

	return cfg, nil
}

// LogFile returns KINFOLK_LOG_FILE when set, otherwise kinfolk.log inside DataDir
func (c *Config) LogFile() string {
	if c.Logger.File != "" || c.DataDir == "" {
		return c.Logger.File
	}
	return filepath.Join(c.DataDir, "kinfolk.log")
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
