package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AuditNone  = "none"
	AuditMongo = "mongo"
	AuditBolt  = "bolt"
)

type Config struct {
	GeminiAPIKey string
	Model        string

	// BlockNone sets every harm category threshold to BLOCK_NONE.
	BlockNone       bool
	ProviderTimeout time.Duration

	Port            string
	StaticDir       string
	DefaultTimezone string

	LogLevel  string
	LogFormat string

	AuditBackend string
	MongoURI     string
	MongoDB      string
	DataDir      string
}

// Load reads configuration from the environment. A missing GEMINI_API_KEY
// is not an error here: the server starts and answers chat requests with 500.
func Load() (*Config, error) {
	// .env is optional; env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	blockNone, err := parseBoolEnv("SAFETY_BLOCK_NONE", true)
	if err != nil {
		return nil, err
	}

	timeout, err := parseDurationEnv("PROVIDER_TIMEOUT")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GeminiAPIKey:    strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:           getEnvOrDefault("MODEL", "gemini-2.5-flash"),
		BlockNone:       blockNone,
		ProviderTimeout: timeout,
		Port:            getEnvOrDefault("PORT", "8000"),
		StaticDir:       getEnvOrDefault("STATIC_DIR", "web"),
		DefaultTimezone: getEnvOrDefault("DEFAULT_TIMEZONE", "UTC"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "text"),
		AuditBackend:    strings.ToLower(getEnvOrDefault("AUDIT_BACKEND", AuditNone)),
		MongoURI:        getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnvOrDefault("MONGODB_DB", "workspace_assistant"),
		DataDir:         getEnvOrDefault("DATA_DIR", "."),
	}

	if strings.ContainsAny(cfg.Port, ": ") {
		return nil, fmt.Errorf("invalid PORT value: %q", cfg.Port)
	}

	switch cfg.AuditBackend {
	case AuditNone, AuditMongo, AuditBolt:
	default:
		return nil, fmt.Errorf("invalid AUDIT_BACKEND value %q (valid: none, mongo, bolt)", cfg.AuditBackend)
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT value %q (valid: text, json)", cfg.LogFormat)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// BoltPath is where the bolt audit backend keeps its file.
func (c *Config) BoltPath() string {
	return strings.TrimRight(c.DataDir, "/") + "/exchanges.db"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s value %q: must not be negative", key, raw)
	}
	return d, nil
}
