package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds environment-based settings
type Config struct {
	Environment    string
	ServerAddress  string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string
	CacheTTL      time.Duration

	BoundarySource  string
	BoundaryFile    string
	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesPrefix    string
	SpacesAccessKey string
	SpacesSecretKey string

	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string

	MQTTBrokerURL   string
	MQTTTopicPrefix string

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	PDFCompress     bool
}

// AdminEnabled reports whether the admin routes can be mounted.
func (c *Config) AdminEnabled() bool {
	return c.JWTSecret != "" && c.AdminUsername != "" && c.AdminPasswordHash != ""
}

// CacheEnabled reports whether a Redis cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddress != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cacheTTL, err := durationEnv("CACHE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	shutdown, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	useSpaces, err := boolEnv("USE_SPACES", false)
	if err != nil {
		return nil, err
	}
	compress, err := boolEnv("PDF_COMPRESS", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:    stringEnv("APP_ENV", "production"),
		ServerAddress:  stringEnv("SERVER_ADDRESS", ":8080"),
		DatabaseURL:    dbURL,
		MigrationsPath: stringEnv("MIGRATIONS_PATH", "./migrations"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      cacheTTL,

		BoundarySource:  stringEnv("BOUNDARY_SOURCE", "./data"),
		BoundaryFile:    stringEnv("BOUNDARY_FILE", "districts.geojson"),
		UseSpaces:       useSpaces,
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesPrefix:    os.Getenv("SPACES_PREFIX"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		MQTTBrokerURL:   os.Getenv("MQTT_BROKER_URL"),
		MQTTTopicPrefix: stringEnv("MQTT_TOPIC_PREFIX", "waktusolat"),

		LogLevel:        stringEnv("LOG_LEVEL", "info"),
		LogFormat:       stringEnv("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdown,
		CORSOrigins:     listEnv("CORS_ORIGINS", []string{"*"}),
		PDFCompress:     compress,
	}

	if cfg.UseSpaces && cfg.SpacesBucket == "" {
		return nil, fmt.Errorf("SPACES_BUCKET is required when USE_SPACES is set")
	}
	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func listEnv(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
