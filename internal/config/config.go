package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultWeatherBaseURL = "https://api.data.gov.sg/v1/environment"
	DefaultMQTTTopic      = "shoresquad/crews"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// StaticDir is the absolute path to the directory served at /static/.
	// Set via STATIC_DIR (relative paths are resolved against the process working directory at startup).
	StaticDir string

	SQLiteDriver          string
	SQLiteDSN             string
	SQLitePath            string
	SQLiteMaxOpenConns    int
	SQLiteMaxIdleConns    int
	SQLiteConnMaxLifetime time.Duration
	SQLiteLogStatements   bool

	WeatherBaseURL         string
	WeatherRefreshInterval time.Duration
	WeatherHTTPTimeout     time.Duration

	// MQTTBroker empty disables crew activity publishing.
	MQTTBroker   string
	MQTTPort     int
	MQTTClientID string
	MQTTTopic    string

	CORSAllowedOrigins []string
}

func LoadFromEnv() (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	staticDir, err := filepath.Abs(envOr("STATIC_DIR", "static"))
	if err != nil {
		return Config{}, fmt.Errorf("STATIC_DIR %q: %w", os.Getenv("STATIC_DIR"), err)
	}

	maxOpenConns, err := envInt("DB_MAX_OPEN_CONNS", 1)
	if err != nil {
		return Config{}, err
	}
	maxIdleConns, err := envInt("DB_MAX_IDLE_CONNS", 1)
	if err != nil {
		return Config{}, err
	}
	connMaxLifetime, err := envDuration("DB_CONN_MAX_LIFETIME", 0)
	if err != nil {
		return Config{}, err
	}
	logStatements, err := envBool("DB_LOG_SQL", false)
	if err != nil {
		return Config{}, err
	}

	weatherBaseURL := strings.TrimRight(envOr("WEATHER_BASE_URL", DefaultWeatherBaseURL), "/")
	refreshInterval, err := envDuration("WEATHER_REFRESH_INTERVAL", 30*time.Minute)
	if err != nil {
		return Config{}, err
	}
	if refreshInterval <= 0 {
		return Config{}, fmt.Errorf("WEATHER_REFRESH_INTERVAL must be > 0, got %s", refreshInterval)
	}
	weatherTimeout, err := envDuration("WEATHER_HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	mqttPort, err := envInt("MQTT_PORT", 1883)
	if err != nil {
		return Config{}, err
	}
	if mqttPort <= 0 || mqttPort > 65535 {
		return Config{}, fmt.Errorf("invalid MQTT_PORT %d (allowed: 1-65535)", mqttPort)
	}

	return Config{
		AppEnv:                 appEnv,
		LogLevel:               level,
		HTTPAddr:               envOr("HTTP_ADDR", ":8080"),
		StaticDir:              staticDir,
		SQLiteDriver:           envOr("DB_DRIVER", "sqlite3"),
		SQLiteDSN:              strings.TrimSpace(os.Getenv("DB_DSN")),
		SQLitePath:             envOr("SQLITE_PATH", "data/shoresquad.db"),
		SQLiteMaxOpenConns:     maxOpenConns,
		SQLiteMaxIdleConns:     maxIdleConns,
		SQLiteConnMaxLifetime:  connMaxLifetime,
		SQLiteLogStatements:    logStatements,
		WeatherBaseURL:         weatherBaseURL,
		WeatherRefreshInterval: refreshInterval,
		WeatherHTTPTimeout:     weatherTimeout,
		MQTTBroker:             strings.TrimSpace(os.Getenv("MQTT_BROKER")),
		MQTTPort:               mqttPort,
		MQTTClientID:           envOr("MQTT_CLIENT_ID", "shoresquad-server"),
		MQTTTopic:              envOr("MQTT_TOPIC", DefaultMQTTTopic),
		CORSAllowedOrigins:     splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
	}, nil
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}

func envBool(key string, fallback bool) (bool, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
