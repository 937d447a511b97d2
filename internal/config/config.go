package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/groupgrid/connections-tracker/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	DBURL              string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level

	CacheEnabled bool
	CacheTTL     time.Duration

	ChatEnabled    bool
	ChatBaseURL    string
	ChatToken      string
	ChatTimeout    time.Duration
	ChatMaxRetries int

	GatherPageSize int
	GatherWorkers  int

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	chatEnabled, err := strconv.ParseBool(getEnv("CHAT_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CHAT_ENABLED: %w", err)
	}
	chatToken := strings.TrimSpace(getEnv("CHAT_TOKEN", ""))
	if chatEnabled && chatToken == "" {
		return Config{}, fmt.Errorf("CHAT_TOKEN is required when CHAT_ENABLED=true")
	}
	chatTimeout, err := time.ParseDuration(getEnv("CHAT_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CHAT_TIMEOUT: %w", err)
	}
	if chatTimeout <= 0 {
		return Config{}, fmt.Errorf("CHAT_TIMEOUT must be > 0")
	}
	chatMaxRetries, err := getEnvAsInt("CHAT_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CHAT_MAX_RETRIES: %w", err)
	}
	if chatMaxRetries < 0 {
		return Config{}, fmt.Errorf("CHAT_MAX_RETRIES must be >= 0")
	}

	gatherPageSize, err := getEnvAsInt("GATHER_PAGE_SIZE", 100)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATHER_PAGE_SIZE: %w", err)
	}
	if gatherPageSize < 1 || gatherPageSize > 100 {
		return Config{}, fmt.Errorf("GATHER_PAGE_SIZE must be between 1 and 100")
	}
	gatherWorkers, err := getEnvAsInt("GATHER_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATHER_WORKERS: %w", err)
	}
	if gatherWorkers < 1 {
		return Config{}, fmt.Errorf("GATHER_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("APP_SERVICE_NAME", "connections-tracker-api"),
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:               getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                  getEnv("DB_URL", ""),
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:            readTimeout,
		WriteTimeout:           writeTimeout,
		LogLevel:               parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CacheEnabled:           cacheEnabled,
		CacheTTL:               cacheTTL,
		ChatEnabled:            chatEnabled,
		ChatBaseURL:            strings.TrimSpace(getEnv("CHAT_BASE_URL", "")),
		ChatToken:              chatToken,
		ChatTimeout:            chatTimeout,
		ChatMaxRetries:         chatMaxRetries,
		GatherPageSize:         gatherPageSize,
		GatherWorkers:          gatherWorkers,
		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
