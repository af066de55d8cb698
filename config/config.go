package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv    string
	Port      string
	DB        DatabaseConfig
	Auth      AuthConfig
	Cookie    CookieConfig
	CORS      CORSConfig
	Valkey    ValkeyConfig
	Log       LogConfig
	Telemetry TelemetryConfig
	Seed      SeedConfig
}

type DatabaseConfig struct {
	Engine   string
	Host     string
	Port     string
	Name     string
	Username string
	Password string
	SSLMode  string
}

type AuthConfig struct {
	TokenSecret []byte
	Issuer      string
	TokenTTL    time.Duration
	CookieName  string
}

type CookieConfig struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	Path     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type ValkeyConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type TelemetryConfig struct {
	ServiceName          string
	ServiceVersion       string
	OTLPEndpoint         string
	OTLPTracesEndpoint   string
	OTLPMetricsEndpoint  string
	OTLPProtocol         string
	OTLPHeaders          map[string]string
	OTLPInsecure         bool
	ExportTimeout        time.Duration
	MetricExportInterval time.Duration
}

// SeedConfig controls the sample profiles inserted at startup. Each sample
// profile gets its own user; an empty password means a random one.
type SeedConfig struct {
	Enabled      bool
	UserPassword string
}

func Load() (Config, error) {
	appEnv := getEnv("APP_ENV", "dev")
	port := getEnv("APP_PORT", "8080")

	dbName := getEnv("DB_NAME", "")
	if dbName == "" {
		dbName = os.Getenv("DB_INSTANCE_IDENTIFIER")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}

	tokenTTL, err := time.ParseDuration(getEnv("JWT_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	cookieSecure := getEnvBool("COOKIE_SECURE", appEnv == "prod")
	sameSite, err := parseSameSite(getEnv("COOKIE_SAMESITE", "lax"))
	if err != nil {
		return Config{}, err
	}

	corsOrigins := parseCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8080"))

	valkeyDB, err := strconv.Atoi(getEnv("VALKEY_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid VALKEY_DB: %w", err)
	}

	dbSSLMode := getEnv("DB_SSLMODE", "")
	if dbSSLMode == "" {
		if appEnv == "prod" {
			dbSSLMode = "require"
		} else {
			dbSSLMode = "disable"
		}
	}

	exportTimeout, err := time.ParseDuration(getEnv("OTEL_EXPORTER_OTLP_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid OTEL_EXPORTER_OTLP_TIMEOUT: %w", err)
	}
	metricInterval, err := time.ParseDuration(getEnv("OTEL_METRIC_EXPORT_INTERVAL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid OTEL_METRIC_EXPORT_INTERVAL: %w", err)
	}

	cfg := Config{
		AppEnv: appEnv,
		Port:   port,
		DB: DatabaseConfig{
			Engine:   getEnv("DB_ENGINE", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     dbName,
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  dbSSLMode,
		},
		Auth: AuthConfig{
			TokenSecret: []byte(secret),
			Issuer:      getEnv("JWT_ISSUER", "skill-exchange"),
			TokenTTL:    tokenTTL,
			CookieName:  getEnv("AUTH_COOKIE_NAME", "access_token"),
		},
		Cookie: CookieConfig{
			Domain:   getEnv("COOKIE_DOMAIN", ""),
			Secure:   cookieSecure,
			SameSite: sameSite,
			Path:     getEnv("COOKIE_PATH", "/"),
		},
		CORS: CORSConfig{
			AllowedOrigins: corsOrigins,
		},
		Valkey: ValkeyConfig{
			Addr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
			DB:       valkeyDB,
			Prefix:   getEnv("VALKEY_PREFIX", "skill-exchange:revoked"),
		},
		Log: LogConfig{
			JSON:  getEnvBool("LOG_JSON", appEnv == "prod"),
			Debug: strings.EqualFold(getEnv("LOG_LEVEL", "info"), "debug"),
		},
		Telemetry: TelemetryConfig{
			ServiceName:          getEnv("OTEL_SERVICE_NAME", "skill-exchange"),
			ServiceVersion:       getEnv("SERVICE_VERSION", "dev"),
			OTLPEndpoint:         getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			OTLPTracesEndpoint:   getEnv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", ""),
			OTLPMetricsEndpoint:  getEnv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", ""),
			OTLPProtocol:         getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
			OTLPHeaders:          parseHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", "")),
			OTLPInsecure:         getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", appEnv != "prod"),
			ExportTimeout:        exportTimeout,
			MetricExportInterval: metricInterval,
		},
		Seed: SeedConfig{
			Enabled:      getEnvBool("SEED_PROFILES", appEnv != "prod"),
			UserPassword: getEnv("SEED_USER_PASSWORD", ""),
		},
	}

	if cfg.DB.Name == "" || cfg.DB.Username == "" {
		return Config{}, errors.New("DB_NAME (or DB_INSTANCE_IDENTIFIER) and DB_USERNAME must be set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(value string) []string {
	parts := strings.Split(value, ",")
	var results []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

// parseHeaders reads the OTLP "k1=v1,k2=v2" header format.
func parseHeaders(value string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range parseCSV(value) {
		key, val, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		headers[key] = strings.TrimSpace(val)
	}
	return headers
}

func parseSameSite(value string) (http.SameSite, error) {
	switch strings.ToLower(value) {
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return http.SameSiteDefaultMode, fmt.Errorf("invalid COOKIE_SAMESITE: %s", value)
	}
}
