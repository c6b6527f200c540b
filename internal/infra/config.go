package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	LogLevel           string
	Port               string
	PublicDir          string
	DatabaseURL        string
	GeoIPDBPath        string
	GenAPIKey          string
	GenAPIBaseURL      string
	TextModel          string
	ImageModel         string
	TextPollAttempts   int
	TextPollInterval   time.Duration
	ImagePollAttempts  int
	ImagePollInterval  time.Duration
	CORSAllowedOrigins []string
	RateLimitPerMin    int
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	HTTPClientTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
// Nothing is mandatory: a missing API key is reported through Validate so the
// process can still start and serve health checks. The write timeout default
// outlasts the longest image poll budget.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		Port:               getEnv("PORT", "8080"),
		PublicDir:          getEnv("PUBLIC_DIR", "./public"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		GenAPIKey:          strings.TrimSpace(os.Getenv("GEN_API_KEY")),
		GenAPIBaseURL:      getEnv("GEN_API_BASE_URL", "https://api.gen-api.ru/api/v1"),
		TextModel:          getEnv("GEN_API_TEXT_MODEL", "gpt-4o-mini"),
		ImageModel:         getEnv("GEN_API_IMAGE_MODEL", "dalle-3"),
		TextPollAttempts:   getEnvInt("TEXT_POLL_ATTEMPTS", 20),
		TextPollInterval:   time.Millisecond * time.Duration(getEnvInt("TEXT_POLL_INTERVAL_MS", 1500)),
		ImagePollAttempts:  getEnvInt("IMAGE_POLL_ATTEMPTS", 120),
		ImagePollInterval:  time.Millisecond * time.Duration(getEnvInt("IMAGE_POLL_INTERVAL_MS", 5000)),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 660)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		HTTPClientTimeout:  time.Second * time.Duration(getEnvInt("HTTP_CLIENT_TIMEOUT_SECONDS", 60)),
	}
	return cfg, nil
}

// Validate lists configuration problems that degrade the service without
// preventing startup.
func (c *Config) Validate() []string {
	var problems []string
	if c.GenAPIKey == "" {
		problems = append(problems, "GEN_API_KEY is not set; generation requests will be rejected by the provider")
	}
	if c.TextPollAttempts <= 0 || c.ImagePollAttempts <= 0 {
		problems = append(problems, "poll attempts must be positive; defaults will be used")
	}
	return problems
}

// PersistenceEnabled reports whether brandbooks should be recorded.
func (c *Config) PersistenceEnabled() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
