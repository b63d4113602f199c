package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DevAPIBaseURL        = "http://localhost:8080/api/"
	ProductionAPIBaseURL = "https://www.ahaha-craft.org/api/"
)

// Config holds server configuration
type Config struct {
	ServerPort         string
	DatabaseType       string
	DatabasePath       string
	DatabaseURL        string
	MigrationsPath     string
	SessionDuration    time.Duration
	JWTSecret          string
	CORSOrigins        []string
	RateLimitPerMinute int
	AWSRegion          string
	SESFromEmail       string
	SESFromName        string
	AppBaseURL         string
	Debug              bool
}

// ClientConfig holds configuration for the terminal client
type ClientConfig struct {
	Env            string
	APIBaseURL     string
	WordSet        string
	WordsFile      string
	RequestTimeout time.Duration
	Debug          bool
}

// Load reads server configuration from the environment, after a local .env file if present
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:         getEnv("PORT", "8080"),
		DatabaseType:       getEnv("DB_TYPE", "sqlite"),
		DatabasePath:       getEnv("DB_PATH", "./hueareyou.db"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", ""),
		SessionDuration:    getDuration("SESSION_DURATION", 30*time.Minute),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CORSOrigins:        getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 10),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:       getEnv("SES_FROM_EMAIL", ""),
		SESFromName:        getEnv("SES_FROM_NAME", "Hue Are You"),
		AppBaseURL:         getEnv("APP_BASE_URL", "http://localhost:3000"),
		Debug:              getBool("DEBUG", false),
	}
}

// LoadClient reads client configuration from the environment
func LoadClient() *ClientConfig {
	_ = godotenv.Load()

	env := getEnv("HUE_ENV", "production")
	base := ProductionAPIBaseURL
	if env == "dev" {
		base = DevAPIBaseURL
	}
	base = getEnv("HUE_API_BASE_URL", base)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	set := getEnv("HUE_WORD_SET", "")
	if set == "" {
		set = "full"
		if env == "dev" {
			set = "dev"
		}
	}

	return &ClientConfig{
		Env:            env,
		APIBaseURL:     base,
		WordSet:        set,
		WordsFile:      getEnv("HUE_WORDS_FILE", ""),
		RequestTimeout: getDuration("HUE_REQUEST_TIMEOUT", 15*time.Second),
		Debug:          getBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
