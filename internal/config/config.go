package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/zamanlabs/medicare/internal/scoring"
)

const (
	defaultPort             = "8080"
	defaultDBDriver         = "sqlite"
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultHealthTipTimeout = 15 * time.Second
	minSecretKeyLength      = 32
)

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses an example placeholder")
	ErrSecretKeyTooShort    = errors.New("SECRET_KEY must be at least 32 characters")
	ErrInvalidPort          = errors.New("PORT must be a number between 1 and 65535")
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"changeme":                                   {},
	"secret":                                     {},
}

type Config struct {
	Port        string
	DBDriver    string
	DBPath      string
	DatabaseURL string
	SecretKey   string
	Location    *time.Location

	LogLevel  string
	LogFormat string
	LogFile   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HealthTipAPIURL   string
	HealthTipAPIKey   string
	HealthTipInterval time.Duration
	HealthTipTimeout  time.Duration

	DoctorFeedback float64
	CORSOrigins    string
	TrustProxy     bool
}

// LoadDotEnv reads .env files when present. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load builds the configuration from the process environment.
func Load() (Config, error) {
	config, err := LoadStorage()
	if err != nil {
		return Config{}, err
	}

	secretKey, err := ResolveSecretKey()
	if err != nil {
		return Config{}, err
	}
	port, err := ResolvePort()
	if err != nil {
		return Config{}, err
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	interval, err := getEnvDuration("HEALTH_TIP_INTERVAL", 60*time.Second)
	if err != nil {
		return Config{}, err
	}
	timeout, err := getEnvDuration("HEALTH_TIP_TIMEOUT", defaultHealthTipTimeout)
	if err != nil {
		return Config{}, err
	}
	feedback, err := getEnvFloat("DOCTOR_FEEDBACK_SCORE", scoring.DefaultDoctorFeedback)
	if err != nil {
		return Config{}, err
	}
	if feedback < 0 || feedback > scoring.MaxDoctorFeedback {
		return Config{}, fmt.Errorf("DOCTOR_FEEDBACK_SCORE must be between 0 and %.0f", scoring.MaxDoctorFeedback)
	}

	config.Port = port
	config.SecretKey = secretKey
	config.Location = LoadLocation(getEnv("TZ", "UTC"))
	config.RedisAddr = getEnv("REDIS_ADDR", "")
	config.RedisPassword = getEnv("REDIS_PASSWORD", "")
	config.RedisDB = redisDB
	config.HealthTipAPIURL = getEnv("HEALTH_TIP_API_URL", "")
	config.HealthTipAPIKey = getEnv("HEALTH_TIP_API_KEY", "")
	config.HealthTipInterval = interval
	config.HealthTipTimeout = timeout
	config.DoctorFeedback = feedback
	config.CORSOrigins = getEnv("CORS_ORIGINS", "*")
	config.TrustProxy = getEnvBool("TRUST_PROXY", false)
	return config, nil
}

// LoadStorage reads only the database and logging keys. Maintenance
// commands use it so they run without SECRET_KEY.
func LoadStorage() (Config, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", defaultDBDriver))
	if driver != "sqlite" && driver != "postgres" {
		return Config{}, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", driver)
	}
	if driver == "postgres" && getEnv("DATABASE_URL", "") == "" {
		return Config{}, errors.New("DATABASE_URL is required when DB_DRIVER is postgres")
	}

	return Config{
		DBDriver:    driver,
		DBPath:      getEnv("DB_PATH", filepath.Join("data", "medicare.db")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", defaultLogFormat)),
		LogFile:     getEnv("LOG_FILE", ""),
	}, nil
}

func ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", ErrSecretKeyPlaceholder
	}
	if len(secret) < minSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

func ResolvePort() (string, error) {
	raw := getEnv("PORT", defaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", ErrInvalidPort
	}
	return strconv.Itoa(port), nil
}

// LoadLocation falls back to UTC for unknown zone names.
func LoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return time.UTC
	}
	return location
}

func (config Config) UsesRedis() bool {
	return strings.TrimSpace(config.RedisAddr) != ""
}

func (config Config) HealthTipEnabled() bool {
	return strings.TrimSpace(config.HealthTipAPIURL) != "" && strings.TrimSpace(config.HealthTipAPIKey) != ""
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 60s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return value, nil
}

func getEnvBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
