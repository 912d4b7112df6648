package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"secret":                                     {},
}

type Config struct {
	Port               string
	DBDriver           string
	DBPath             string
	DatabaseURL        string
	SecretKey          string
	Location           *time.Location
	AIServiceURL       string
	AIServiceTimeout   time.Duration
	AIRatePerMinute    int
	GapThresholdDays   int
	OpenWindowDays     int
	StatsMinLength     int
	StatsMaxLength     int
	CORSAllowedOrigins string
	MetricsEnabled     bool
}

// Load reads the process environment after merging an optional .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env not loaded: %v", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return Config{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:               port,
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:             getEnv("DB_PATH", filepath.Join("data", "solaris.db")),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SecretKey:          secretKey,
		Location:           loadLocation(getEnv("TZ", "UTC")),
		AIServiceURL:       strings.TrimSpace(os.Getenv("AI_SERVICE_URL")),
		AIServiceTimeout:   getDurationEnv("AI_SERVICE_TIMEOUT", 15*time.Second),
		AIRatePerMinute:    getIntEnv("AI_SERVICE_RATE_PER_MINUTE", 30),
		GapThresholdDays:   getIntEnv("CYCLE_GAP_THRESHOLD_DAYS", 2),
		OpenWindowDays:     getIntEnv("CYCLE_OPEN_WINDOW_DAYS", 10),
		StatsMinLength:     getIntEnv("CYCLE_STATS_MIN_LENGTH", 14),
		StatsMaxLength:     getIntEnv("CYCLE_STATS_MAX_LENGTH", 45),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		MetricsEnabled:     getBoolEnv("METRICS_ENABLED", true),
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("invalid %s %q, using %d", key, raw, fallback)
		return fallback
	}
	return value
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		log.Printf("invalid %s %q, using %s", key, raw, fallback)
		return fallback
	}
	return value
}

func getBoolEnv(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("invalid %s %q, using %t", key, raw, fallback)
		return fallback
	}
	return value
}
