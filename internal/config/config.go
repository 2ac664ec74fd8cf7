package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/daylog/internal/media"
	"github.com/terraincognita07/daylog/internal/security"
)

const (
	MediaBackendFS = "fs"
	MediaBackendS3 = "s3"
)

var insecureSecretKeys = map[string]bool{
	"change_me_in_production":                    true,
	"replace_with_at_least_32_random_characters": true,
}

// Config holds everything the server and CLI read from the environment.
type Config struct {
	DataDir      string
	Username     string
	Password     string
	SecretKey    string
	Port         string
	Location     *time.Location
	CookieSecure bool
	BodyLimitMB  int
	MediaBackend string
	S3           media.S3Config
}

// Load reads a .env file if present, then the process environment. Values
// already set in the environment win over the file.
func Load() (*Config, error) {
	loadDotEnv()

	secretKey, err := resolveSecretKey()
	if err != nil {
		return nil, err
	}
	port, err := resolvePort()
	if err != nil {
		return nil, err
	}
	cookieSecure, err := parseBoolEnv("COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}
	bodyLimit, err := parsePositiveIntEnv("BODY_LIMIT_MB", 64)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:      getEnv("DATA_DIR", "data"),
		Username:     os.Getenv("AUTH_USER"),
		Password:     os.Getenv("AUTH_PASS"),
		SecretKey:    secretKey,
		Port:         port,
		Location:     loadLocation(getEnv("TZ", "UTC")),
		CookieSecure: cookieSecure,
		BodyLimitMB:  bodyLimit,
		MediaBackend: strings.ToLower(getEnv("MEDIA_BACKEND", MediaBackendFS)),
		S3: media.S3Config{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Prefix:    os.Getenv("S3_PREFIX"),
		},
	}

	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("AUTH_USER and AUTH_PASS are required")
	}

	switch cfg.MediaBackend {
	case MediaBackendFS:
	case MediaBackendS3:
		if cfg.S3.Bucket == "" {
			return nil, errors.New("S3_BUCKET is required when MEDIA_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("MEDIA_BACKEND must be %q or %q, got %q", MediaBackendFS, MediaBackendS3, cfg.MediaBackend)
	}

	return cfg, nil
}

// LoadStorage reads only what offline commands need to reach the stored
// journal. Credentials and the session secret are not required.
func LoadStorage() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		DataDir:      getEnv("DATA_DIR", "data"),
		Location:     loadLocation(getEnv("TZ", "UTC")),
		MediaBackend: strings.ToLower(getEnv("MEDIA_BACKEND", MediaBackendFS)),
		S3: media.S3Config{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Prefix:    os.Getenv("S3_PREFIX"),
		},
	}
	if cfg.MediaBackend != MediaBackendFS && cfg.MediaBackend != MediaBackendS3 {
		return nil, fmt.Errorf("MEDIA_BACKEND must be %q or %q, got %q", MediaBackendFS, MediaBackendS3, cfg.MediaBackend)
	}
	return cfg, nil
}

func (cfg *Config) BodyLimitBytes() int {
	return cfg.BodyLimitMB * 1024 * 1024
}

func loadDotEnv() {
	if path := os.Getenv("DOTENV_PATH"); path != "" {
		_ = godotenv.Load(path)
		return
	}
	_ = godotenv.Load()
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if insecureSecretKeys[secret] {
		return "", errors.New("SECRET_KEY uses a placeholder value")
	}
	if len(secret) < security.MinSecretLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", security.MinSecretLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return value, nil
}

func parsePositiveIntEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return value, nil
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
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
