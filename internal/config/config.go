package config

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultSessionSecret = "change-me-session-secret"

// WebConfig configures cmd/web.
type WebConfig struct {
	AppEnv         string        `env:"APP_ENV" envDefault:"dev"`
	Port           string        `env:"PORT" envDefault:"8080"`
	APIURL         string        `env:"API_URL" envDefault:"https://aniversario-back.onrender.com"`
	APITimeout     time.Duration `env:"API_TIMEOUT" envDefault:"0s"`
	SessionSecret  string        `env:"SESSION_SECRET" envDefault:"change-me-session-secret"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	CookieSameSite string        `env:"COOKIE_SAMESITE" envDefault:"Lax"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"26214400"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// DevAPIConfig configures cmd/devapi.
type DevAPIConfig struct {
	AppEnv          string   `env:"APP_ENV" envDefault:"dev"`
	Port            string   `env:"PORT" envDefault:"8081"`
	DatabaseURL     string   `env:"DATABASE_URL" envDefault:"aniversario.db"`
	UploadsDir      string   `env:"UPLOADS_DIR" envDefault:"./uploads"`
	MaxPhotoBytes   int64    `env:"MAX_PHOTO_BYTES" envDefault:"10485760"`
	GiftSuggestions []string `env:"GIFT_SUGGESTIONS" envSeparator:","`
}

// LoadDotEnv reads .env files when present. Missing files are not an error.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			log.Printf("dotenv_load_failed file=%s error=%v", f, err)
		}
	}
}

func LoadWebConfig() (*WebConfig, error) {
	cfg := &WebConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	cfg.SessionSecret = strings.TrimSpace(cfg.SessionSecret)

	if err := validateWebConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("web config: env=%s api=%s session_ttl=%s cookie_secure=%t", cfg.AppEnv, cfg.APIURL, cfg.SessionTTL, cfg.CookieSecure)
	return cfg, nil
}

func LoadDevAPIConfig() (*DevAPIConfig, error) {
	cfg := &DevAPIConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, errors.New("DATABASE_URL must not be empty")
	}
	if strings.TrimSpace(cfg.UploadsDir) == "" {
		return nil, errors.New("UPLOADS_DIR must not be empty")
	}
	if cfg.MaxPhotoBytes <= 0 {
		return nil, errors.New("MAX_PHOTO_BYTES must be > 0")
	}
	if isProdLike(cfg.AppEnv) {
		return nil, errors.New("the development api must not run with a prod/release APP_ENV")
	}
	return cfg, nil
}

// SameSite converts COOKIE_SAMESITE into its http constant.
func (c *WebConfig) SameSite() http.SameSite {
	switch strings.ToLower(c.CookieSameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// IsProd reports whether APP_ENV names a production deployment.
func (c *WebConfig) IsProd() bool {
	return isProdLike(c.AppEnv)
}

// Addr is the listen address.
func (c *WebConfig) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Addr is the listen address.
func (c *DevAPIConfig) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func validateWebConfig(cfg *WebConfig) error {
	if cfg.APIURL == "" {
		return fmt.Errorf("API_URL must not be empty")
	}
	if !strings.HasPrefix(cfg.APIURL, "http://") && !strings.HasPrefix(cfg.APIURL, "https://") {
		return fmt.Errorf("API_URL must be an http(s) URL")
	}
	if cfg.APITimeout < 0 {
		return fmt.Errorf("API_TIMEOUT must be >= 0")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be > 0")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0")
	}
	sameSite := strings.ToLower(strings.TrimSpace(cfg.CookieSameSite))
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.SessionSecret, defaultSessionSecret) {
			return fmt.Errorf("in prod/release SESSION_SECRET must be set and not default")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
