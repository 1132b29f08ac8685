package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"API_PORT" envDefault:"8080"`
	Hostname    string `env:"SITE_HOSTNAME"`
	RequireAjax bool   `env:"REQUIRE_AJAX" envDefault:"true"`
	// Comma-separated list of origins the form may be embedded on.
	// Empty means same-origin deployments only, no CORS headers.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFile        string   `env:"LOG_FILE"`

	// reCAPTCHA v3 Configuration
	RecaptchaSecretKey string  `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaMinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`
	RecaptchaAction    string  `env:"RECAPTCHA_ACTION" envDefault:"submit"`

	// SMTP Configuration
	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername   string `env:"SMTP_USERNAME"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`
	SMTPEncryption string `env:"SMTP_ENCRYPTION" envDefault:"starttls"`

	// Mail Configuration
	AdminEmail       string `env:"ADMIN_EMAIL"`
	AdminName        string `env:"ADMIN_NAME" envDefault:"Contact form"`
	DefaultSubject   string `env:"DEFAULT_SUBJECT" envDefault:"New message!"`
	SubjectPrefix    string `env:"SUBJECT_PREFIX"`
	AutoreplyEnabled bool   `env:"AUTOREPLY_ENABLED" envDefault:"false"`
	AutoreplySubject string `env:"AUTOREPLY_SUBJECT" envDefault:"We received your message"`

	// Rate Limit Configuration
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"3"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
	ThrottleRPS     int           `env:"THROTTLE_RPS" envDefault:"1"`
	ThrottleBurst   int           `env:"THROTTLE_BURST" envDefault:"5"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Load .env file if it exists. The ENV-specific file wins.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}
	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.Environment == "production" {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// Validate checks that every value the submission pipeline depends on is
// present. A missing value is reported before any request is accepted.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		// Without the site hostname the captcha verdict cannot be
		// checked against the site it was minted for
		{"SITE_HOSTNAME", c.Hostname},
		{"RECAPTCHA_SECRET_KEY", c.RecaptchaSecretKey},
		{"SMTP_HOST", c.SMTPHost},
		{"SMTP_USERNAME", c.SMTPUsername},
		{"SMTP_PASSWORD", c.SMTPPassword},
		{"ADMIN_EMAIL", c.AdminEmail},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("configuration error: %s is not set", r.name)
		}
	}

	switch c.SMTPEncryption {
	case "starttls", "tls", "none":
	default:
		return fmt.Errorf("configuration error: SMTP_ENCRYPTION must be starttls, tls or none, got %q", c.SMTPEncryption)
	}

	if c.RecaptchaMinScore < 0 || c.RecaptchaMinScore > 1 {
		return fmt.Errorf("configuration error: RECAPTCHA_MIN_SCORE must be within [0,1], got %.2f", c.RecaptchaMinScore)
	}

	if c.RateLimitMax <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("configuration error: rate limit max and window must be positive")
	}

	if c.ThrottleRPS <= 0 || c.ThrottleBurst <= 0 {
		return fmt.Errorf("configuration error: throttle rps and burst must be positive")
	}

	return nil
}
