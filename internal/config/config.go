// Package config reads process settings from the environment, after loading
// an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	defaultCacheTTL        = 5 * time.Minute
	defaultRefreshInterval = 15 * time.Minute
)

type Fizzy struct {
	BaseURL     string
	AccountSlug string
	Token       string
	BoardID     string
	IndexedBy   string
}

// Missing names the required Fizzy variables that are unset.
func (f Fizzy) Missing() []string {
	var missing []string
	for _, v := range []struct{ name, value string }{
		{"FIZZY_BASE_URL", f.BaseURL},
		{"FIZZY_ACCOUNT_SLUG", f.AccountSlug},
		{"FIZZY_TOKEN", f.Token},
		{"FIZZY_BOARD_ID", f.BoardID},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	return missing
}

type Mail struct {
	Host     string
	Port     int
	Username string
	Password string
	TLS      string
	From     string
	To       string
}

type Config struct {
	Port      string
	StaticDir string
	Debug     bool

	Fizzy Fizzy

	RedisURL        string
	CacheTTL        time.Duration
	RefreshInterval time.Duration

	Mail Mail
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("config.dotenv.unreadable")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:      defaultEnv("PORT", "8990"),
		StaticDir: defaultEnv("STATIC_DIR", "static"),
		Fizzy: Fizzy{
			BaseURL:     strings.TrimSpace(os.Getenv("FIZZY_BASE_URL")),
			AccountSlug: strings.TrimSpace(os.Getenv("FIZZY_ACCOUNT_SLUG")),
			Token:       strings.TrimSpace(os.Getenv("FIZZY_TOKEN")),
			BoardID:     strings.TrimSpace(os.Getenv("FIZZY_BOARD_ID")),
			IndexedBy:   strings.TrimSpace(os.Getenv("FIZZY_INDEXED_BY")),
		},
		RedisURL: strings.TrimSpace(os.Getenv("REDIS_URL")),
		Mail: Mail{
			Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			TLS:      strings.ToLower(defaultEnv("SMTP_TLS", "starttls")),
			From:     os.Getenv("MAIL_FROM"),
			To:       os.Getenv("MAIL_TO"),
		},
	}

	if v := os.Getenv("DEBUG"); v != "" {
		dbg, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DEBUG: %w", err)
		}
		cfg.Debug = dbg
	}

	var err error
	if cfg.CacheTTL, err = durationEnv("ROADMAP_CACHE_TTL", defaultCacheTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = durationEnv("ROADMAP_REFRESH_INTERVAL", defaultRefreshInterval); err != nil {
		return nil, err
	}

	cfg.Mail.Port = 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 65535 {
			return nil, fmt.Errorf("invalid SMTP_PORT: %q", v)
		}
		cfg.Mail.Port = n
	}
	switch cfg.Mail.TLS {
	case "none", "starttls", "tls":
	default:
		return nil, fmt.Errorf("invalid SMTP_TLS: %q (want none, starttls or tls)", cfg.Mail.TLS)
	}

	return cfg, nil
}

// ApplyLogging sets the logrus level from Debug.
func (c *Config) ApplyLogging(logger *log.Logger) {
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}
}

func defaultEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// durationEnv parses key as a time.Duration. Zero is allowed and disables the
// corresponding feature.
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}
