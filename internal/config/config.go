// Package config reads server settings from the environment and flags.
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// SMTP configures outgoing contact mail.
type SMTP struct {
	Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"SMTP_PORT" envDefault:"587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
	To   string `env:"TO_EMAIL"`
}

// Enabled reports whether credentials are configured.
func (s SMTP) Enabled() bool {
	return s.User != "" && s.Pass != ""
}

// Admin holds dashboard credentials.
type Admin struct {
	Username string `env:"ADMIN_USERNAME"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Config is the server configuration.
type Config struct {
	HTTPAddr string `env:"JOURNEY_HTTP_ADDR" envDefault:":8080"`
	// Port keeps the conventional PORT variable working; it overrides the
	// port of HTTPAddr unless -http-addr is given.
	Port    string `env:"PORT"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	DBPath     string `env:"JOURNEY_DB_PATH" envDefault:"journey.db"`
	StaticDir  string `env:"JOURNEY_STATIC_DIR" envDefault:"./static"`
	ImagesDir  string `env:"JOURNEY_IMAGES_DIR" envDefault:"./images"`
	BaseURL    string `env:"JOURNEY_BASE_URL"`
	Sampling   string `env:"JOURNEY_SCROLL_SAMPLING" envDefault:"per-frame"`
	GtagID     string `env:"JOURNEY_GTAG_ID"`
	DevMonitor bool   `env:"JOURNEY_DEV_MONITOR"`

	Retention       time.Duration `env:"JOURNEY_RETENTION" envDefault:"8760h"`
	CleanupInterval time.Duration `env:"JOURNEY_CLEANUP_INTERVAL" envDefault:"24h"`
	ShutdownTimeout time.Duration `env:"JOURNEY_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	SMTP  SMTP
	Admin Admin
}

// Load parses environ (KEY=VALUE pairs, as from os.Environ) and then
// overrides from flags in args.
func Load(fs *flag.FlagSet, args []string, environ []string) (Config, error) {
	var cfg Config
	opts := env.Options{Environment: toMap(environ)}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Port != "" {
		host := cfg.HTTPAddr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		cfg.HTTPAddr = host + ":" + cfg.Port
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.Sampling, "sampling", cfg.Sampling, "scroll sampling policy (per-frame or every-event)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Retention <= 0 {
		return Config{}, fmt.Errorf("retention must be positive, got %s", cfg.Retention)
	}
	return cfg, nil
}

func toMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	return m
}
