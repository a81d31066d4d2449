package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/client"
	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type contextKey string

const configKey contextKey = "crmctl-config"

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "CRM_"

// Settings are the values read from the environment (and an optional .env).
type Settings struct {
	// APIBaseURL is the CRM backend, e.g. https://crm.example.com/api.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:3000"`

	// Home holds session.json and crmctl.log. Defaults to ~/.crm.
	Home string `env:"HOME"`

	// Password lets scripts sign in without a prompt or a --password flag.
	Password string `env:"PASSWORD"`

	NonInteractive bool          `env:"NON_INTERACTIVE" envDefault:"false"`
	Verbose        bool          `env:"VERBOSE" envDefault:"false"`
	NotifyInterval time.Duration `env:"NOTIFY_INTERVAL" envDefault:"20s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to values loaded from env.
func (s *Settings) Sanitize() {
	s.APIBaseURL = strings.TrimRight(strings.TrimSpace(s.APIBaseURL), "/")
	if s.APIBaseURL == "" {
		s.APIBaseURL = "http://localhost:3000"
	}
	if s.NotifyInterval < time.Second {
		s.NotifyInterval = 20 * time.Second
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = 15 * time.Second
	}
}

// Load reads Settings from CRM_* variables, loading .env first when present.
func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Settings{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return s, fmt.Errorf("parse config: %w", err)
	}
	s.Sanitize()
	return s, nil
}

// GlobalConfig holds shared configuration for all crmctl commands.
// This is injected into the cobra command context by the root command's
// PersistentPreRunE hook and consumed by all subcommands.
type GlobalConfig struct {
	Settings
	ServerURL      string
	ClientProvider *client.Provider
}

// InjectConfig adds config to the cobra command context.
func InjectConfig(ctx context.Context, cfg *GlobalConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from the cobra command context.
// Returns (nil, false) if config is not present.
func FromContext(ctx context.Context) (*GlobalConfig, bool) {
	cfg, ok := ctx.Value(configKey).(*GlobalConfig)
	return cfg, ok
}

// MustFromContext retrieves config from context or panics.
// This should only be used in command RunE functions where we know
// the config has been injected by the root command.
func MustFromContext(ctx context.Context) *GlobalConfig {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("crmctl: config not found in context - this is a bug in crmctl")
	}
	return cfg
}
