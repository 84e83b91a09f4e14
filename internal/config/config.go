package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var ErrMissingAPIKey = errors.New("RIOT_API_KEY is required")

type Config struct {
	RiotAPIKey      string        `envconfig:"RIOT_API_KEY"`
	RiotHostFormat  string        `envconfig:"RIOT_HOST_FORMAT" default:"https://%s.api.riotgames.com"`
	DefaultPlatform string        `envconfig:"DEFAULT_PLATFORM" default:"euw1"`
	ServerPort      string        `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	DBPath          string        `envconfig:"DB_PATH" default:"ladder.db"`
	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"5s"`
	BatchPacing     time.Duration `envconfig:"BATCH_PACING" default:"200ms"`
	RecentMatches   int           `envconfig:"RECENT_MATCHES" default:"5"`

	// gameName#tagLine[@platform] entries seeded into the roster at startup.
	Roster      []string `envconfig:"ROSTER"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Load reads an optional .env file and then the process environment. A
// missing RIOT_API_KEY fails here, before any upstream request is possible.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LogSummary(cfg *Config, logger zerolog.Logger) {
	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("default_platform", cfg.DefaultPlatform).
		Dur("upstream_timeout", cfg.UpstreamTimeout).
		Dur("batch_pacing", cfg.BatchPacing).
		Int("recent_matches", cfg.RecentMatches).
		Int("roster_size", len(cfg.Roster)).
		Msg("configuration loaded")
}

func (c *Config) Validate() error {
	c.RiotAPIKey = strings.TrimSpace(c.RiotAPIKey)
	if c.RiotAPIKey == "" {
		return ErrMissingAPIKey
	}
	if !strings.Contains(c.RiotHostFormat, "%s") {
		return fmt.Errorf("RIOT_HOST_FORMAT must contain %%s, got %q", c.RiotHostFormat)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.UpstreamTimeout)
	}
	if c.BatchPacing < 0 {
		return fmt.Errorf("BATCH_PACING must not be negative, got %s", c.BatchPacing)
	}
	if c.RecentMatches < 1 || c.RecentMatches > 20 {
		return fmt.Errorf("RECENT_MATCHES must be between 1 and 20, got %d", c.RecentMatches)
	}
	return nil
}

var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(LogSummary),
)
