// Package config builds the bot configuration from defaults, an optional .env file and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/oklahomer/go-kasumi/logger"

	"github.com/janesbot/janesbot/internal/discord"
)

// DefaultEnvFile is the .env file read when no other path is given.
const DefaultEnvFile = ".env"

// Config holds the application configuration.
type Config struct {
	// Discord is the adapter configuration. DISCORD_TOKEN is required.
	Discord discord.Config

	// Prefix precedes every command name, e.g. "!" for "!ping".
	Prefix string `env:"JANES_PREFIX" envDefault:"!"`
}

// Default returns the configuration used when nothing is overridden.
// The token is empty.
func Default() *Config {
	cfg := &Config{
		Discord: *discord.NewConfig(),
		Prefix:  "!",
	}
	// Derived from Prefix unless given explicitly.
	cfg.Discord.HelpCommand = ""
	return cfg
}

// Load reads the given .env file, if it exists, and then environment variables.
// Variables already present in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Infof("No %s file found, using environment variables", envFile)
		case err != nil:
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Discord.HelpCommand == "" {
		cfg.Discord.HelpCommand = cfg.Prefix + "help"
	}

	return cfg, nil
}

// Validate checks that the mandatory values are set.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required: %w", discord.ErrEmptyToken)
	}
	if c.Prefix == "" {
		return errors.New("JANES_PREFIX must not be empty")
	}
	return nil
}
