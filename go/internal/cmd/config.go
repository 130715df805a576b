package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mcdev12/timeauction/go/internal/models"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Game struct {
		TotalRounds         int     `yaml:"total_rounds"`
		InitialTimeBudget   float64 `yaml:"initial_time_budget"`
		FoldThreshold       float64 `yaml:"fold_threshold"`
		RefreshNameOnRejoin bool    `yaml:"refresh_name_on_rejoin"`
	} `yaml:"game"`

	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Monitor struct {
		PollInterval time.Duration `yaml:"poll_interval"`
	} `yaml:"monitor"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	var config Config

	// Defaults come first; the file only overrides what it sets.
	settings := models.DefaultGameSettings()
	config.Game.TotalRounds = settings.TotalRounds
	config.Game.InitialTimeBudget = settings.InitialTimeBudget
	config.Game.FoldThreshold = settings.FoldThreshold

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// logLevel parses the configured log level, defaulting to info when the
// field is absent or unparseable.
func (c *Config) logLevel() zerolog.Level {
	if c.Log.Level == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c *Config) gameSettings() models.GameSettings {
	return models.GameSettings{
		TotalRounds:       c.Game.TotalRounds,
		InitialTimeBudget: c.Game.InitialTimeBudget,
		FoldThreshold:     c.Game.FoldThreshold,
	}
}
