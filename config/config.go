// Package config reads server settings from an optional YAML file and the environment.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"projectz/server/generation"
)

// Config is the server configuration. Environment variables win over the file.
type Config struct {
	DBType      string `yaml:"db_type"`
	DatabaseURL string `yaml:"database_url"`
	DBFile      string `yaml:"db_file"`
	Port        string `yaml:"port"`

	WorldName   string `yaml:"world_name"`
	WorldWidth  int    `yaml:"world_width"`
	WorldHeight int    `yaml:"world_height"`
	WorldSeed   string `yaml:"world_seed"`
	ItemCatalog string `yaml:"item_catalog"`

	LogLevel string `yaml:"log_level"`

	// Generation overrides layout constants; only read from the file
	Generation generation.Params `yaml:"generation"`
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		DBType:      "json",
		DatabaseURL: "host=localhost user=projectz password=projectz dbname=projectz sslmode=disable",
		DBFile:      "db.json",
		Port:        "8080",
		WorldName:   "city",
		WorldWidth:  512,
		WorldHeight: 512,
		WorldSeed:   "prototype",
		LogLevel:    "info",
		Generation:  generation.DefaultParams(),
	}
}

// Load builds the configuration from CONFIG_FILE (if set) and the environment
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	setString(&cfg.DBType, "DB_TYPE")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.DBFile, "DB_FILE")
	setString(&cfg.Port, "PORT")
	setString(&cfg.WorldName, "WORLD_NAME")
	setString(&cfg.WorldSeed, "WORLD_SEED")
	setString(&cfg.ItemCatalog, "ITEM_CATALOG")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	if err := setInt(&cfg.WorldWidth, "WORLD_WIDTH"); err != nil {
		return cfg, err
	}
	if err := setInt(&cfg.WorldHeight, "WORLD_HEIGHT"); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// NewLogger returns a timestamped logger at level. Unknown levels fall back to info.
func NewLogger(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
