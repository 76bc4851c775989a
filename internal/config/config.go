package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"trio-server/internal/util"
)

// Config provides configuration for the Trio server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	// FailDelayMillis is how long a failed reveal stays on the table before
	// the cards are returned
	FailDelayMillis int `yaml:"failDelayMillis" envconfig:"fail_delay_millis"`
	Room            struct {
		MinPlayers int `yaml:"minPlayers" envconfig:"min_players"`
		MaxPlayers int `yaml:"maxPlayers" envconfig:"max_players"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is not an error;
// the defaults plus the environment are enough to run.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("TRIO_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("trio", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	c := Config{
		PGDSN:           "postgres://localhost:5432/trio?sslmode=disable",
		MigrationsPath:  "./sql",
		FailDelayMillis: 2500,
	}
	c.Room.MinPlayers = 3
	c.Room.MaxPlayers = 6
	c.Log.Level = "info"
	return c
}
