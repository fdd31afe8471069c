// Package config loads fieldlog settings from defaults, an optional YAML
// file, a .env file and FIELDLOG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "FIELDLOG"

type Config struct {
	DB       DBConfig      `mapstructure:"db"`
	Log      LogConfig     `mapstructure:"log"`
	Timezone string        `mapstructure:"timezone"`
	Keyring  KeyringConfig `mapstructure:"keyring"`

	// User is the default acting identity (student, supervisor or
	// instructor id) for CLI commands.
	User string `mapstructure:"user"`
}

// DBConfig selects the datastore. Path is used by sqlite, DSN by postgres.
type DBConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

type LogConfig struct {
	Debug bool   `mapstructure:"debug"`
	Dir   string `mapstructure:"dir"`
}

// KeyringConfig enables reading the postgres DSN from the OS keyring when
// db.dsn is empty.
type KeyringConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DataDir returns ~/.fieldlog, or ./.fieldlog when the home directory is
// unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fieldlog"
	}
	return filepath.Join(home, ".fieldlog")
}

// Load reads the configuration. Precedence: environment > config file >
// defaults. An empty path searches ./fieldlog.yaml and the data dir; a
// missing file is not an error. A .env file in the working directory is
// loaded first and never overrides variables already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	dataDir := DataDir()
	v := viper.New()

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", filepath.Join(dataDir, "fieldlog.db"))
	v.SetDefault("db.dsn", "")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.dir", dataDir)
	v.SetDefault("timezone", "Local")
	v.SetDefault("keyring.enabled", true)
	v.SetDefault("user", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fieldlog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(dataDir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite":
		if c.DB.Path == "" {
			return fmt.Errorf("config: db.path is required for sqlite")
		}
	case "postgres":
	default:
		return fmt.Errorf("config: db.driver %q is not supported (sqlite or postgres)", c.DB.Driver)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the timezone in which "today" is evaluated.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ResolveDSN fills DB.DSN from lookup when postgres is selected without a
// DSN. lookup is only consulted when the keyring is enabled.
func (c *Config) ResolveDSN(lookup func() (string, error)) error {
	if c.DB.Driver != "postgres" || c.DB.DSN != "" {
		return nil
	}
	if !c.Keyring.Enabled || lookup == nil {
		return fmt.Errorf("config: db.dsn is required for postgres (set %s_DB_DSN)", EnvPrefix)
	}
	dsn, err := lookup()
	if err != nil {
		return fmt.Errorf("config: reading postgres DSN from keyring: %w", err)
	}
	c.DB.DSN = dsn
	return nil
}
