// Package config loads the runtime configuration from a config file,
// .env files and PFTUI_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"

	FormatHuman = "human"
	FormatJSON  = "json"

	EnvPrefix = "PFTUI"
)

var (
	ErrInvalidDriver    = errors.New("database driver must be one of sqlite, mongo")
	ErrInvalidLogFormat = errors.New("log format must be one of human, json")
	ErrMissingUser      = errors.New("user must not be empty")
	ErrMissingMongoURI  = errors.New("database.mongo_uri must be set for the mongo driver")
)

type Database struct {
	Driver        string `mapstructure:"driver"`
	DSN           string `mapstructure:"dsn"`
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Database Database `mapstructure:"database"`
	Log      Log      `mapstructure:"log"`
	User     string   `mapstructure:"user"`
}

// Defaults sets the default value of every key on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "data/pftui.db")
	v.SetDefault("database.mongo_uri", "")
	v.SetDefault("database.mongo_database", "pftui")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", FormatHuman)
	v.SetDefault("user", "local")
}

// Load reads the configuration into a Config.
//
// The env files are loaded into the process environment first, missing
// ones are ignored. Variables already set in the environment win over
// the files. If configFile is empty, pftui.yaml is looked up in the
// working directory and $HOME/.config/pftui.
func Load(v *viper.Viper, configFile string, envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	Defaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("pftui")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/pftui")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks that the configuration can be used.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return ErrMissingMongoURI
		}
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidDriver, c.Database.Driver)
	}

	if c.Log.Format != FormatHuman && c.Log.Format != FormatJSON {
		return fmt.Errorf("%w, got %q", ErrInvalidLogFormat, c.Log.Format)
	}

	if strings.TrimSpace(c.User) == "" {
		return ErrMissingUser
	}

	return nil
}
