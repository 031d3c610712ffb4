// Package config loads service settings from an optional .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const DefaultPort = 8000

type Config struct {
	DatabaseURL     string        `koanf:"database_url"     validate:"required"`
	Port            int           `koanf:"port"             validate:"min=1,max=65535"`
	LogLevel        string        `koanf:"log_level"        validate:"oneof=debug info warn error"`
	LogJSON         bool          `koanf:"log_json"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

func Default() Config {
	return Config{
		Port:            DefaultPort,
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
	}
}

// envKeys maps the recognised environment variables to config keys.
// Anything else in the environment is ignored.
var envKeys = map[string]string{
	"DATABASE_URL":     "database_url",
	"PORT":             "port",
	"LOG_LEVEL":        "log_level",
	"LOG_JSON":         "log_json",
	"SHUTDOWN_TIMEOUT": "shutdown_timeout",
}

// Load reads envFile (when it exists) into the process environment without
// overriding variables that are already set, then builds a Config from
// defaults and the environment. The result is not validated: callers apply
// their own overrides first and then call Validate.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}
	return FromEnviron(os.Environ)
}

// FromEnviron builds an unvalidated Config from defaults and the variables
// returned by environ.
func FromEnviron(environ func() []string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		EnvironFunc: environ,
		TransformFunc: func(key, value string) (string, any) {
			path, ok := envKeys[key]
			if !ok {
				return "", nil
			}
			return path, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
