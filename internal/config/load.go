package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "MARVEL"

// Defaults applied before any file or environment value.
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultBaseURL         = "https://gateway.marvel.com/v1/public"
	DefaultUpstreamTimeout = 15 * time.Second
	DefaultRetryCount      = 2
	DefaultDatabaseDriver  = "postgres"
	DefaultImagesDriver    = "local"
	DefaultImagesDir       = "images"
)

// legacyEnv lists the unprefixed environment names accepted as fallbacks.
var legacyEnv = map[string][]string{
	"upstream.base_url":    {"API_LINK"},
	"upstream.public_key":  {"PUBLIC_KEY"},
	"upstream.private_key": {"PRIVATE_KEY"},
	"database.url":         {"DATABASE_URL"},
}

// keys lists every configuration key so that each one can be bound to its
// environment variable; viper only unmarshals env values for known keys.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.request_timeout",
	"upstream.base_url",
	"upstream.public_key",
	"upstream.private_key",
	"upstream.timeout",
	"upstream.retry_count",
	"database.driver",
	"database.url",
	"images.driver",
	"images.dir",
	"images.s3_bucket",
	"images.s3_prefix",
	"images.s3_region",
	"images.s3_endpoint",
	"images.s3_access_key_id",
	"images.s3_secret_access_key",
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from config files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path looks for an
// optional config.yaml in the working directory; a non-empty path must exist.
func LoadFile(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadUpstream reads the same sources as LoadFile but validates only the
// upstream section, for commands that never touch the database or images.
func LoadUpstream(path string) (*UpstreamConfig, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg.Upstream); err != nil {
		return nil, fmt.Errorf("upstream config validation failed: %w", err)
	}

	return &cfg.Upstream, nil
}

func read(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.request_timeout", DefaultRequestTimeout)
	v.SetDefault("upstream.base_url", DefaultBaseURL)
	v.SetDefault("upstream.timeout", DefaultUpstreamTimeout)
	v.SetDefault("upstream.retry_count", DefaultRetryCount)
	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("images.driver", DefaultImagesDriver)
	v.SetDefault("images.dir", DefaultImagesDir)
}

// bindEnv binds MARVEL_SECTION_KEY for every key, followed by any legacy
// names, in order of precedence.
func bindEnv(v *viper.Viper) error {
	replacer := strings.NewReplacer(".", "_")
	for _, key := range keys {
		names := []string{key, EnvPrefix + "_" + strings.ToUpper(replacer.Replace(key))}
		names = append(names, legacyEnv[key]...)
		if err := v.BindEnv(names...); err != nil {
			return fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}
	return nil
}
