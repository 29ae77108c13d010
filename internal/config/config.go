package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Upstream UpstreamConfig `mapstructure:"upstream" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Images   ImagesConfig   `mapstructure:"images"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port           int           `mapstructure:"port"            validate:"required,gt=0,lt=65536"`
	LogLevel       string        `mapstructure:"log_level"       validate:"required,oneof=debug info warn error"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// UpstreamConfig describes the Marvel API endpoint and its credentials.
type UpstreamConfig struct {
	BaseURL    string        `mapstructure:"base_url"    validate:"required,url"`
	PublicKey  string        `mapstructure:"public_key"  validate:"required"`
	PrivateKey string        `mapstructure:"private_key" validate:"required"`
	Timeout    time.Duration `mapstructure:"timeout"     validate:"gt=0"`
	RetryCount int           `mapstructure:"retry_count" validate:"gte=0,lte=10"`
}

// DatabaseConfig selects the document store.
type DatabaseConfig struct {
	// Driver is "postgres" or "memory". The memory driver keeps documents
	// for the lifetime of the process only.
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	URL    string `mapstructure:"url"    validate:"required_if=Driver postgres"`
}

// ImagesConfig selects where cached thumbnails are kept.
type ImagesConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=local s3"`
	Dir    string `mapstructure:"dir"    validate:"required_if=Driver local"`

	S3Bucket          string `mapstructure:"s3_bucket"            validate:"required_if=Driver s3"`
	S3Prefix          string `mapstructure:"s3_prefix"`
	S3Region          string `mapstructure:"s3_region"`
	S3Endpoint        string `mapstructure:"s3_endpoint"          validate:"omitempty,url"`
	S3AccessKeyID     string `mapstructure:"s3_access_key_id"`
	S3SecretAccessKey string `mapstructure:"s3_secret_access_key" validate:"required_with=S3AccessKeyID"`
}
