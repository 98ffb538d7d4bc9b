package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aureapp/aure/internal/flagx"
	"github.com/aureapp/aure/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "15m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	RedisURL                     string         `json:"redis_url"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	SignInRatePerMinute          int            `json:"signin_rate_per_minute"`
	SignInBurst                  int            `json:"signin_burst"`
	S3AccessKey                  string         `json:"s3_access_key"`
	S3SecretKey                  string         `json:"s3_secret_key"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
}

// parseJSON loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path is taken from the -c or -config command-line flags.
// If neither is set, no JSON file is loaded and cfg is left unchanged.
func parseJSON(cfg *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if c.EndpointAddr != "" {
		cfg.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		cfg.DatabaseDSN = c.DatabaseDSN
	}
	if c.RedisURL != "" {
		cfg.RedisURL = c.RedisURL
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		cfg.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		cfg.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.SignInRatePerMinute != 0 {
		cfg.SignInRatePerMinute = c.SignInRatePerMinute
	}
	if c.SignInBurst != 0 {
		cfg.SignInBurst = c.SignInBurst
	}
	if c.S3AccessKey != "" {
		cfg.S3AccessKey = c.S3AccessKey
	}
	if c.S3SecretKey != "" {
		cfg.S3SecretKey = c.S3SecretKey
	}
	if c.S3Bucket != "" {
		cfg.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		cfg.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = c.S3BaseEndpoint
	}
	return nil
}
