package config

import (
	"time"

	"github.com/aureapp/aure/internal/common"
)

// Config holds runtime settings for the Aure CLI.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP API.
//   - DBFileName: path of the local sqlite mirror.
//   - SessionValidationInterval: how often the client re-checks that its
//     session is still live on the server.
type Config struct {
	ServerURL                 string
	DBFileName                string
	SessionValidationInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DBFileName = "aure.db"
	c.SessionValidationInterval = common.SessionValidationIntervalSeconds * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
