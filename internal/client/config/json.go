package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/aureapp/aure/internal/flagx"
	"github.com/aureapp/aure/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "300s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerURL                 string         `json:"server_url"`
	DBFileName                string         `json:"db_file_name"`
	SessionValidationInterval timex.Duration `json:"session_validation_interval"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only non-zero JSON fields override the current Config values. Panics on
// read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DBFileName != "" {
		cfg.DBFileName = jc.DBFileName
	}
	if jc.SessionValidationInterval.Duration != 0 {
		cfg.SessionValidationInterval = time.Duration(jc.SessionValidationInterval.Duration)
	}
}
