package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/recipemanager/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling, so that an
// absent key can be told apart from an explicit empty value.
type jsonConfig struct {
	APIBaseURL   *string `json:"api_base_url"`
	DatabasePath *string `json:"database_path"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flag via
// flagx.JsonConfigFlags(); when neither is given no JSON is loaded.
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
}
