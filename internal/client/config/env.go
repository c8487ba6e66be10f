package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment,
// first merging an optional .env file from the working directory.
//
// Only variables that are actually set override anything; the struct tags
// carry no envDefault so absent variables leave earlier layers intact.
// Panics on a malformed environment (caller should recover if desired),
// matching the JSON layer's behavior.
func parseEnv(cfg *Config) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
