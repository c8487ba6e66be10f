// Package config handles configuration for the recipe manager client,
// layering defaults, a JSON file, environment variables and command-line
// flags.
package config

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: base URL of the recipe manager API.
//   - DatabasePath: sqlite file holding the persisted session.
type Config struct {
	APIBaseURL   string `env:"RECIPES_API_URL" json:"api_base_url"`
	DatabasePath string `env:"RECIPES_DB_PATH" json:"database_path"`
}

// LoadDefaults populates c with the deployed defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://recipemanager-c0033f7f55ed.herokuapp.com/recipemanager"
	c.DatabasePath = "recipes.db"
}

// LoadConfig constructs a Config by applying defaults, then overlaying
// values from JSON (if present), the environment (including an optional
// .env file), and finally command-line flags. Later sources take precedence
// over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
