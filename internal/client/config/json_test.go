package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from config flag", func(t *testing.T) {
		path := writeTempJSON(t, "cfg.json", map[string]any{
			"api_base_url":  "http://json.example/api",
			"database_path": "json.db",
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "http://json.example/api", cfg.APIBaseURL)
		assert.Equal(t, "json.db", cfg.DatabasePath)
	})

	t.Run("absent keys leave earlier layers intact", func(t *testing.T) {
		path := writeTempJSON(t, "partial.json", map[string]any{
			"api_base_url": "http://json.example/api",
		})
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "http://json.example/api", cfg.APIBaseURL)
		assert.Equal(t, "recipes.db", cfg.DatabasePath)
	})

	t.Run("no flags means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{APIBaseURL: "http://defaults.example", DatabasePath: "keep.db"}
		parseJson(cfg)

		assert.Equal(t, "http://defaults.example", cfg.APIBaseURL)
		assert.Equal(t, "keep.db", cfg.DatabasePath)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
