package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapi/pkg/config"
)

type sampleConfig struct {
	Name string `env:"SAMPLE_NAME" env-default:"default-name"`
	Port int    `env:"SAMPLE_PORT" env-default:"8080"`
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults without env file", func(t *testing.T) {
		cfg, err := config.Load[sampleConfig](ctx, "test", "")
		require.NoError(t, err)
		assert.Equal(t, "default-name", cfg.Name)
		assert.Equal(t, 8080, cfg.Port)
	})

	t.Run("missing env file is not an error", func(t *testing.T) {
		cfg, err := config.Load[sampleConfig](ctx, "test", filepath.Join(t.TempDir(), "absent.env"))
		require.NoError(t, err)
		assert.Equal(t, "default-name", cfg.Name)
	})

	t.Run("reads values from env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("SAMPLE_NAME=from-file\nSAMPLE_PORT=9000\n"), 0o600))
		t.Cleanup(func() {
			_ = os.Unsetenv("SAMPLE_NAME")
			_ = os.Unsetenv("SAMPLE_PORT")
		})

		cfg, err := config.Load[sampleConfig](ctx, "test", path)
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.Name)
		assert.Equal(t, 9000, cfg.Port)
	})

	t.Run("process environment wins over env file", func(t *testing.T) {
		t.Setenv("SAMPLE_PORT", "2222")
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("SAMPLE_NAME=from-file\nSAMPLE_PORT=1111\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("SAMPLE_NAME") })

		cfg, err := config.Load[sampleConfig](ctx, "test", path)
		require.NoError(t, err)
		assert.Equal(t, 2222, cfg.Port)
		assert.Equal(t, "from-file", cfg.Name, "keys absent from the environment still come from the file")
		assert.Equal(t, "2222", os.Getenv("SAMPLE_PORT"))
	})

	t.Run("malformed env file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("SAMPLE_NAME='unterminated\n"), 0o600))

		cfg, err := config.Load[sampleConfig](ctx, "test", path)
		require.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("invalid value fails", func(t *testing.T) {
		t.Setenv("SAMPLE_PORT", "not_a_number")

		cfg, err := config.Load[sampleConfig](ctx, "test", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load configuration")
		assert.Nil(t, cfg)
	})
}
