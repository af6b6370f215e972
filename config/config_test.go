package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 32, cfg.MaxUploadMB)
	assert.Equal(t, 16, cfg.MaxDatasets)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_UPLOAD_MB", "4")
	t.Setenv("MAX_DATASETS", "2")
	t.Setenv("API_BEARER_TOKEN", "sekret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 4, cfg.MaxUploadMB)
	assert.Equal(t, 2, cfg.MaxDatasets)
	assert.Equal(t, "sekret", cfg.BearerToken)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}
