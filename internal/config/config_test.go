package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://desk.example.com/")
	t.Setenv("UPSTREAM_ACCOUNT_ID", "acct-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://desk.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, 100, cfg.Upstream.PageLimit)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "*", cfg.CORS.AllowOrigins)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadRequiresUpstream(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "")
	t.Setenv("UPSTREAM_ACCOUNT_ID", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://desk.example.com")
	t.Setenv("UPSTREAM_ACCOUNT_ID", "acct-1")
	t.Setenv("UPSTREAM_PAGE_LIMIT", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Upstream.PageLimit)
}
