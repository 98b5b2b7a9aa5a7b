package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CLASH_API_TOKEN", "")
	t.Setenv("PORT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	d, err := cfg.UpstreamTimeout()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, d)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("CLASH_API_TOKEN", "")
	t.Setenv("PORT", "")

	path := filepath.Join(t.TempDir(), "crdeck.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[upstream]
timeout = "3s"

[analysis]
building_min_trophies = 4000
check_light = false

[log]
level = "debug"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "3s", cfg.Upstream.Timeout)
	assert.Equal(t, 4000, cfg.Analysis.BuildingMinTrophies)
	assert.False(t, cfg.Analysis.CheckLight)
	assert.Equal(t, 4.0, cfg.Analysis.HeavyThreshold, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[upstream\n"), 0o600))
	_, err := Load(bad)
	assert.Error(t, err)

	dur := filepath.Join(dir, "dur.toml")
	require.NoError(t, os.WriteFile(dur, []byte("[upstream]\ntimeout = \"soon\"\n"), 0o600))
	_, err = Load(dur)
	assert.ErrorContains(t, err, "upstream.timeout")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("CLASH_API_TOKEN sets token", func(t *testing.T) {
		t.Setenv("CLASH_API_TOKEN", "secret")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "secret", cfg.Upstream.Token)
	})

	t.Run("empty env keeps file value", func(t *testing.T) {
		t.Setenv("CLASH_API_TOKEN", "")
		cfg := DefaultConfig()
		cfg.Upstream.Token = "from-file"
		cfg.applyEnvOverrides()
		assert.Equal(t, "from-file", cfg.Upstream.Token)
	})

	t.Run("PORT overrides server port", func(t *testing.T) {
		t.Setenv("PORT", "9999")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "9999", cfg.Server.Port)
	})
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv("CLASH_API_TOKEN", "")
	t.Setenv("PORT", "")

	path := filepath.Join(t.TempDir(), "out.toml")
	cfg := DefaultConfig()
	cfg.Analysis.BuildingMinTrophies = 3000
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate_RateLimitBurst(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit.Burst = 0
	assert.ErrorContains(t, cfg.Validate(), "rate_limit.burst")

	cfg.RateLimit.RequestsPerSecond = 0
	assert.NoError(t, cfg.Validate(), "burst is unused when limiting is off")

	cfg.RateLimit = RateLimitConfig{RequestsPerSecond: 2, Burst: 1}
	assert.NoError(t, cfg.Validate())
}
