package util

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetConfigDefaults()

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "./data/gpx_files", cfg.TracksDir)
	assert.Equal(t, "./data/output/matches.json", cfg.IndexPath)
	assert.Equal(t, 0.0, cfg.ToleranceMeters)
	assert.Equal(t, OnUnresolvedAbort, cfg.OnUnresolved)
	assert.Equal(t, 6060, cfg.APIPort)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("GPXMATCH_TOLERANCE_METERS", "2.5")
	t.Setenv("GPXMATCH_ON_UNRESOLVED", "skip")
	t.Chdir(t.TempDir())

	require.NoError(t, ReadConfig())
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.ToleranceMeters)
	assert.Equal(t, OnUnresolvedSkip, cfg.OnUnresolved)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		TracksDir:    "tracks",
		IndexPath:    "matches.json",
		BuildWorkers: 1,
		OnUnresolved: OnUnresolvedAbort,
		APIPort:      8080,
		APITimeout:   "10s",
		LogLevel:     "info",
	}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "negative tolerance", mutate: func(c *Config) { c.ToleranceMeters = -1 }},
		{name: "no workers", mutate: func(c *Config) { c.BuildWorkers = 0 }},
		{name: "unknown policy", mutate: func(c *Config) { c.OnUnresolved = "retry" }},
		{name: "empty tracks dir", mutate: func(c *Config) { c.TracksDir = "" }},
		{name: "port out of range", mutate: func(c *Config) { c.APIPort = 70000 }},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBadParamInput))
		})
	}
}

func TestUniqueSorted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, UniqueSorted([]string{"c", "a", "b", "a", "c"}))
	assert.Empty(t, UniqueSorted(nil))
}
