package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultRecommenderPath, cfg.RecommenderPath)
	assert.Equal(t, DefaultRecommenderTimeout, cfg.RecommenderTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.LogFormat)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATA_DIR", "/var/lib/filmdesk")
	t.Setenv("RECOMMENDER_PATH", "/usr/local/bin/recommender")
	t.Setenv("RECOMMENDER_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/filmdesk", cfg.DataDir)
	assert.Equal(t, "/usr/local/bin/recommender", cfg.RecommenderPath)
	assert.Equal(t, 5*time.Second, cfg.RecommenderTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{}
	cfg.UpdateFromFlags(true, false, true)

	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Quiet)
	assert.True(t, cfg.NoColor)
}
