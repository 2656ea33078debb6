package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://greensnapbackend.onrender.com/api", c.APIBaseURL)
	assert.Equal(t, defaultDataDir(), c.DataDir)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://greensnapbackend.onrender.com/api", cfg.APIBaseURL)
	assert.Equal(t, defaultDataDir(), cfg.DataDir)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
