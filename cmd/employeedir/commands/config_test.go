package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"employeedir/internal/dummyapi"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, defaultConfig, cfg)
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "employeedir.json5"), []byte(`{
		base_url: "http://localhost:9000",
		rate_limit: { per_second: 0.5, burst: 2 },
	}`), 0600)
	require.NoError(t, err)
	chdir(t, dir)

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000", cfg.BaseUrl)
	require.Equal(t, defaultConfig.TimeoutSeconds, cfg.TimeoutSeconds)
	require.Equal(t, defaultConfig.ListenPort, cfg.ListenPort)

	opts := cfg.clientOptions()
	require.Equal(t, dummyapi.ClientOptions{
		BaseUrl:   "http://localhost:9000",
		Timeout:   30 * time.Second,
		RateLimit: rate.Limit(0.5),
		Burst:     2,
	}, opts)
}
