package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl    string `json:"base_url"`
	RetryCount int    `json:"retry_count"`
}

func TestReadConfigMergesLocalOverride(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(
		filepath.Join(dir, "config.json5"),
		[]byte(`{ base_url: "https://example.com", retry_count: 3 }`),
		0o644,
	)
	require.NoError(t, err)
	err = os.WriteFile(
		filepath.Join(dir, "config.local.json5"),
		[]byte(`{ retry_count: 5 }`),
		0o644,
	)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.BaseUrl)
	require.Equal(t, 5, cfg.RetryCount)
}

func TestReadConfigNotExist(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	cfg := testConfig{BaseUrl: "https://example.com", RetryCount: 3}

	t.Setenv("ECOURTS_TEST_BASE_URL", "https://override.example.com")
	t.Setenv("ECOURTS_TEST_RETRY_COUNT", "7")

	EnvString(&cfg.BaseUrl, "ECOURTS_TEST_BASE_URL")
	EnvInt(&cfg.RetryCount, "ECOURTS_TEST_RETRY_COUNT")

	require.Equal(t, "https://override.example.com", cfg.BaseUrl)
	require.Equal(t, 7, cfg.RetryCount)

	// unset vars must not clobber existing values
	EnvString(&cfg.BaseUrl, "ECOURTS_TEST_UNSET")
	require.Equal(t, "https://override.example.com", cfg.BaseUrl)
}
