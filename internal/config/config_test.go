package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, EpochOrdinal, cfg.License.EpochOrdinal)
	assert.Equal(t, KeyEnvPrefix, cfg.License.KeyEnvPrefix)
	assert.Empty(t, cfg.License.CorpusPath)
	assert.True(t, cfg.License.RateLimit.Enabled)
	assert.Equal(t, float64(DefaultValidationRateLimit), cfg.License.RateLimit.PerMin)
	assert.Equal(t, DefaultValidationBurst, cfg.License.RateLimit.Burst)
	assert.True(t, cfg.License.Cache.Enabled)
	assert.Equal(t, ValidationCacheMaxSize, cfg.License.Cache.MaxSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
}

func TestLoad_DefaultsWithoutEnvironment(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EpochOrdinal, cfg.License.EpochOrdinal)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHAREWARE_LOGGING_LEVEL", "debug")
	t.Setenv("SHAREWARE_LICENSE_EPOCH_ORDINAL", "24204")
	t.Setenv("SHAREWARE_LICENSE_RATE_LIMIT_BURST", "9")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 24204, cfg.License.EpochOrdinal)
	assert.Equal(t, 9, cfg.License.RateLimit.Burst)
}

func TestLoad_YAMLFileLayeredUnderEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
license:
  corpus_path: /tmp/words.txt
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("SHAREWARE_CONFIG", path)
	t.Setenv("SHAREWARE_LOGGING_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)
	// Environment wins over the file; the file wins over defaults.
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "/tmp/words.txt", cfg.License.CorpusPath)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad log level", key: "SHAREWARE_LOGGING_LEVEL", value: "verbose"},
		{name: "bad log output", key: "SHAREWARE_LOGGING_OUTPUT", value: "syslog"},
		{name: "negative burst", key: "SHAREWARE_LICENSE_RATE_LIMIT_BURST", value: "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingConfigFileErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHAREWARE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

// clearEnv unsets every SHAREWARE variable so tests control the whole input.
// t.Setenv first so the original value is restored after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(key, "SHAREWARE") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}
