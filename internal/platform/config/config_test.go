package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sertec/pkg/platform/sentinel"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := fromLookup(env(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "America/Santiago", cfg.Location.String())
	assert.Equal(t, 500, cfg.CacheSize)
	assert.Empty(t, cfg.CodeTablesPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := fromLookup(env(map[string]string{
		"SERTEC_ADDR":        ":9090",
		"SERTEC_TIMEZONE":    "UTC",
		"SERTEC_CACHE_SIZE":  "64",
		"SERTEC_CODE_TABLES": " /etc/sertec/codes.yaml ",
		"SERTEC_LOG_LEVEL":   "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, "/etc/sertec/codes.yaml", cfg.CodeTablesPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromLookupRejectsBadValues(t *testing.T) {
	for name, vars := range map[string]map[string]string{
		"timezone":   {"SERTEC_TIMEZONE": "Mars/Olympus"},
		"cache size": {"SERTEC_CACHE_SIZE": "lots"},
		"zero cache": {"SERTEC_CACHE_SIZE": "0"},
		"log level":  {"SERTEC_LOG_LEVEL": "chatty"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fromLookup(env(vars))
			assert.ErrorIs(t, err, sentinel.ErrInvalidConfig)
		})
	}
}
