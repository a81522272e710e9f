package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TLQ_PORT", "TLQ_MAX_MESSAGE_SIZE", "TLQ_LOG_LEVEL", "TLQ_ENV"} {
		_ = os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.EqualValues(t, 1337, cfg.Port)
	assert.Equal(t, 65536, cfg.MaxMessageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Env)
}

func TestLoad_InvalidPortFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("TLQ_PORT", "not-a-port")

	cfg := Load()

	assert.EqualValues(t, 1337, cfg.Port)
}

func TestLoad_MaxMessageSizeAcceptsRawBytes(t *testing.T) {
	clearEnv(t)
	t.Setenv("TLQ_MAX_MESSAGE_SIZE", "1024")

	cfg := Load()

	assert.Equal(t, 1024, cfg.MaxMessageSize)
}

func TestLoad_MaxMessageSizeAcceptsKilobyteSuffix(t *testing.T) {
	clearEnv(t)
	t.Setenv("TLQ_MAX_MESSAGE_SIZE", "64K")

	cfg := Load()

	assert.Equal(t, 65536, cfg.MaxMessageSize)
}

func TestLoad_MaxMessageSizeZeroFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("TLQ_MAX_MESSAGE_SIZE", "0")

	cfg := Load()

	assert.Equal(t, 65536, cfg.MaxMessageSize)
}

func TestLoad_LogLevelCaseInsensitive(t *testing.T) {
	clearEnv(t)
	t.Setenv("TLQ_LOG_LEVEL", "DEBUG")

	cfg := Load()

	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_UnknownLogLevelFallsBackToInfo(t *testing.T) {
	clearEnv(t)
	t.Setenv("TLQ_LOG_LEVEL", "verbose")

	cfg := Load()

	assert.Equal(t, "info", cfg.LogLevel)
}
