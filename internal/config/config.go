// Package config loads TLQ's process-wide configuration from the
// environment once at startup. The result is read-only for the lifetime
// of the process, matching the "Shared resources" note in the spec: only
// Storage state is mutable; configuration is not.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = 1337
	defaultMaxMessageSize = 65536
	defaultLogLevel       = "info"
	defaultEnv            = "production"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true,
	"warn": true, "warning": true, "error": true,
}

// Config is the fully resolved, validated runtime configuration.
type Config struct {
	Port           uint16
	MaxMessageSize int
	LogLevel       string
	Env            string
}

// Load reads TLQ_PORT, TLQ_MAX_MESSAGE_SIZE, TLQ_LOG_LEVEL, and TLQ_ENV
// from the environment, falling back to defaults on any missing or
// malformed value. A local .env file is loaded first, if present; it
// never overrides variables already set in the process environment.
func Load() *Config {
	_ = godotenv.Load() // optional local dev convenience; ignored if absent

	return &Config{
		Port:           getEnvPort("TLQ_PORT", defaultPort),
		MaxMessageSize: getEnvSize("TLQ_MAX_MESSAGE_SIZE", defaultMaxMessageSize),
		LogLevel:       getEnvLogLevel("TLQ_LOG_LEVEL", defaultLogLevel),
		Env:            getEnv("TLQ_ENV", defaultEnv),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvPort parses a u16 port number; any invalid value falls back to def.
func getEnvPort(key string, def uint16) uint16 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return def
	}
	return uint16(n)
}

// getEnvSize parses a byte size: bare digits are bytes, a trailing K/k
// means kibibytes (e.g. "64K" = 65536). Zero and unparseable values fall
// back to def.
func getEnvSize(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}

	mult := 1
	if suffix := v[len(v)-1]; suffix == 'K' || suffix == 'k' {
		mult = 1024
		v = v[:len(v)-1]
	}

	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n * mult
}

// getEnvLogLevel normalizes to lowercase and falls back to def on an
// unrecognized value.
func getEnvLogLevel(key, def string) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" || !validLogLevels[v] {
		return def
	}
	return v
}
