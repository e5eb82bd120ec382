package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // America/Santiago must resolve on hosts without zoneinfo

	"sertec/pkg/platform/sentinel"
)

const (
	defaultAddr      = ":8080"
	defaultTimezone  = "America/Santiago"
	defaultCacheSize = 500
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Location        *time.Location
	CacheSize       int
	CodeTablesPath  string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) (Server, error) {
	cfg := Server{
		Addr:            defaultAddr,
		CacheSize:       defaultCacheSize,
		CodeTablesPath:  strings.TrimSpace(getenv("SERTEC_CODE_TABLES")),
		LogLevel:        slog.LevelInfo,
		ShutdownTimeout: 10 * time.Second,
	}
	if addr := getenv("SERTEC_ADDR"); addr != "" {
		cfg.Addr = addr
	}

	tz := getenv("SERTEC_TIMEZONE")
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Server{}, fmt.Errorf("%w: SERTEC_TIMEZONE %q: %v", sentinel.ErrInvalidConfig, tz, err)
	}
	cfg.Location = loc

	if raw := getenv("SERTEC_CACHE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return Server{}, fmt.Errorf("%w: SERTEC_CACHE_SIZE must be a positive integer, got %q", sentinel.ErrInvalidConfig, raw)
		}
		cfg.CacheSize = size
	}

	if raw := getenv("SERTEC_LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return Server{}, fmt.Errorf("%w: SERTEC_LOG_LEVEL %q", sentinel.ErrInvalidConfig, raw)
		}
	}
	return cfg, nil
}
