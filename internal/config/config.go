package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"dotstrings/textenc"
)

// Config holds the loader settings read from the environment.
type Config struct {
	// ReadEncoding is the encoding assumed for input files; Auto detects it.
	ReadEncoding textenc.Encoding
	// WriteEncoding is used for files that have no source encoding.
	WriteEncoding textenc.Encoding
	WorkerCount   int
	LogLevel      zerolog.Level
}

// Load reads an optional .env file and then the DOTSTRINGS_* variables,
// falling back to defaults for anything unset or invalid.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		ReadEncoding:  getEnvEncoding("DOTSTRINGS_ENCODING", textenc.Auto),
		WriteEncoding: getEnvEncoding("DOTSTRINGS_WRITE_ENCODING", textenc.UTF8),
		WorkerCount:   getEnvInt("DOTSTRINGS_WORKERS", 8),
		LogLevel:      getEnvLevel("DOTSTRINGS_LOG_LEVEL", zerolog.InfoLevel),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Warn().Str("key", key).Str("value", v).Msg("Ignoring invalid integer setting")
		return fallback
	}
	return n
}

func getEnvEncoding(key string, fallback textenc.Encoding) textenc.Encoding {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	enc, err := textenc.ParseEncoding(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Ignoring invalid encoding setting")
		return fallback
	}
	return enc
}

func getEnvLevel(key string, fallback zerolog.Level) zerolog.Level {
	v := strings.TrimSpace(getEnv(key, ""))
	if v == "" {
		return fallback
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(v))
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Ignoring invalid log level")
		return fallback
	}
	return lvl
}
