package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"dotstrings/textenc"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"DOTSTRINGS_ENCODING", "DOTSTRINGS_WRITE_ENCODING", "DOTSTRINGS_WORKERS", "DOTSTRINGS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, textenc.Auto, cfg.ReadEncoding)
	assert.Equal(t, textenc.UTF8, cfg.WriteEncoding)
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOTSTRINGS_ENCODING", "UTF-16LE")
	t.Setenv("DOTSTRINGS_WRITE_ENCODING", "utf-8-bom")
	t.Setenv("DOTSTRINGS_WORKERS", "2")
	t.Setenv("DOTSTRINGS_LOG_LEVEL", "Debug")

	cfg := Load()
	assert.Equal(t, textenc.UTF16LE, cfg.ReadEncoding)
	assert.Equal(t, textenc.UTF8BOM, cfg.WriteEncoding)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOTSTRINGS_ENCODING", "latin1")
	t.Setenv("DOTSTRINGS_WRITE_ENCODING", "")
	t.Setenv("DOTSTRINGS_WORKERS", "-4")
	t.Setenv("DOTSTRINGS_LOG_LEVEL", "loud")

	cfg := Load()
	assert.Equal(t, textenc.Auto, cfg.ReadEncoding)
	assert.Equal(t, textenc.UTF8, cfg.WriteEncoding)
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}
