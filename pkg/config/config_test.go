package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"STRATCOL_REFERENCE_DIR", "STRATCOL_REDIS_ADDR", "STRATCOL_MONGO_URI", "STRATCOL_ADDR"} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, layout.ModeThickness, cfg.Layout.Mode)
	assert.True(t, cfg.Layout.ShowGaps)
	assert.True(t, cfg.Layout.Environment)
	assert.Equal(t, chrono.Levels, cfg.Layout.Levels)
	assert.Equal(t, CacheFile, cfg.Cache.Backend)
	assert.Equal(t, StoreFile, cfg.Store.Backend)
	assert.Nil(t, cfg.Layout.Window)
}

func TestLoadMissingDefaultPath(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Layout, cfg.Layout)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "Load() = %v", err)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[layout]
mode = "chronology"
height = 600
show_gaps = false
levels = ["epoch", "period"]

[layout.window]
from = 0
to = 100

[cache]
backend = "none"
ttl = "1h"

[server]
addr = ":9090"
read_timeout = "5s"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, layout.ModeChronology, cfg.Layout.Mode)
	assert.Equal(t, 600.0, cfg.Layout.Height)
	assert.False(t, cfg.Layout.ShowGaps)
	assert.Equal(t, []chrono.Level{chrono.LevelEpoch, chrono.LevelPeriod}, cfg.Layout.Levels)
	require.NotNil(t, cfg.Layout.Window)
	assert.Equal(t, 100.0, cfg.Layout.Window.To)
	assert.True(t, cfg.Layout.Environment, "unset keys keep defaults")
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Duration)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout.Duration)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"unknown key", "[layout]\ncolour = \"red\"\n", errors.ErrCodeInvalidFormat},
		{"bad mode", "[layout]\nmode = \"sideways\"\n", errors.ErrCodeInvalidFormat},
		{"bad level", "[layout]\nlevels = [\"eon\"]\n", errors.ErrCodeInvalidFormat},
		{"bad duration", "[server]\nread_timeout = \"soon\"\n", errors.ErrCodeInvalidFormat},
		{"syntax", "[layout\n", errors.ErrCodeInvalidFormat},
		{"zero height", "[layout]\nheight = 0\n", errors.ErrCodeInvalidInput},
		{"inverted window", "[layout.window]\nfrom = 10\nto = 5\n", errors.ErrCodeInvalidRange},
		{"unknown cache", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidInput},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n", errors.ErrCodeInvalidInput},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "Load() = %v", err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("redis addr selects redis", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STRATCOL_REDIS_ADDR", "cache:6379")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, CacheRedis, cfg.Cache.Backend)
		assert.Equal(t, "cache:6379", cfg.Cache.RedisAddr)
	})

	t.Run("mongo uri selects mongo", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STRATCOL_MONGO_URI", "mongodb://db:27017")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, StoreMongo, cfg.Store.Backend)
		assert.Equal(t, "mongodb://db:27017", cfg.Store.MongoURI)
	})

	t.Run("env beats file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STRATCOL_ADDR", ":7000")
		t.Setenv("STRATCOL_REFERENCE_DIR", "/srv/ics")
		cfg, err := Load(writeConfig(t, "[server]\naddr = \":9090\"\n"))
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.Server.Addr)
		assert.Equal(t, "/srv/ics", cfg.Reference.Dir)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	cfg := Default()
	cfg.Layout.Mode = layout.ModeFormationTop
	cfg.Layout.Levels = []chrono.Level{chrono.LevelAge}
	cfg.Cache.TTL.Duration = 90 * time.Minute

	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestReferenceTable(t *testing.T) {
	cfg := Default()
	tbl, err := cfg.ReferenceTable()
	require.NoError(t, err)
	assert.Same(t, chrono.Default(), tbl)

	cfg.Reference.Dir = t.TempDir()
	tbl, err = cfg.ReferenceTable()
	require.NoError(t, err)
	assert.True(t, tbl.IsEmpty(), "a directory without files yields an empty table")
}

func TestLayoutOptions(t *testing.T) {
	cfg := Default()
	cfg.Layout.Levels = nil
	cfg.Layout.Environment = false
	m, err := layout.Compute(nil, nil, 100, cfg.LayoutOptions()...)
	require.NoError(t, err)
	assert.Equal(t, []layout.ColumnKind{layout.ColumnLithology}, m.Columns)
}
