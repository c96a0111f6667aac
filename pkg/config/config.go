// Package config loads stratcol settings from a TOML file with environment
// overrides.
//
// Lookup order: built-in defaults, then the file, then environment
// variables:
//
//	STRATCOL_REFERENCE_DIR  reference.dir
//	STRATCOL_REDIS_ADDR     cache.redis_addr (and selects the redis backend)
//	STRATCOL_MONGO_URI      store.mongo_uri (and selects the mongo backend)
//	STRATCOL_ADDR           server.addr
//
// A minimal file:
//
//	[layout]
//	mode = "chronology"
//	levels = ["period", "epoch"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

const appName = "stratcol"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config is the full settings tree.
type Config struct {
	Reference ReferenceConfig `toml:"reference"`
	Layout    LayoutConfig    `toml:"layout"`
	Render    RenderConfig    `toml:"render"`
	Cache     CacheConfig     `toml:"cache"`
	Server    ServerConfig    `toml:"server"`
	Store     StoreConfig     `toml:"store"`
}

// ReferenceConfig locates the chronostratigraphic tables. An empty Dir
// selects the built-in ICS table.
type ReferenceConfig struct {
	Dir string `toml:"dir"`
}

// LayoutConfig holds the default layout options.
type LayoutConfig struct {
	Mode          layout.Mode      `toml:"mode"`
	Height        float64          `toml:"height"`
	ShowGaps      bool             `toml:"show_gaps"`
	Levels        []chrono.Level   `toml:"levels"`
	Environment   bool             `toml:"environment"`
	MarkerSpacing float64          `toml:"marker_spacing"`
	MinHeight     float64          `toml:"min_height"`
	Window        *strat.AgeWindow `toml:"window"`
}

// RenderConfig holds output defaults.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
}

// CacheConfig selects and configures the layout cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

// StoreConfig selects and configures the column store.
type StoreConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration struct{ time.Duration }

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			Mode:          layout.ModeThickness,
			Height:        800,
			ShowGaps:      true,
			Levels:        append([]chrono.Level(nil), chrono.Levels...),
			Environment:   true,
			MarkerSpacing: layout.DefaultMarkerSpacing,
			MinHeight:     layout.MinBlockHeight,
		},
		Render: RenderConfig{
			Formats: []string{"svg"},
			Scale:   2.0,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Prefix:  appName + ":",
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
			MaxBodyBytes:    4 << 20,
		},
		Store: StoreConfig{
			Backend:  StoreFile,
			Database: appName,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/stratcol/config.toml, falling back
// to ~/.config.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// Load reads path over the defaults and applies environment overrides. An
// empty path reads DefaultPath and tolerates its absence; an explicit path
// must exist. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		switch {
		case os.IsNotExist(err) && !explicit:
		case os.IsNotExist(err):
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		case err != nil:
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				return nil, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("STRATCOL_REFERENCE_DIR"); dir != "" {
		c.Reference.Dir = dir
	}
	if addr := os.Getenv("STRATCOL_REDIS_ADDR"); addr != "" {
		c.Cache.RedisAddr = addr
		c.Cache.Backend = CacheRedis
	}
	if uri := os.Getenv("STRATCOL_MONGO_URI"); uri != "" {
		c.Store.MongoURI = uri
		c.Store.Backend = StoreMongo
	}
	if addr := os.Getenv("STRATCOL_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
}

// Validate checks value ranges and backend names.
func (c *Config) Validate() error {
	switch {
	case c.Layout.Height <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "layout.height must be positive")
	case c.Layout.MarkerSpacing < 0 || c.Layout.MinHeight < 0:
		return errors.New(errors.ErrCodeInvalidInput, "layout spacing values must be non-negative")
	case c.Render.Scale <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "render.scale must be positive")
	}
	if c.Layout.Window != nil {
		if err := c.Layout.Window.Validate(); err != nil {
			return err
		}
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreMemory, StoreFile:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// LayoutOptions converts the layout section into engine options.
func (c *Config) LayoutOptions() []layout.Option {
	l := c.Layout
	opts := []layout.Option{
		layout.WithMode(l.Mode),
		layout.WithGaps(l.ShowGaps),
		layout.WithLevels(l.Levels...),
		layout.WithEnvironment(l.Environment),
		layout.WithMarkerSpacing(l.MarkerSpacing),
		layout.WithMinHeight(l.MinHeight),
	}
	if l.Window != nil {
		opts = append(opts, layout.WithWindow(*l.Window))
	}
	return opts
}

// ReferenceTable loads the configured table, or the built-in one.
func (c *Config) ReferenceTable() (*chrono.Table, error) {
	if c.Reference.Dir == "" {
		return chrono.Default(), nil
	}
	return chrono.LoadDir(c.Reference.Dir)
}
