package depot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds global configuration for newly created worlds
var Config config = config{
	initialCapacity:    64,
	matchCache:         true,
	matchCacheCapacity: 128,
	logger:             zap.NewNop(),
}

type config struct {
	initialCapacity    int
	matchCache         bool
	matchCacheCapacity int
	logger             *zap.Logger
}

// SetInitialCapacity sets the number of entity slots a new ComponentStore reserves
func (c *config) SetInitialCapacity(n int) {
	c.initialCapacity = max(n, 1)
}

// SetMatchCache toggles reuse of compiled query match lists between builds
func (c *config) SetMatchCache(enabled bool) {
	c.matchCache = enabled
}

// SetMatchCacheCapacity bounds the number of cached match lists per world
func (c *config) SetMatchCacheCapacity(n int) {
	c.matchCacheCapacity = max(n, 0)
}

// SetLogger sets the logger new worlds write to. A nil logger disables logging.
func (c *config) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.logger = l
}

func (c *config) Logger() *zap.Logger {
	return c.logger
}

// Settings is the file form of Config.
type Settings struct {
	InitialCapacity int                `toml:"initial_capacity" yaml:"initial_capacity"`
	MatchCache      MatchCacheSettings `toml:"match_cache" yaml:"match_cache"`
	Logging         LoggingSettings    `toml:"logging" yaml:"logging"`
}

type MatchCacheSettings struct {
	Enabled  bool `toml:"enabled" yaml:"enabled"`
	Capacity int  `toml:"capacity" yaml:"capacity"`
}

type LoggingSettings struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

func defaultSettings() *Settings {
	return &Settings{
		InitialCapacity: 64,
		MatchCache: MatchCacheSettings{
			Enabled:  true,
			Capacity: 128,
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadSettings reads a .toml, .yaml or .yml settings file over the defaults.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	s := defaultSettings()
	switch filepath.Ext(path) {
	case ".toml":
		err = toml.Unmarshal(data, s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, s)
	default:
		return nil, UnsupportedSettingsError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// Apply copies the settings into Config. The logger is left untouched.
func (s *Settings) Apply() {
	Config.SetInitialCapacity(s.InitialCapacity)
	Config.SetMatchCache(s.MatchCache.Enabled)
	Config.SetMatchCacheCapacity(s.MatchCache.Capacity)
}
