package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowgraph/pkg/cache"
	ferrors "github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/theme"
)

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the optional config file. Flags override it.
//
//	base_path = "/runs/42"
//	theme = "dark"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
type Config struct {
	BasePath string       `toml:"base_path"`
	Theme    string       `toml:"theme"`
	Cycles   string       `toml:"cycles"`
	Cache    CacheConfig  `toml:"cache"`
	Server   ServerConfig `toml:"server"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // file (default), redis or none
	Dir      string `toml:"dir"`     // file backend, defaults to the XDG cache dir
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"` // redis key prefix
}

// ServerConfig configures flowgraph serve.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() Config {
	return Config{
		Theme:  "light",
		Cycles: layout.CycleBreak.String(),
		Cache: CacheConfig{
			Backend:  backendFile,
			RedisURL: "redis://localhost:6379/0",
			Prefix:   cache.DefaultRedisPrefix,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// loadConfig reads path over the defaults. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := ferrors.ValidateBasePath(c.BasePath); err != nil {
		return err
	}
	if _, err := theme.Parse(c.Theme); err != nil {
		return err
	}
	if _, err := layout.ParseCyclePolicy(c.Cycles); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return ferrors.New(ferrors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	return nil
}

// configPath returns ~/.config/flowgraph/config.toml, honoring XDG_CONFIG_HOME.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
