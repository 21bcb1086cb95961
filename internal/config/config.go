// Package config resolves ferret's file locations and user settings.
//
// Settings are layered: XDG base directory defaults, then the optional
// YAML file $XDG_CONFIG_HOME/ferret/config.yaml, then FERRET_* environment
// variables. The result is validated before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/ferret/internal/security"
)

// AppName is the directory name used under each XDG base directory.
const AppName = "ferret"

// Environment variables that override file and default settings.
const (
	EnvConfigFile        = "FERRET_CONFIG"
	EnvSchemesDir        = "FERRET_SCHEMES_DIR"
	EnvStateFile         = "FERRET_STATE_FILE"
	EnvCacheDir          = "FERRET_CACHE_DIR"
	EnvWallpaperPathFile = "FERRET_WALLPAPER_PATH_FILE"
	EnvNotify            = "FERRET_NOTIFY"
	EnvSmart             = "FERRET_SMART"
)

// Paths holds the per-application XDG directories.
type Paths struct {
	ConfigDir string
	DataDir   string
	StateDir  string
	CacheDir  string
}

// DefaultSelection is the scheme chosen on first run.
type DefaultSelection struct {
	Name    string `yaml:"name" validate:"required,pathcomponent"`
	Flavour string `yaml:"flavour" validate:"required,pathcomponent"`
	Mode    string `yaml:"mode" validate:"required,pathcomponent"`
	Variant string `yaml:"variant"`
}

// Config is the resolved configuration.
type Config struct {
	// SchemesDir holds <name>/<flavour>/<mode>.txt palette files.
	SchemesDir string `yaml:"schemes_dir" validate:"required"`

	// StateFile is the persisted scheme record.
	StateFile string `yaml:"state_file" validate:"required"`

	// CacheDir holds cached wallpaper seeds.
	CacheDir string `yaml:"cache_dir" validate:"required"`

	// WallpaperPathFile contains the path of the current wallpaper.
	WallpaperPathFile string `yaml:"wallpaper_path_file" validate:"required"`

	// Notify sends a desktop notification when a scheme change is rejected.
	Notify bool `yaml:"notify"`

	// Smart picks the dynamic mode and variant from the wallpaper itself.
	Smart bool `yaml:"smart"`

	Default DefaultSelection `yaml:"default"`
}

// SeedCacheDir returns where extracted wallpaper seeds are cached.
func (c *Config) SeedCacheDir() string {
	return filepath.Join(c.CacheDir, "schemes")
}

// ResolvePaths returns the ferret directories under the XDG base
// directories, falling back to the usual locations under $HOME.
func ResolvePaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil && (os.Getenv("XDG_CONFIG_HOME") == "" || os.Getenv("XDG_DATA_HOME") == "" ||
		os.Getenv("XDG_STATE_HOME") == "" || os.Getenv("XDG_CACHE_HOME") == "") {
		return Paths{}, fmt.Errorf("failed to determine home directory: %w", err)
	}

	base := func(env string, fallback ...string) string {
		if dir := os.Getenv(env); dir != "" && filepath.IsAbs(dir) {
			return filepath.Join(dir, AppName)
		}
		return filepath.Join(append(append([]string{home}, fallback...), AppName)...)
	}

	return Paths{
		ConfigDir: base("XDG_CONFIG_HOME", ".config"),
		DataDir:   base("XDG_DATA_HOME", ".local", "share"),
		StateDir:  base("XDG_STATE_HOME", ".local", "state"),
		CacheDir:  base("XDG_CACHE_HOME", ".cache"),
	}, nil
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults(p Paths) *Config {
	return &Config{
		SchemesDir:        filepath.Join(p.DataDir, "schemes"),
		StateFile:         filepath.Join(p.StateDir, "scheme.json"),
		CacheDir:          p.CacheDir,
		WallpaperPathFile: filepath.Join(p.StateDir, "wallpaper", "path.txt"),
		Smart:             true,
		Default: DefaultSelection{
			Name:    "catppuccin",
			Flavour: "mocha",
			Mode:    "dark",
			Variant: "tonalspot",
		},
	}
}

// Load resolves the configuration. An empty path means the default config
// file location (or $FERRET_CONFIG); a missing file at the default location
// is not an error, a missing file that was asked for explicitly is.
func Load(path string) (*Config, error) {
	paths, err := ResolvePaths()
	if err != nil {
		return nil, err
	}
	cfg := Defaults(paths)

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvConfigFile); env != "" {
			path, explicit = env, true
		} else {
			path = filepath.Join(paths.ConfigDir, "config.yaml")
		}
	}

	if err := cfg.mergeFile(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := security.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path onto c. Keys absent from the
// file keep their current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- config path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.SchemesDir = expandHome(c.SchemesDir)
	c.StateFile = expandHome(c.StateFile)
	c.CacheDir = expandHome(c.CacheDir)
	c.WallpaperPathFile = expandHome(c.WallpaperPathFile)
	return nil
}

func (c *Config) applyEnv() error {
	for env, field := range map[string]*string{
		EnvSchemesDir:        &c.SchemesDir,
		EnvStateFile:         &c.StateFile,
		EnvCacheDir:          &c.CacheDir,
		EnvWallpaperPathFile: &c.WallpaperPathFile,
	} {
		if v := os.Getenv(env); v != "" {
			*field = expandHome(v)
		}
	}

	for env, field := range map[string]*bool{
		EnvNotify: &c.Notify,
		EnvSmart:  &c.Smart,
	} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", env, v, err)
		}
		*field = b
	}
	return nil
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
