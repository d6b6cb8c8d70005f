// Package config loads tincture's settings from defaults, a YAML config
// file, a .env file, TINCTURE_ environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tincture/internal/engine"
	"github.com/jmylchreest/tincture/internal/token"
)

// EnvPrefix prefixes every environment variable tincture reads.
const EnvPrefix = "TINCTURE"

// Keys.
const (
	KeyLogLevel        = "log_level"
	KeyEngine          = "engine"
	KeyMaxDecodedBytes = "max_decoded_bytes"
)

// flagNames maps configuration keys to the command-line flags that set them.
var flagNames = map[string]string{
	KeyLogLevel:        "log-level",
	KeyEngine:          "engine",
	KeyMaxDecodedBytes: "max-decoded-bytes",
}

// Config holds resolved settings.
type Config struct {
	LogLevel        string `mapstructure:"log_level"`
	Engine          string `mapstructure:"engine"`
	MaxDecodedBytes int64  `mapstructure:"max_decoded_bytes"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:        "info",
		Engine:          string(engine.KindText),
		MaxDecodedBytes: token.DefaultMaxDecodedBytes,
	}
}

// Loader builds a Config.
type Loader struct {
	configFile string
	dotEnv     string
	flags      *pflag.FlagSet
}

// NewLoader creates a Loader that reads .env from the working directory
// and the config file from the user config directory.
func NewLoader() *Loader {
	return &Loader{dotEnv: ".env"}
}

// WithConfigFile reads path instead of the default config file. The file
// must exist.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithDotEnv reads path instead of ./.env. An empty path disables it.
func (l *Loader) WithDotEnv(path string) *Loader {
	l.dotEnv = path
	return l
}

// WithFlags binds the flags in fs that correspond to configuration keys.
func (l *Loader) WithFlags(fs *pflag.FlagSet) *Loader {
	l.flags = fs
	return l
}

// Load resolves the configuration.
func (l *Loader) Load() (Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyEngine, def.Engine)
	v.SetDefault(KeyMaxDecodedBytes, def.MaxDecodedBytes)

	file, err := l.readConfigFile(v)
	if err != nil {
		return Config{}, err
	}
	if err := l.mergeDotEnv(v); err != nil {
		return Config{}, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if l.flags != nil {
		for key, name := range flagNames {
			if f := l.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.File = file
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (l *Loader) readConfigFile(v *viper.Viper) (string, error) {
	path := l.configFile
	required := path != ""
	if !required {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", nil
		}
		path = filepath.Join(dir, "tincture", "config.yaml")
	}

	if _, err := os.Stat(path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return path, nil
}

// mergeDotEnv layers TINCTURE_ entries of the .env file over the config
// file. Real environment variables still take precedence.
func (l *Loader) mergeDotEnv(v *viper.Viper) error {
	if l.dotEnv == "" {
		return nil
	}
	data, err := os.ReadFile(l.dotEnv)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read .env file %s: %w", l.dotEnv, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", l.dotEnv, err)
	}

	settings := make(map[string]any)
	for name, val := range envMap {
		key, ok := strings.CutPrefix(name, EnvPrefix+"_")
		if !ok {
			continue
		}
		settings[strings.ToLower(key)] = val
	}
	if len(settings) == 0 {
		return nil
	}
	return v.MergeConfigMap(settings)
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("invalid %s %q", KeyLogLevel, c.LogLevel)
	}
	if _, err := engine.ParseKind(c.Engine); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyEngine, err)
	}
	if c.MaxDecodedBytes <= 0 {
		return fmt.Errorf("invalid %s %d: must be positive", KeyMaxDecodedBytes, c.MaxDecodedBytes)
	}
	return nil
}
