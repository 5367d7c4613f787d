// Package config loads neonboard settings from defaults, an optional YAML
// file and NEONBOARD_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. NEONBOARD_DB_PATH or
// NEONBOARD_LOG_LEVEL.
const EnvPrefix = "NEONBOARD"

// Config holds every runtime setting.
type Config struct {
	DBPath      string        `mapstructure:"db_path"`
	SaveRetries int           `mapstructure:"save_retries"`
	Log         LogConfig     `mapstructure:"log"`
	Cache       CacheConfig   `mapstructure:"cache"`
	Redis       RedisConfig   `mapstructure:"redis"`
	Tracing     TracingConfig `mapstructure:"tracing"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	UseCases bool   `mapstructure:"use_cases"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RedisConfig enables event fan-out when Addr is set.
type RedisConfig struct {
	Addr    string `mapstructure:"addr"`
	Channel string `mapstructure:"channel"`
}

type TracingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Output  string `mapstructure:"output"`
}

// DefaultDir returns ~/.neonboard, falling back to the working directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".neonboard"
	}
	return filepath.Join(home, ".neonboard")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", filepath.Join(DefaultDir(), "neonboard.db"))
	v.SetDefault("save_retries", 3)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.use_cases", false)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.channel", "neonboard.events")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.output", "")
}

// Load reads configuration. path overrides the file location; when empty,
// $NEONBOARD_CONFIG and then ~/.neonboard/config.yaml are tried. A missing
// default file is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	return load(path, nil)
}

// Flags declares the global flags that override configuration. The root
// command registers them for help output; FromArgs reads their values.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("neonboard", pflag.ContinueOnError)
	fs.String("config", "", "Config file (default ~/.neonboard/config.yaml)")
	fs.String("db", "", "Database path, overrides db_path")
	return fs
}

// FromArgs loads configuration honoring --config and --db in args. Every
// other argument is left for the command tree.
func FromArgs(args []string) (Config, error) {
	fs := Flags()
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return Config{}, fmt.Errorf("parsing flags: %w", err)
	}
	path, _ := fs.GetString("config")
	return load(path, fs)
}

func load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)
	if fs != nil {
		if err := v.BindPFlag("db_path", fs.Lookup("db")); err != nil {
			return Config{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
			path = env
			explicit = true
		}
	}
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the rest of the program cannot honor.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config: db_path cannot be empty")
	}
	if c.SaveRetries < 1 {
		return fmt.Errorf("config: save_retries must be at least 1, got %d", c.SaveRetries)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("config: cache.ttl cannot be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
