package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = "https://task-manager-server-eight-ashy.vercel.app"
	DefaultServeAddr = ":8080"
	envPrefix        = "LAZYBOARD"
)

type Config struct {
	BaseURL     string      `yaml:"base_url" mapstructure:"base_url"`
	Token       string      `yaml:"token,omitempty" mapstructure:"token"`
	RequireAuth bool        `yaml:"require_auth" mapstructure:"require_auth"`
	RegisterURL string      `yaml:"register_url,omitempty" mapstructure:"register_url"`
	LogPath     string      `yaml:"log_path,omitempty" mapstructure:"log_path"`
	Development bool        `yaml:"development" mapstructure:"development"`
	Serve       ServeConfig `yaml:"serve" mapstructure:"serve"`
}

// ServeConfig configures the local sandbox API server.
type ServeConfig struct {
	Addr   string `yaml:"addr" mapstructure:"addr"`
	DBPath string `yaml:"db_path,omitempty" mapstructure:"db_path"`
	Token  string `yaml:"token,omitempty" mapstructure:"token"`
}

func Default() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Serve:   ServeConfig{Addr: DefaultServeAddr},
	}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lazyboard", "config.yaml"), nil
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// Load reads the config file at path, then applies LAZYBOARD_* environment
// overrides (LAZYBOARD_BASE_URL, LAZYBOARD_SERVE_ADDR, ...). A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	defaults := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("token", "")
	v.SetDefault("require_auth", false)
	v.SetDefault("register_url", "")
	v.SetDefault("log_path", "")
	v.SetDefault("development", false)
	v.SetDefault("serve.addr", defaults.Serve.Addr)
	v.SetDefault("serve.db_path", "")
	v.SetDefault("serve.token", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML. Concurrent writers are serialized with a lock file
// next to the config.
func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock config: %s is busy", path)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
