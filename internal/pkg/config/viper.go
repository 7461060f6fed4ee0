package config

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// Options controls where NewViper looks for configuration.
type Options struct {
	// File is an optional config file; a missing file is not an error.
	File string
	// DotEnv lists .env files loaded into the process environment before
	// reading. Variables already present in the environment win.
	DotEnv []string
	// Defaults are applied below every other source.
	Defaults map[string]any
}

// NewViper builds a Config from defaults, an optional config file and the
// process environment, in increasing order of precedence.
//
// When a config file is found it is watched and reloaded on change.
func NewViper(opts Options) (*Viper, error) {
	for _, file := range opts.DotEnv {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v := newBase(opts.Defaults)

	if opts.File == "" {
		return &Viper{v: v}, nil
	}
	if _, err := os.Stat(opts.File); errors.Is(err, fs.ErrNotExist) {
		slog.Info("config file not found, using environment only", "path", opts.File)
		return &Viper{v: v}, nil
	}

	filename := path.Base(opts.File)
	v.AddConfigPath(path.Dir(opts.File))
	v.SetConfigName(filename[:len(filename)-len(path.Ext(filename))])

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", opts.File, "err", err)
			return
		}
		slog.Info("config success reloaded", "path", opts.File)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory and returns a Viper-backed Config.
// configType should be a format supported by Viper (e.g. "yaml", "json", "toml").
// The environment still overrides values read from data.
func NewViperFromBytes(configType string, data []byte, defaults map[string]any) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := newBase(defaults)
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func newBase(defaults map[string]any) *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return v
}

// GetInt returns the value for key as int.
func (vc *Viper) GetInt(key string) int {
	return vc.v.GetInt(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetFloat64 returns the value for key as float64.
func (vc *Viper) GetFloat64(key string) float64 {
	return vc.v.GetFloat64(key)
}

// GetSecond returns the value for key as seconds.
func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetArray returns the value for key split by commas, without blank entries.
func (vc *Viper) GetArray(key string) []string {
	parts := strings.Split(vc.v.GetString(key), ",")
	return lo.Compact(lo.Map(parts, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
