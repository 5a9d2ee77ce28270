package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Viper is a Config implementation backed by github.com/spf13/viper.
//
// The configuration file is watched for changes and reloaded in place, so
// long-lived components reading through Config observe updated values.
type Viper struct {
	v *viper.Viper
}

// NewViper loads configuration from the given file path and returns a
// Viper-backed Config. The file type is inferred from the extension.
func NewViper(pathFile string) (*Viper, error) {
	v := viper.New()

	filename := path.Base(pathFile)
	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(strings.TrimSuffix(filename, path.Ext(filename)))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "err", err)
			return
		}
		slog.Info("config reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory. configType must be a
// format viper understands, e.g. "yaml" or "json".
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func (c *Viper) GetBool(key string) bool { return c.v.GetBool(key) }

func (c *Viper) GetString(key string) string { return c.v.GetString(key) }

func (c *Viper) GetInt(key string) int { return c.v.GetInt(key) }

func (c *Viper) GetInt32(key string) int32 { return c.v.GetInt32(key) }

func (c *Viper) GetInt64(key string) int64 { return c.v.GetInt64(key) }

func (c *Viper) GetUint16(key string) uint16 { return uint16(c.v.GetUint(key)) }

func (c *Viper) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }

// duration interprets the integer at key in the given unit.
func (c *Viper) duration(key string, unit time.Duration) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * unit
}

// GetSecond returns the value for key as seconds.
func (c *Viper) GetSecond(key string) time.Duration { return c.duration(key, time.Second) }

// GetMinute returns the value for key as minutes.
func (c *Viper) GetMinute(key string) time.Duration { return c.duration(key, time.Minute) }

// GetHour returns the value for key as hours.
func (c *Viper) GetHour(key string) time.Duration { return c.duration(key, time.Hour) }

// GetDay returns the value for key as days (24h).
func (c *Viper) GetDay(key string) time.Duration { return c.duration(key, 24*time.Hour) }

// GetBinary returns the value for key decoded from base64.
func (c *Viper) GetBinary(key string) []byte {
	data, err := base64.StdEncoding.DecodeString(c.v.GetString(key))
	if err != nil {
		return nil
	}
	return data
}

// GetArray returns the value for key split by commas.
func (c *Viper) GetArray(key string) []string {
	return strings.Split(c.v.GetString(key), ",")
}

// GetMap returns the value for key parsed from "k:v,k:v" pairs.
func (c *Viper) GetMap(key string) map[string]string {
	pairs := strings.Split(c.v.GetString(key), ",")
	m := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		if k, v, ok := strings.Cut(pair, ":"); ok {
			m[k] = v
		}
	}
	return m
}

// Close implements io.Closer for interface compatibility.
func (c *Viper) Close() error {
	return nil
}
