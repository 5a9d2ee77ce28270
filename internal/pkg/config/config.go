package config

import (
	"io"
	"time"
)

// Config exposes typed accessors over the application configuration source.
//
// Implementations decide how missing keys are handled; callers should be able
// to rely on zero values when a key is absent.
type Config interface {
	io.Closer

	// GetBool retrieves the value for key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value for key as a string.
	GetString(key string) string

	// GetInt retrieves the value for key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the value for key as an int32.
	GetInt32(key string) int32

	// GetInt64 retrieves the value for key as an int64.
	GetInt64(key string) int64

	// GetUint16 retrieves the value for key as a uint16.
	GetUint16(key string) uint16

	// GetFloat64 retrieves the value for key as a float64.
	GetFloat64(key string) float64

	// GetSecond interprets the integer value for key as seconds.
	GetSecond(key string) time.Duration

	// GetMinute interprets the integer value for key as minutes.
	GetMinute(key string) time.Duration

	// GetHour interprets the integer value for key as hours.
	GetHour(key string) time.Duration

	// GetDay interprets the integer value for key as days (24h).
	GetDay(key string) time.Duration

	// GetBinary retrieves the value for key decoded from base64.
	GetBinary(key string) []byte

	// GetArray retrieves the value for key as a comma-separated string slice.
	GetArray(key string) []string

	// GetMap retrieves the value for key parsed from "k1:v1,k2:v2" pairs.
	GetMap(key string) map[string]string
}
