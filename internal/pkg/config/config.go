package config

import (
	"io"
	"strings"
	"time"
)

// Config defines a set of methods for retrieving configuration values of various types.
//
// Keys are dotted paths (for example "smtp.host"). Every key can also be
// supplied through the environment using its EnvName ("SMTP_HOST").
type Config interface {
	io.Closer

	// GetSecond retrieves the value associated with key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetInt retrieves the value associated with key as an int.
	// Missing or malformed values yield zero.
	GetInt(key string) int

	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetArray retrieves the value associated with key as a slice of strings.
	// The value is stored with format <element1>,<element2>,... and empty
	// elements are dropped.
	GetArray(key string) []string
}

var envReplacer = strings.NewReplacer(".", "_", "-", "_")

// EnvName returns the environment variable name that overrides key.
func EnvName(key string) string {
	return strings.ToUpper(envReplacer.Replace(key))
}
