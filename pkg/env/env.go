// Package env reads raw process environment values. Structured settings
// belong in pkg/config; this covers the handful of knobs consulted before
// config has loaded, such as the log format.
package env

import "os"

// Get reads the variable, falling back when it is unset or blank.
func Get(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
