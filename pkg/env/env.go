// Package env holds the raw environment lookups that run before the
// envconfig-backed config is loaded, such as the logger's output format.
package env

import "os"

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
