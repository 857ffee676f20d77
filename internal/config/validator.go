package config

import (
	"fmt"
	"net"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

var (
	validFormats    = []string{"text", "markdown", "json"}
	validStoreTypes = []string{"json", "sqlite", "postgres"}
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
// Unknown distribution tags are checked later by the benchmark itself.
func ValidateConfig() error {
	var errors []string

	sizes, err := intList("sizes")
	if err != nil {
		errors = append(errors, err.Error())
	} else {
		if viper.IsSet("sizes") && len(sizes) == 0 {
			errors = append(errors, "sizes must contain at least one value")
		}
		for _, s := range sizes {
			if s < 0 {
				errors = append(errors, fmt.Sprintf("sizes must not be negative, got: %d", s))
			}
		}
	}

	seen := make(map[string]bool)
	for _, d := range stringList("distributions") {
		d = strings.ToLower(d)
		if seen[d] {
			errors = append(errors, fmt.Sprintf("distributions must not repeat a tag, got %q twice", d))
		}
		seen[d] = true
	}

	if viper.IsSet("runs") {
		runs := viper.GetInt("runs")
		if runs <= 0 {
			errors = append(errors, fmt.Sprintf("runs must be positive, got: %d", runs))
		}
	}

	if viper.IsSet("threshold") {
		threshold := viper.GetFloat64("threshold")
		if threshold < 0 {
			errors = append(errors, fmt.Sprintf("threshold must not be negative, got: %g", threshold))
		}
	}

	if viper.IsSet("format") {
		format := strings.ToLower(viper.GetString("format"))
		if !slices.Contains(validFormats, format) {
			errors = append(errors, fmt.Sprintf("format must be one of %s, got: %q", strings.Join(validFormats, ", "), format))
		}
	}

	if viper.IsSet("store.type") {
		storeType := strings.ToLower(viper.GetString("store.type"))
		if !slices.Contains(validStoreTypes, storeType) {
			errors = append(errors, fmt.Sprintf("store.type must be one of %s, got: %q", strings.Join(validStoreTypes, ", "), storeType))
		}
		if storeType == "postgres" && viper.GetString("store.path") == "" {
			errors = append(errors, "store.path must hold a connection string for postgres")
		}
	}

	// Validate metrics_addr (if set, must be host:port)
	if addr := viper.GetString("metrics_addr"); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			errors = append(errors, fmt.Sprintf("metrics_addr must be host:port, got: %q", addr))
		}
	}

	// If there are any errors, return them
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
