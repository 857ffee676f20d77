package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		setup     func()
		wantError bool
		errMsg    string
	}{
		{
			name: "Valid Configuration",
			setup: func() {
				viper.Set("sizes", []int{10, 100})
				viper.Set("runs", 3)
				viper.Set("format", "markdown")
				viper.Set("store.type", "sqlite")
				viper.Set("metrics_addr", "127.0.0.1:9100")
			},
			wantError: false,
		},
		{
			name:      "Defaults",
			setup:     SetDefaults,
			wantError: false,
		},
		{
			name: "Sizes From String",
			setup: func() {
				viper.Set("sizes", "10, 20,30")
			},
			wantError: false,
		},
		{
			name: "Non Integer Size",
			setup: func() {
				viper.Set("sizes", "10,abc")
			},
			wantError: true,
			errMsg:    `"abc" is not an integer`,
		},
		{
			name: "Negative Size",
			setup: func() {
				viper.Set("sizes", []int{10, -5})
			},
			wantError: true,
			errMsg:    "sizes must not be negative, got: -5",
		},
		{
			name: "Empty Sizes",
			setup: func() {
				viper.Set("sizes", []int{})
			},
			wantError: true,
			errMsg:    "sizes must contain at least one value",
		},
		{
			name: "Repeated Distribution",
			setup: func() {
				viper.Set("distributions", "random,sorted,Random")
			},
			wantError: true,
			errMsg:    `distributions must not repeat a tag, got "random" twice`,
		},
		{
			name: "Invalid Runs",
			setup: func() {
				viper.Set("runs", 0)
			},
			wantError: true,
			errMsg:    "runs must be positive",
		},
		{
			name: "Invalid Threshold",
			setup: func() {
				viper.Set("threshold", -1.5)
			},
			wantError: true,
			errMsg:    "threshold must not be negative",
		},
		{
			name: "Invalid Format",
			setup: func() {
				viper.Set("format", "html")
			},
			wantError: true,
			errMsg:    "format must be one of text, markdown, json",
		},
		{
			name: "Invalid Store Type",
			setup: func() {
				viper.Set("store.type", "mongo")
			},
			wantError: true,
			errMsg:    "store.type must be one of",
		},
		{
			name: "Postgres Without DSN",
			setup: func() {
				viper.Set("store.type", "postgres")
				viper.Set("store.path", "")
			},
			wantError: true,
			errMsg:    "store.path must hold a connection string",
		},
		{
			name: "Invalid Metrics Address",
			setup: func() {
				viper.Set("metrics_addr", "9100")
			},
			wantError: true,
			errMsg:    "metrics_addr must be host:port",
		},
		{
			name: "Multiple Errors",
			setup: func() {
				viper.Set("runs", -5)
				viper.Set("format", "pdf")
			},
			wantError: true,
			errMsg:    "configuration validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()
			defer viper.Reset()

			if tt.setup != nil {
				tt.setup()
			}

			err := ValidateConfig()
			if tt.wantError {
				if err == nil {
					t.Errorf("ValidateConfig() expected error, got nil")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateConfig() error = %v, want error containing %v", err, tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateConfig() unexpected error: %v", err)
				}
			}
		})
	}
}
