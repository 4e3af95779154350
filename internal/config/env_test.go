package config

import (
	"os"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	// Set up test environment variables
	os.Setenv("TEST_PLOT_VAR", "test_value")
	os.Setenv("TEST_PLOT_NAME", "Sine wave")
	defer func() {
		os.Unsetenv("TEST_PLOT_VAR")
		os.Unsetenv("TEST_PLOT_NAME")
	}()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no variables",
			input:    "plain text without variables",
			expected: "plain text without variables",
		},
		{
			name:     "simple ${VAR} format",
			input:    "prefix ${TEST_PLOT_VAR} suffix",
			expected: "prefix test_value suffix",
		},
		{
			name:     "simple $VAR format",
			input:    "prefix $TEST_PLOT_VAR suffix",
			expected: "prefix test_value suffix",
		},
		{
			name:     "unset variable becomes empty",
			input:    "prefix ${UNSET_VAR_12345} suffix",
			expected: "prefix  suffix",
		},
		{
			name:     "unset variable with default",
			input:    "prefix ${UNSET_VAR_12345:-default_value} suffix",
			expected: "prefix default_value suffix",
		},
		{
			name:     "set variable ignores default",
			input:    "title: ${TEST_PLOT_NAME:-fallback}",
			expected: "title: Sine wave",
		},
		{
			name:     "empty default",
			input:    "${UNSET_VAR_12345:-}",
			expected: "",
		},
		{
			name:     "multiple variables",
			input:    "$TEST_PLOT_VAR and ${TEST_PLOT_NAME}",
			expected: "test_value and Sine wave",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnv(tt.input); got != tt.expected {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExpandEnvConfig(t *testing.T) {
	os.Setenv("TEST_PLOT_TITLE", "from env")
	defer os.Unsetenv("TEST_PLOT_TITLE")

	cfg := DefaultConfig()
	cfg.Window.Title = "${TEST_PLOT_TITLE}"
	ExpandEnvConfig(&cfg)
	if cfg.Window.Title != "from env" {
		t.Errorf("Title = %q, want %q", cfg.Window.Title, "from env")
	}

	// nil is a no-op
	ExpandEnvConfig(nil)
}
