package app

import (
	"os"
	"testing"
	"time"
)

// TestLoadConfig verifies basic config loading and defaults.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	if config.OutputFile != DefaultOutputFile {
		t.Errorf("OutputFile = %s, want %s", config.OutputFile, DefaultOutputFile)
	}
	if config.ContentDir != DefaultContentDir {
		t.Errorf("ContentDir = %s, want %s", config.ContentDir, DefaultContentDir)
	}
	if config.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", config.Concurrency, DefaultConcurrency)
	}
	if config.MaxScreenshots != DefaultMaxScreenshots {
		t.Errorf("MaxScreenshots = %d, want %d", config.MaxScreenshots, DefaultMaxScreenshots)
	}
	if config.Country != DefaultCountry {
		t.Errorf("Country = %s, want %s", config.Country, DefaultCountry)
	}
	if config.HTTPTimeout != DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %s, want %s", config.HTTPTimeout, DefaultHTTPTimeout)
	}
	// Note: LogLevel may be empty (triggers precedence logic in logger.go)
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("VERBOSE", "true")
	t.Setenv("COUNTRY", "de")
	t.Setenv("HTTP_TIMEOUT", "10s")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Verbose {
		t.Error("VERBOSE environment variable not loaded")
	}
	if config.Country != "de" {
		t.Errorf("Country = %s, want de", config.Country)
	}
	if config.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %s, want 10s", config.HTTPTimeout)
	}
}

// TestConfig_ApplyDefaults verifies zero values are filled in.
func TestConfig_ApplyDefaults(t *testing.T) {
	config := &Config{Concurrency: -1, MaxScreenshots: 0}
	config.applyDefaults()

	if config.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", config.Concurrency, DefaultConcurrency)
	}
	if config.MaxScreenshots != DefaultMaxScreenshots {
		t.Errorf("MaxScreenshots = %d, want %d", config.MaxScreenshots, DefaultMaxScreenshots)
	}
	if config.SiteDir != DefaultSiteDir {
		t.Errorf("SiteDir = %s, want %s", config.SiteDir, DefaultSiteDir)
	}
}

// TestConfig_UpdateFromFlags verifies flags take precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "debug")

	if !config.Verbose {
		t.Error("Verbose not updated from flags")
	}
	if !config.NoColor {
		t.Error("NoColor not updated from flags")
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}

	// Empty log level leaves the previous value in place
	config.UpdateFromFlags(false, true, false, "")
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug (unchanged)", config.LogLevel)
	}
}

// TestGetEnvOrDefault verifies the env fallback helper.
func TestGetEnvOrDefault(t *testing.T) {
	const key = "APPSHELF_TEST_ENV_KEY"
	os.Unsetenv(key)

	if got := getEnvOrDefault(key, "fallback"); got != "fallback" {
		t.Errorf("getEnvOrDefault() = %s, want fallback", got)
	}

	t.Setenv(key, "set")
	if got := getEnvOrDefault(key, "fallback"); got != "set" {
		t.Errorf("getEnvOrDefault() = %s, want set", got)
	}
}
