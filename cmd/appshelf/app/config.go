package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration defaults.
const (
	DefaultOutputFile     = "apps.xlsx"
	DefaultContentDir     = "apps_content"
	DefaultSiteDir        = "site"
	DefaultConcurrency    = 4
	DefaultMaxScreenshots = 3
	DefaultCountry        = "us"
	DefaultLang           = "en"
	DefaultHTTPTimeout    = 30 * time.Second
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Catalog build configuration
	OutputFile     string
	ContentDir     string
	SiteDir        string
	Concurrency    int
	MaxScreenshots int
	Country        string
	Lang           string
	HTTPTimeout    time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (~/.appshelf.yaml or ./.appshelf.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".appshelf")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		OutputFile:     viper.GetString("output_file"),
		ContentDir:     viper.GetString("content_dir"),
		SiteDir:        viper.GetString("site_dir"),
		Concurrency:    viper.GetInt("concurrency"),
		MaxScreenshots: viper.GetInt("max_screenshots"),
		Country:        viper.GetString("country"),
		Lang:           viper.GetString("lang"),
		HTTPTimeout:    viper.GetDuration("http_timeout"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	config.applyDefaults()
	return config, nil
}

// applyDefaults fills any setting no source provided.
func (c *Config) applyDefaults() {
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if c.ContentDir == "" {
		c.ContentDir = DefaultContentDir
	}
	if c.SiteDir == "" {
		c.SiteDir = DefaultSiteDir
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.MaxScreenshots <= 0 {
		c.MaxScreenshots = DefaultMaxScreenshots
	}
	if c.Country == "" {
		c.Country = DefaultCountry
	}
	if c.Lang == "" {
		c.Lang = DefaultLang
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
}

// UpdateFromFlags updates config values from parsed command flags. This is
// called after cobra parses flags so flag values take precedence over config
// file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
