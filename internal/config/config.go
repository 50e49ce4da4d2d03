// Package config loads application configuration from environment variables
// and an optional .env file through Viper. Env vars take priority.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application configuration.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Validate ValidateConfig
	LLM      LLMConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env      string // development, staging, production
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig holds the HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ValidateConfig holds the validation pipeline settings.
type ValidateConfig struct {
	SchemaDir       string        // directory with the UBL 2.1 XSD files
	Schematron      bool          // run the schematron stage after XSD
	SchematronImage string        // container image for the rule service
	Timeout         time.Duration // bound for one external run
}

// LLMConfig holds the settings for the validation-findings advisor.
// An empty APIKey disables the advisor.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Load reads configuration from env vars and optionally a .env file.
// Expected names: APP_ENV, LOG_LEVEL, HTTP_HOST, HTTP_PORT, XSD_DIR,
// SCHEMATRON_ENABLED, SCHEMATRON_IMAGE, VALIDATE_TIMEOUT, LLM_API_KEY,
// LLM_BASE_URL, LLM_MODEL.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Validate: ValidateConfig{
			SchemaDir:       getString(v, "XSD_DIR", "schemas"),
			Schematron:      getBool(v, "SCHEMATRON_ENABLED", false),
			SchematronImage: getString(v, "SCHEMATRON_IMAGE", ""),
			Timeout:         getDuration(v, "VALIDATE_TIMEOUT", 2*time.Minute),
		},
		LLM: LLMConfig{
			APIKey:  getString(v, "LLM_API_KEY", ""),
			BaseURL: getString(v, "LLM_BASE_URL", ""),
			Model:   getString(v, "LLM_MODEL", ""),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		if d, err := time.ParseDuration(v.GetString(key)); err == nil {
			return d
		}
	}
	return def
}
