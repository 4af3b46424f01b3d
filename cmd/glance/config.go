// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"

	"github.com/teradata-labs/glance/pkg/nlq"
	"github.com/teradata-labs/glance/pkg/server"
)

const (
	// KeyringService is the service name used for keyring storage.
	KeyringService = "glance"
	// DefaultConfigFileName is the config file searched for when --config
	// is not given.
	DefaultConfigFileName = "glance"
)

// Config is the merged server configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Logging LoggingConfig `mapstructure:"logging"`

	DataDir string `mapstructure:"-"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string     `mapstructure:"addr"`
	CORS CORSConfig `mapstructure:"cors"`
}

// CORSConfig mirrors server.CORSConfig for file/env configuration.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// LLMConfig configures the natural-language query provider.
type LLMConfig struct {
	Provider       string `mapstructure:"provider"`
	Model          string `mapstructure:"model"`
	Endpoint       string `mapstructure:"endpoint"`
	APIKey         string `mapstructure:"api_key"` // From CLI/env/keyring only
	MaxTokens      int    `mapstructure:"max_tokens"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	SampleRows     int    `mapstructure:"sample_rows"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GetDataDir returns the glance data directory, respecting the
// GLANCE_DATA_DIR environment variable.
func GetDataDir() string {
	if dir := os.Getenv("GLANCE_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".glance"
	}
	return filepath.Join(home, ".glance")
}

// LoadConfig loads configuration from multiple sources with proper priority:
// 1. Command line flags (highest priority)
// 2. Config file
// 3. Environment variables
// 4. Defaults (lowest priority)
func LoadConfig(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(GetDataDir())
		viper.AddConfigPath(".")
		viper.SetConfigName(DefaultConfigFileName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", viper.ConfigFileUsed(), err)
		}
		// Config file not found; using defaults + env vars + flags
	}

	viper.SetEnvPrefix("GLANCE")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.DataDir = GetDataDir()

	// Secrets come from CLI/env first, then the keyring. Non-fatal: the
	// keyring might not be available on headless machines.
	_ = loadSecretsFromKeyring(&config)

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.addr", ":5080")

	viper.SetDefault("server.cors.enabled", true)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"}) // change for production
	viper.SetDefault("server.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("server.cors.allowed_headers", []string{"*"})
	viper.SetDefault("server.cors.exposed_headers", []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Glance-Session"})
	viper.SetDefault("server.cors.allow_credentials", false) // MUST be false with wildcard origins
	viper.SetDefault("server.cors.max_age", 86400)

	viper.SetDefault("llm.provider", "anthropic")
	viper.SetDefault("llm.model", "")
	viper.SetDefault("llm.endpoint", "")
	viper.SetDefault("llm.max_tokens", 4096)
	viper.SetDefault("llm.timeout_seconds", 60)
	viper.SetDefault("llm.sample_rows", 5)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}

// secretKeyNames maps provider names to their keyring key.
var secretKeyNames = map[string]string{
	"anthropic": "anthropic_api_key",
	"openai":    "openai_api_key",
}

// providerEnvVars lists the conventional environment variables checked
// before the keyring, per provider.
var providerEnvVars = map[string]string{
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
}

// ListAvailableSecretKeys returns the key names accepted by set-key.
func ListAvailableSecretKeys() []string {
	return []string{"anthropic_api_key", "openai_api_key"}
}

// loadSecretsFromKeyring fills in the API key when the config file, flags,
// and environment did not provide one.
func loadSecretsFromKeyring(config *Config) error {
	if config.LLM.APIKey != "" {
		return nil
	}

	provider := config.LLM.Provider
	if provider == "" {
		provider = "anthropic"
	}

	if env, ok := providerEnvVars[provider]; ok {
		if v := os.Getenv(env); v != "" {
			config.LLM.APIKey = v
			return nil
		}
	}

	keyName, ok := secretKeyNames[provider]
	if !ok {
		return nil
	}
	secret, err := keyring.Get(KeyringService, keyName)
	if err != nil {
		return err
	}
	config.LLM.APIKey = secret
	return nil
}

// NLQConfig converts the merged configuration into the query service form.
func (c *Config) NLQConfig() nlq.Config {
	return nlq.Config{
		Provider:   c.LLM.Provider,
		APIKey:     c.LLM.APIKey,
		Model:      c.LLM.Model,
		Endpoint:   c.LLM.Endpoint,
		Timeout:    time.Duration(c.LLM.TimeoutSeconds) * time.Second,
		MaxTokens:  c.LLM.MaxTokens,
		SampleRows: c.LLM.SampleRows,
	}
}

// ServerCORS converts the configured CORS settings into the server form.
func (c *Config) ServerCORS() server.CORSConfig {
	return server.CORSConfig{
		Enabled:          c.Server.CORS.Enabled,
		AllowedOrigins:   c.Server.CORS.AllowedOrigins,
		AllowedMethods:   c.Server.CORS.AllowedMethods,
		AllowedHeaders:   c.Server.CORS.AllowedHeaders,
		ExposedHeaders:   c.Server.CORS.ExposedHeaders,
		AllowCredentials: c.Server.CORS.AllowCredentials,
		MaxAge:           c.Server.CORS.MaxAge,
	}
}
