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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teradata-labs/glance/internal/version"
)

var (
	cfgFile string
	config  *Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:     "glance",
	Short:   "Glance - spreadsheet Q&A and charting dashboard",
	Long:    `Glance serves a browser dashboard for uploading spreadsheets, asking natural-language questions about them, and building charts. Questions go to an LLM provider when a credential is configured and fall back to keyword dispatch otherwise.`,
	Version: version.Get(),
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $GLANCE_DATA_DIR/glance.yaml)")

	// Server flags
	rootCmd.PersistentFlags().String("addr", ":5080", "HTTP listen address")

	// LLM flags
	rootCmd.PersistentFlags().String("llm-provider", "anthropic", "LLM provider (anthropic, openai)")
	rootCmd.PersistentFlags().String("llm-model", "", "model identifier (provider default when empty)")
	rootCmd.PersistentFlags().String("llm-endpoint", "", "API endpoint override")
	rootCmd.PersistentFlags().String("api-key", "", "API key (or use keyring/env)")
	rootCmd.PersistentFlags().Int("max-tokens", 4096, "maximum tokens per request")
	rootCmd.PersistentFlags().Int("sample-rows", 5, "dataset rows included in the model prompt")

	// Logging flags
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("server.addr", rootCmd.PersistentFlags().Lookup("addr"))

	_ = viper.BindPFlag("llm.provider", rootCmd.PersistentFlags().Lookup("llm-provider"))
	_ = viper.BindPFlag("llm.model", rootCmd.PersistentFlags().Lookup("llm-model"))
	_ = viper.BindPFlag("llm.endpoint", rootCmd.PersistentFlags().Lookup("llm-endpoint"))
	_ = viper.BindPFlag("llm.api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("llm.max_tokens", rootCmd.PersistentFlags().Lookup("max-tokens"))
	_ = viper.BindPFlag("llm.sample_rows", rootCmd.PersistentFlags().Lookup("sample-rows"))

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error
	config, err = LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}
