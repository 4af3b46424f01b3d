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
	"strings"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Glance configuration",
	Long:  `Manage configuration and secrets for Glance.`,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [key-name]",
	Short: "Save API key to system keyring",
	Long: `Save an API key to the system keyring securely.

The key will be stored in your system's secure credential storage
(Keychain on macOS, Credential Manager on Windows, Secret Service on Linux).

Run 'glance config list-keys' to see available key names.`,
	Args: cobra.ExactArgs(1),
	Run:  runConfigSetKey,
}

var configGetKeyCmd = &cobra.Command{
	Use:   "get-key [key-name]",
	Short: "Retrieve API key from system keyring",
	Long:  `Retrieve an API key from the system keyring (for verification).`,
	Args:  cobra.ExactArgs(1),
	Run:   runConfigGetKey,
}

var configDeleteKeyCmd = &cobra.Command{
	Use:   "delete-key [key-name]",
	Short: "Delete API key from system keyring",
	Long:  `Remove an API key from the system keyring.`,
	Args:  cobra.ExactArgs(1),
	Run:   runConfigDeleteKey,
}

var configListKeysCmd = &cobra.Command{
	Use:   "list-keys",
	Short: "List available secret keys",
	Long:  `List all available secret keys that can be stored in the keyring.`,
	Run:   runConfigListKeys,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration (merged from all sources). Secrets are masked.`,
	Run:   runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configGetKeyCmd)
	configCmd.AddCommand(configDeleteKeyCmd)
	configCmd.AddCommand(configListKeysCmd)
	configCmd.AddCommand(configShowCmd)
}

func validateSecretKeyName(keyName string) {
	for _, k := range ListAvailableSecretKeys() {
		if k == keyName {
			return
		}
	}
	fmt.Fprintf(os.Stderr, "Invalid key name: %s\n", keyName)
	fmt.Fprintf(os.Stderr, "Available keys:\n")
	for _, k := range ListAvailableSecretKeys() {
		fmt.Fprintf(os.Stderr, "  - %s\n", k)
	}
	os.Exit(1)
}

func runConfigSetKey(cmd *cobra.Command, args []string) {
	keyName := args[0]
	validateSecretKeyName(keyName)

	// Read secret from stdin without echo
	fmt.Printf("Enter %s (input hidden): ", keyName)
	secretBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Empty key, nothing stored.")
		os.Exit(1)
	}

	if err := keyring.Set(KeyringService, keyName, secret); err != nil {
		fmt.Fprintf(os.Stderr, "Error storing key: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ %s stored in system keyring\n", keyName)
}

func runConfigGetKey(cmd *cobra.Command, args []string) {
	keyName := args[0]
	validateSecretKeyName(keyName)

	secret, err := keyring.Get(KeyringService, keyName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving key: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %s\n", keyName, maskSecret(secret))
}

func runConfigDeleteKey(cmd *cobra.Command, args []string) {
	keyName := args[0]
	validateSecretKeyName(keyName)

	if err := keyring.Delete(KeyringService, keyName); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting key: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ %s removed from system keyring\n", keyName)
}

func runConfigListKeys(cmd *cobra.Command, args []string) {
	fmt.Println("Available secret keys:")
	for _, k := range ListAvailableSecretKeys() {
		fmt.Printf("  - %s\n", k)
	}
}

func runConfigShow(cmd *cobra.Command, args []string) {
	fmt.Println("Server:")
	fmt.Printf("  addr: %s\n", config.Server.Addr)
	fmt.Printf("  cors.enabled: %t\n", config.Server.CORS.Enabled)
	fmt.Println("LLM:")
	fmt.Printf("  provider: %s\n", config.LLM.Provider)
	fmt.Printf("  model: %s\n", orDefault(config.LLM.Model, "(provider default)"))
	fmt.Printf("  endpoint: %s\n", orDefault(config.LLM.Endpoint, "(provider default)"))
	fmt.Printf("  api_key: %s\n", maskSecret(config.LLM.APIKey))
	fmt.Printf("  max_tokens: %d\n", config.LLM.MaxTokens)
	fmt.Printf("  sample_rows: %d\n", config.LLM.SampleRows)
	fmt.Println("Logging:")
	fmt.Printf("  level: %s\n", config.Logging.Level)
	fmt.Printf("  format: %s\n", config.Logging.Format)
}

// maskSecret shows only enough of a secret to recognize it.
func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
