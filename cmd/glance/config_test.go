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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GLANCE_DATA_DIR", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":5080", cfg.Server.Addr)
	assert.True(t, cfg.Server.CORS.Enabled)
	assert.Equal(t, []string{"*"}, cfg.Server.CORS.AllowedOrigins)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 4096, cfg.LLM.MaxTokens)
	assert.Equal(t, 5, cfg.LLM.SampleRows)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ANTHROPIC_API_KEY", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "glance.yaml")
	content := `
server:
  addr: ":6090"
llm:
  provider: openai
  model: gpt-4.1
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":6090", cfg.Server.Addr)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4.1", cfg.LLM.Model)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestAPIKeyFromEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("GLANCE_DATA_DIR", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-test", cfg.LLM.APIKey)
}

func TestNLQConfigConversion(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{
		Provider:       "anthropic",
		APIKey:         "k",
		TimeoutSeconds: 30,
		MaxTokens:      1024,
		SampleRows:     3,
	}}
	nc := cfg.NLQConfig()
	assert.Equal(t, "anthropic", nc.Provider)
	assert.Equal(t, "k", nc.APIKey)
	assert.Equal(t, 1024, nc.MaxTokens)
	assert.Equal(t, 3, nc.SampleRows)
	assert.Equal(t, "30s", nc.Timeout.String())
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "(not set)", maskSecret(""))
	assert.Equal(t, "****", maskSecret("short"))
	assert.Equal(t, "sk-a...wxyz", maskSecret("sk-ant-api-key-wxyz"))
}
