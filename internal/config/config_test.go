package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configVars = []string{
	"BOT_TOKEN", "APP_PIN", "AI_PROVIDER", "API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY",
	"AI_MODEL", "STORAGE_DRIVER", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"SQLITE_PATH",
}

// clearEnv blanks every config variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configVars {
		t.Setenv(key, "")
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("API_KEY", "test_key")
	t.Setenv("DB_PASSWORD", "test_db_password")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Empty(t, cfg.AppPIN)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "test_key", cfg.AI.APIKey)
	assert.Empty(t, cfg.AI.Model)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "latinvocab", cfg.Database.Name)
	assert.Equal(t, "latinvocab", cfg.Database.User)
	assert.Equal(t, "latinvocab.db", cfg.Database.SQLitePath)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		contains string
	}{
		{
			name:     "missing bot token",
			env:      map[string]string{"API_KEY": "k", "DB_PASSWORD": "p"},
			contains: "BOT_TOKEN is required",
		},
		{
			name:     "missing api key",
			env:      map[string]string{"BOT_TOKEN": "t", "DB_PASSWORD": "p"},
			contains: "API_KEY is required",
		},
		{
			name:     "missing db password for postgres",
			env:      map[string]string{"BOT_TOKEN": "t", "API_KEY": "k"},
			contains: "DB_PASSWORD is required",
		},
		{
			name:     "unknown provider",
			env:      map[string]string{"BOT_TOKEN": "t", "API_KEY": "k", "DB_PASSWORD": "p", "AI_PROVIDER": "claude"},
			contains: "AI_PROVIDER must be one of",
		},
		{
			name:     "unknown storage driver",
			env:      map[string]string{"BOT_TOKEN": "t", "API_KEY": "k", "STORAGE_DRIVER": "mysql"},
			contains: "STORAGE_DRIVER must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad_SQLiteWithoutDBPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "t")
	t.Setenv("API_KEY", "k")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/vocab.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/vocab.db", cfg.Database.SQLitePath)
}

func TestLoad_ProviderKeyFallback(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		env      map[string]string
		expected string
	}{
		{
			name:     "gemini key",
			provider: "gemini",
			env:      map[string]string{"GEMINI_API_KEY": "g", "OPENAI_API_KEY": "o"},
			expected: "g",
		},
		{
			name:     "openai key",
			provider: "openai",
			env:      map[string]string{"GEMINI_API_KEY": "g", "OPENAI_API_KEY": "o"},
			expected: "o",
		},
		{
			name:     "api key wins",
			provider: "openai",
			env:      map[string]string{"API_KEY": "a", "OPENAI_API_KEY": "o"},
			expected: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BOT_TOKEN", "t")
			t.Setenv("DB_PASSWORD", "p")
			t.Setenv("AI_PROVIDER", tt.provider)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.AI.APIKey)
		})
	}
}
