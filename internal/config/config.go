package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	BotToken string `env:"BOT_TOKEN" validate:"required"`
	AppPIN   string `env:"APP_PIN"`
	AI       AIConfig
	Database DatabaseConfig
}

// AIConfig holds the AI provider settings
type AIConfig struct {
	Provider string `env:"AI_PROVIDER" validate:"oneof=gemini openai"`
	APIKey   string `env:"API_KEY" validate:"required"`
	Model    string `env:"AI_MODEL"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver     string `env:"STORAGE_DRIVER" validate:"oneof=postgres sqlite"`
	Host       string `env:"DB_HOST"`
	Port       string `env:"DB_PORT"`
	Name       string `env:"DB_NAME"`
	User       string `env:"DB_USER"`
	Password   string `env:"DB_PASSWORD" validate:"required_if=Driver postgres"`
	SQLitePath string `env:"SQLITE_PATH"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	provider := getEnv("AI_PROVIDER", ProviderGemini)

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		AppPIN:   os.Getenv("APP_PIN"),
		AI: AIConfig{
			Provider: provider,
			APIKey:   getEnv("API_KEY", providerKey(provider)),
			Model:    os.Getenv("AI_MODEL"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("STORAGE_DRIVER", DriverPostgres),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			Name:       getEnv("DB_NAME", "latinvocab"),
			User:       getEnv("DB_USER", "latinvocab"),
			Password:   os.Getenv("DB_PASSWORD"),
			SQLitePath: getEnv("SQLITE_PATH", "latinvocab.db"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and allowed values
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Errorf("%s is required", fe.Field())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// providerKey returns the provider-specific credential variable
func providerKey(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
