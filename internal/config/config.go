package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	LLMProviderGateway = "gateway"
	LLMProviderGemini  = "gemini"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	LLM        LLMConfig
	Onboarding OnboardingConfig
	Logging    LoggingConfig
}

// ServerConfig leaves WriteTimeout zero by default so the unread-count
// stream is not cut off.
type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiryMin int
}

// LLMConfig selects the assistant backend. An empty key leaves the
// assistant unconfigured rather than failing startup.
type LLMConfig struct {
	Provider     string
	APIKey       string
	BaseURL      string
	Model        string
	GeminiAPIKey string
	GeminiModel  string
}

type OnboardingConfig struct {
	DraftTTL time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "0s")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ACCESS_EXPIRY_MIN", 60*24*7)
	v.SetDefault("LLM_PROVIDER", LLMProviderGateway)
	v.SetDefault("LLM_BASE_URL", "https://ai.gateway.lovable.dev/v1")
	v.SetDefault("LLM_MODEL", "google/gemini-2.5-flash")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("ONBOARDING_DRAFT_TTL_HOURS", 24)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := fromViper(v)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:    v.GetString("JWT_ACCESS_SECRET"),
			AccessExpiryMin: v.GetInt("JWT_ACCESS_EXPIRY_MIN"),
		},
		LLM: LLMConfig{
			Provider:     v.GetString("LLM_PROVIDER"),
			APIKey:       v.GetString("LLM_API_KEY"),
			BaseURL:      v.GetString("LLM_BASE_URL"),
			Model:        v.GetString("LLM_MODEL"),
			GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
			GeminiModel:  v.GetString("GEMINI_MODEL"),
		},
		Onboarding: OnboardingConfig{
			DraftTTL: time.Duration(v.GetInt("ONBOARDING_DRAFT_TTL_HOURS")) * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	switch c.LLM.Provider {
	case LLMProviderGateway, LLMProviderGemini:
	default:
		return fmt.Errorf("unknown LLM provider %q", c.LLM.Provider)
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetURL returns the postgres:// form used by the migrator.
func (c *DatabaseConfig) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AccessExpiry is the lifetime of issued session tokens.
func (c *JWTConfig) AccessExpiry() time.Duration {
	return time.Duration(c.AccessExpiryMin) * time.Minute
}

// ActiveKey returns the key for the selected provider.
func (c *LLMConfig) ActiveKey() string {
	if c.Provider == LLMProviderGemini {
		return c.GeminiAPIKey
	}
	return c.APIKey
}
