package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Language model configuration.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Cal.com API configuration.
	CalAPIKey       string `mapstructure:"CAL_API_KEY"`
	CalAPIURL       string `mapstructure:"CAL_API_URL"`
	CalAPIVersion   string `mapstructure:"CAL_API_VERSION"`
	CalEventTypeID  string `mapstructure:"CAL_EVENT_TYPE_ID"`
	CalCredentialID string `mapstructure:"CAL_CREDENTIAL_ID"`
	CalExternalID   string `mapstructure:"CAL_EXTERNAL_ID"`

	// Booking configuration.
	BookingTimezone string `mapstructure:"BOOKING_TIMEZONE"`
	WebhookID       string `mapstructure:"WEBHOOK_ID"`

	// Redis configuration (optional normalization cache).
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB       int    `mapstructure:"REDIS_CACHE_DB"`
	NormalizerCacheTTL int    `mapstructure:"NORMALIZER_CACHE_TTL_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("CAL_API_URL", "https://api.cal.com/v2")
	viper.SetDefault("CAL_API_VERSION", "2024-09-04")
	viper.SetDefault("CAL_EVENT_TYPE_ID", "2443726")
	viper.SetDefault("CAL_CREDENTIAL_ID", "985381")
	viper.SetDefault("CAL_EXTERNAL_ID", "kiennguyen@dashbooking.com")
	viper.SetDefault("BOOKING_TIMEZONE", "America/Winnipeg")
	viper.SetDefault("WEBHOOK_ID", "0bb1d791-61d0-4c82-bd04-319dca34a25d")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("NORMALIZER_CACHE_TTL_MIN", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
