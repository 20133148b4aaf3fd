package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`
	// Comma separated proxy IPs or CIDRs whose forwarding headers are trusted.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	// Session state. SESSION_BACKEND is "memory" or "redis".
	SessionBackend    string `mapstructure:"SESSION_BACKEND"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`
	// Encrypts Redis session documents when set.
	SessionEncryptionKey string `mapstructure:"SESSION_ENCRYPTION_KEY"`
	DefaultLocation      string `mapstructure:"DEFAULT_LOCATION"`
	DefaultLanguage      string `mapstructure:"DEFAULT_LANGUAGE"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Gemini models and credentials.
	GeminiAPIKey      string `mapstructure:"GEMINI_API_KEY"`
	GeminiSearchModel string `mapstructure:"GEMINI_SEARCH_MODEL"`
	GeminiMapsModel   string `mapstructure:"GEMINI_MAPS_MODEL"`
	GeminiTextModel   string `mapstructure:"GEMINI_TEXT_MODEL"`

	// Speech-to-text provider: "gemini" or "google".
	STTProvider              string `mapstructure:"STT_PROVIDER"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	// Simulated latency of the mock login, in milliseconds.
	AuthDelayMs int `mapstructure:"AUTH_DELAY_MS"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

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
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("TRUSTED_PROXIES", "")
	viper.SetDefault("SESSION_BACKEND", "memory")
	viper.SetDefault("SESSION_TTL_MINUTES", 120)
	viper.SetDefault("SESSION_ENCRYPTION_KEY", "")
	viper.SetDefault("DEFAULT_LOCATION", "Darmstadt, Hessen")
	viper.SetDefault("DEFAULT_LANGUAGE", "de")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_SEARCH_MODEL", "gemini-3-flash-preview")
	viper.SetDefault("GEMINI_MAPS_MODEL", "gemini-2.5-flash")
	viper.SetDefault("GEMINI_TEXT_MODEL", "gemini-2.5-flash")
	viper.SetDefault("STT_PROVIDER", "gemini")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	viper.SetDefault("AUTH_DELAY_MS", 1500)

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

// Origins splits ALLOWED_ORIGINS on commas.
func Origins() []string {
	origins := splitList(AppConfig.AllowedOrigins)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// TrustedProxies splits TRUSTED_PROXIES on commas. Nil trusts no proxy, so the
// client IP is always the remote address.
func TrustedProxies() []string {
	return splitList(AppConfig.TrustedProxies)
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
