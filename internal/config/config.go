package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	Backend  BackendConfig
	Cart     CartConfig
	Redis    RedisConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type SessionConfig struct {
	Secret string
}

// BackendConfig selects the backend API origin. This is the only external
// configuration the checkout flow depends on.
type BackendConfig struct {
	BaseURL string
}

// CartConfig selects the durable cart-store backend
type CartConfig struct {
	Store string // "cookie" or "redis"
	TTL   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CheckoutConfig holds checkout flow tuning: where the payment processor
// sends the browser back, and how long the expired screen lingers before
// navigating away.
type CheckoutConfig struct {
	ReturnURL            string
	CancelURL            string
	ExpiredRedirectDelay time.Duration
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_API_URL", "http://localhost:3000/api/v1"),
		},
		Cart: CartConfig{
			Store: getEnv("CART_STORE", "cookie"),
			TTL:   time.Duration(getEnvAsInt("CART_TTL_HOURS", 24)) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Checkout: CheckoutConfig{
			ReturnURL:            getEnv("PAYMENT_RETURN_URL", "http://localhost:8080/payment/return"),
			CancelURL:            getEnv("PAYMENT_CANCEL_URL", "http://localhost:8080/payment/cancel"),
			ExpiredRedirectDelay: time.Duration(getEnvAsInt("EXPIRED_REDIRECT_DELAY_SECONDS", 5)) * time.Second,
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
