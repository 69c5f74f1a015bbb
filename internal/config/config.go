package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	Environment string
	LogLevel    string
	HTTPAddr    string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StripeWebhookSecret string

	// Default processor fee schedule. Percentage fees are fractions
	// (0.029 = 2.9%), fixed fees are minor currency units.
	StripePercentageFee         decimal.Decimal
	StripeFixedFee              decimal.Decimal
	StripeIntlCardPercentageFee decimal.Decimal

	// Multiplier from major to minor currency units (100 for cents).
	SmallestCurrencyUnit int64

	PlatformFeePercentage decimal.Decimal

	// Purchase sync lease. TTL bounds the hold time so a crashed holder
	// cannot block other writers forever.
	PurchaseLockTTL            time.Duration
	PurchaseLockAcquireTimeout time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "coachpay"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		DBType:     getenv("DATABASE_TYPE", "postgres"),
		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "coachpay"),
		DBUser:     getenv("DATABASE_USER", "postgres"),
		DBPassword: getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       int(getenvInt64("REDIS_DB", 0)),

		StripeWebhookSecret: strings.TrimSpace(getenv("STRIPE_WEBHOOK_SECRET", "")),

		StripePercentageFee:         getenvDecimal("STRIPE_PERCENTAGE_FEE", "0.029"),
		StripeFixedFee:              getenvDecimal("STRIPE_FIXED_FEE", "30"),
		StripeIntlCardPercentageFee: getenvDecimal("STRIPE_INTL_CARD_PERCENTAGE_FEE", "0.039"),

		SmallestCurrencyUnit: getenvInt64("SMALLEST_CURRENCY_UNIT", 100),

		PlatformFeePercentage: getenvDecimal("PLATFORM_FEE_PERCENTAGE", "0.1"),

		PurchaseLockTTL:            getenvDuration("PURCHASE_LOCK_TTL", time.Minute),
		PurchaseLockAcquireTimeout: getenvDuration("PURCHASE_LOCK_ACQUIRE_TIMEOUT", 15*time.Second),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDecimal(key, def string) decimal.Decimal {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		value = def
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.RequireFromString(def)
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

// Module wires application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewFeeOverridesHolder),
)
