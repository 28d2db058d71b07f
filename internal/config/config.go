package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	MySQLUser     string
	MySQLPassword string
	MySQLHost     string
	MySQLPort     string
	MySQLDatabase string

	RedisAddr string

	RabbitURL      string
	RabbitExchange string

	PaymentBaseURL   string
	PaymentSecretKey string
	PaymentTimeout   time.Duration
	Currency         string

	JWTSecret string
}

// Load reads configuration from the environment, with a .env file as fallback.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getenv("PORT", "8080"),
		MySQLUser:        os.Getenv("MYSQL_USER"),
		MySQLPassword:    os.Getenv("MYSQL_PASSWORD"),
		MySQLHost:        getenv("MYSQL_HOST", "localhost"),
		MySQLPort:        getenv("MYSQL_PORT", "3306"),
		MySQLDatabase:    getenv("MYSQL_DATABASE", "storefront"),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RabbitURL:        os.Getenv("RABBITMQ_URL"),
		RabbitExchange:   getenv("RABBITMQ_EXCHANGE", "storefront.events"),
		PaymentBaseURL:   getenv("PAYMENT_API_URL", "https://api.stripe.com"),
		PaymentSecretKey: os.Getenv("PAYMENT_SECRET_KEY"),
		PaymentTimeout:   10 * time.Second,
		Currency:         getenv("PAYMENT_CURRENCY", "usd"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
