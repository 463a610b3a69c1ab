package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RabbitURL string // empty disables notifications
	RedisAddr string // empty disables the room cache

	PaymentTimeout time.Duration
	Currency       string
}

// Load reads configuration from the environment, honoring a .env file when
// present. Every value has a local-development default.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[Config] loaded .env")
	}

	return Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPass:         getEnv("DB_PASS", "postgres"),
		DBName:         getEnv("DB_NAME", "reservations"),
		RabbitURL:      os.Getenv("RABBITMQ_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		PaymentTimeout: time.Duration(getEnvInt("PAYMENT_TIMEOUT_SEC", 10)) * time.Second,
		Currency:       getEnv("CURRENCY", "USD"),
	}
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("[Config] invalid int for %s: %q", key, s)
	}
	return n
}
