package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string        `validate:"required"`
	HTTPAddr       string        `validate:"required,hostname_port|startswith=:"`
	JWTSecret      string        `validate:"required,min=16"`
	JWTTTL         time.Duration `validate:"gt=0"`
	Environment    string        `validate:"oneof=development production"`
	LogLevel       string        `validate:"omitempty,oneof=debug info warn error"`
	TelegramToken  string
	WorkplacesFile string `validate:"required"`
	AutoMigrate    bool
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Environment:    getenv("ENV", "development"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		WorkplacesFile: getenv("WORKPLACES_FILE", "workplaces.yaml"),
	}

	ttl, err := time.ParseDuration(getenv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("parse JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	if raw := os.Getenv("AUTO_MIGRATE"); raw != "" {
		cfg.AutoMigrate, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse AUTO_MIGRATE: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
