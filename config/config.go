// Package config loads service configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port           int
	DatabasePath   string
	AMQPURL        string // empty = in-process transport
	AMQPExchange   string
	AllowedOrigins []string
}

// Load reads configuration from the environment. A missing .env file is
// fine; explicit environment variables always win.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file, relying on environment")
	}

	return &Config{
		Port:         getEnvAsInt("PORT", 8080),
		DatabasePath: getEnv("DATABASE_PATH", "leaveboard.db"),
		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "leave.events"),
		AllowedOrigins: strings.Split(
			getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080"), ","),
	}
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		logrus.Warnf("ignoring non-numeric %s", key)
	}
	return defaultVal
}
