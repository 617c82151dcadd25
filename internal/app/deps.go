package app

import (
	"fmt"
	"os"

	"go-ems/internal/shared/connection"

	"gorm.io/gorm"
)

const connectRetries = 5

// connectDatabase dials Postgres using the DB_* environment variables.
// All three entrypoints (api, worker, consumer) share this.
func connectDatabase() (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		connectRetries,
	)
}

func kafkaBrokerFromEnv() (string, error) {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		return "", fmt.Errorf("KAFKA_BROKER is required")
	}
	return broker, nil
}
