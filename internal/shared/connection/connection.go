// Package connection dials the process's external dependencies with a
// bounded retry loop, so a service coming up before Postgres, Redis or
// Kafka does not crash-loop immediately.
package connection

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const retryDelay = 5 * time.Second

// dialWithRetry runs dial up to maxRetries times, sleeping between
// attempts, and returns the last error when every attempt fails.
func dialWithRetry[T any](name string, maxRetries int, dial func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		v, err := dial()
		if err == nil {
			return v, nil
		}
		lastErr = err
		zap.L().Warn("connection attempt failed",
			zap.String("target", name),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}

	return zero, fmt.Errorf("%s connection failed after %d retries: %w", name, maxRetries, lastErr)
}

// BindTx returns a gorm handle whose statements execute on tx, so a
// repository scoped with it runs inside the caller's transaction. gorm
// detects the TxCommitter conn and does not open a nested transaction.
// Opening over a live connection performs no I/O, so a failure here is a
// wiring bug, not a runtime condition.
func BindTx(tx *sql.Tx) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("bind gorm session to tx: %v", err))
	}
	return db
}

func ConnectGORMWithRetry(
	host, user, password, dbname, port, sslmode string,
	maxRetries int,
) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode,
	)

	return dialWithRetry("postgres", maxRetries, func() (*gorm.DB, error) {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlDB.Ping(); err != nil {
			return nil, err
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)

		return db, nil
	})
}

func ConnectRedisWithRetry(addr string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	return dialWithRetry("redis", maxRetries, func() (*redis.Client, error) {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, err
		}
		return rdb, nil
	})
}

// ConnectKafkaWithRetry verifies the broker is reachable, then hands back a
// writer. The writer itself dials lazily per batch.
func ConnectKafkaWithRetry(broker string, maxRetries int) (*kafkago.Writer, error) {
	return dialWithRetry("kafka", maxRetries, func() (*kafkago.Writer, error) {
		conn, err := kafkago.Dial("tcp", broker)
		if err != nil {
			return nil, err
		}
		conn.Close()

		return &kafkago.Writer{
			Addr:         kafkago.TCP(broker),
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireAll,
		}, nil
	})
}
