package bootstrap

import (
	"os"

	"go.uber.org/zap"
)

// InitLogger builds the process-wide zap logger and installs it as the
// global. Production builds JSON logs; anything else gets the development
// console encoder. The returned cleanup flushes buffered entries.
func InitLogger() (cleanup func(), err error) {
	var logger *zap.Logger
	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return func() { _ = logger.Sync() }, nil
}
