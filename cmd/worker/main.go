package main

import (
	"log"

	"go-ems/internal/app"
	"go-ems/internal/bootstrap"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cleanup, err := bootstrap.InitLogger()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer cleanup()

	if err := app.RunWorker(); err != nil {
		zap.L().Fatal("run worker failed", zap.Error(err))
	}
}
