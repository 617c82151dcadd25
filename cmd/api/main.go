package main

import (
	"log"
	"os"

	"go-ems/internal/app"
	"go-ems/internal/bootstrap"
	"go-ems/internal/shared/apperror"

	"github.com/gin-gonic/gin"
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

	apperror.Init()

	r := gin.Default()
	if err := app.BuildApp(r); err != nil {
		zap.L().Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{Port: os.Getenv("PORT")},
		bootstrap.NewStdoutAuditLogger(),
	)
}
