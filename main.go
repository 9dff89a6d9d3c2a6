package main

import (
	"flag"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fileman/config"
	"fileman/controller"
	"fileman/logging"
	"fileman/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	flag.UintVar(&cfg.Server.Port, "port", cfg.Server.Port, "The port to listen on")
	flag.Parse()

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("invalid log level %q: %v", cfg.Logging.Level, err)
	}
	defer logger.Sync()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	controller.SetupRoutes(r, controller.New(cfg, logger, metrics.New()))

	logger.Info("started", zap.String("addr", cfg.Server.Addr()))
	if err := r.Run(cfg.Server.Addr()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
