package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Andyflow28/SolTech-RESTAPI/config"
	"github.com/Andyflow28/SolTech-RESTAPI/routes"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// No logger yet; config comes first
		panic(err)
	}

	logger, err := config.NewLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.Setup(cfg, db, logger)

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
