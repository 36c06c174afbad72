// Package routes wires controllers and middleware onto the gin engine.
package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Andyflow28/SolTech-RESTAPI/config"
	"github.com/Andyflow28/SolTech-RESTAPI/controllers"
	"github.com/Andyflow28/SolTech-RESTAPI/crud"
	"github.com/Andyflow28/SolTech-RESTAPI/middlewares"
	"github.com/Andyflow28/SolTech-RESTAPI/utils"
)

// Setup builds the router with every route of the API registered. All
// dependencies are constructed here and injected; nothing is global.
func Setup(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	store := crud.NewStore(db)
	tokens := utils.NewTokenService(cfg)
	hub := controllers.NewHub(logger)

	userController := controllers.NewUserController(store, logger)
	authController := controllers.NewAuthController(store, tokens, logger)
	stationController := controllers.NewStationController(store, logger)
	readingController := controllers.NewReadingController(store, hub, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID(logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Authorization", "Content-Type", "X-API-Key"},
			AllowCredentials: true,
		}))
	}

	// Public routes
	r.POST("/users", userController.CreateUser)
	r.GET("/users", userController.ListUsers)
	r.GET("/users/:user_id", userController.GetUser)
	r.POST("/auth/login", authController.Login)
	r.GET("/health", controllers.HealthCheck)

	// Device token issuance requires the shared API key
	r.POST("/token", middlewares.RequireAPIKey(cfg.APIKey), authController.DeviceToken)

	// Reads are public, like the user listings
	r.GET("/user-stations", stationController.ListStations)
	r.GET("/user-stations/:station_id", stationController.GetStation)
	r.GET("/station-data", readingController.QueryReadings)
	r.GET("/station-data/latest", readingController.LatestReadings)
	r.GET("/station-data/:data_id", readingController.GetReading)

	// Write routes accept a bearer token or the shared API key
	auth := r.Group("/")
	auth.Use(middlewares.RequireAuth(tokens, cfg.APIKey))
	auth.POST("/user-stations", stationController.CreateStation)
	auth.POST("/station-data", readingController.CreateReading)
	auth.DELETE("/station-data/cleanup", readingController.Cleanup)
	auth.GET("/station-data/export", readingController.ExportCSV)
	auth.GET("/ws", hub.HandleWebSocket)

	return r
}
