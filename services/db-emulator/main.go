package main

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/reefdb/reefdb-go/services/db-emulator/apihandlers"
	"github.com/reefdb/reefdb-go/services/db-emulator/store"
)

var conf emulatorConfig

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET"},
		AllowHeaders:     []string{"Origin", "Authorization", "Api-Key", "Content-Type", "Content-Length", "X-Request-Id"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/health", apihandlers.HealthCheckHandle)
	root := router.Group("/")
	apiModule := apihandlers.NewHTTPHandler(
		conf.ApiKeys,
		conf.SessionTokens.SignKey,
		int64(conf.SessionTokens.ExpiresIn.Seconds()),
		store.New(),
	)
	apiModule.AddRoutes(root)

	slog.Info("Starting ReefDB emulator on port " + conf.GinConfig.Port)
	err := router.Run(":" + conf.GinConfig.Port)
	if err != nil {
		slog.Error("Exited ReefDB emulator", slog.String("error", err.Error()))
		return
	}
}
