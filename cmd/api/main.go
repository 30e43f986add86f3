package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gostoch/adapters/api"
	"gostoch/adapters/postgres"
	"gostoch/internal"
	"gostoch/internal/config"
	"gostoch/internal/ops"
	"gostoch/ports"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	var repo ports.ReportRepository
	if appConfig.Database.URL != "" {
		db, err := postgres.Connect(appConfig.Database.URL)
		if err != nil {
			log.Fatalf("Failed to initialize report storage: %v", err)
		}
		defer db.Close()
		repo = postgres.NewReportRepository(db)
		logger.Info("report persistence enabled")
	} else {
		logger.Warn("DATABASE_URL not set, reports will not be persisted")
	}

	if appConfig.Ops.Enabled {
		opsServer := ops.NewServer(appConfig.Ops.Port)
		go func() {
			logger.Info("ops server listening on :%s", appConfig.Ops.Port)
			if err := opsServer.ListenAndServe(); err != nil {
				logger.Error("ops server failed: %v", err)
			}
		}()
	}

	gin.SetMode(appConfig.Server.GinMode)
	server := api.NewServer(appConfig.Policy, repo, logger)
	if err := server.Run(appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
