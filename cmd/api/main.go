package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"distfit/adapters/api"
	"distfit/adapters/samplefile"
	"distfit/app"
	"distfit/internal"
	"distfit/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	logger := internal.NewLogger(cfg.Log.Level)
	svc := app.NewEvaluationService(samplefile.NewStore(logger), cfg, logger)
	router := api.NewRouter(svc, cfg.Server, logger)

	addr := ":" + cfg.Server.Port
	log.Printf("Starting distfit API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Server failed:", err)
	}
}
