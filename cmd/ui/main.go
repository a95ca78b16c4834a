package main

import (
	"log"

	"github.com/joho/godotenv"

	"distfit/adapters/samplefile"
	"distfit/app"
	"distfit/internal"
	"distfit/internal/config"
	"distfit/ui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := internal.NewLogger(cfg.Log.Level)
	svc := app.NewEvaluationService(samplefile.NewStore(logger), cfg, logger)

	a, err := ui.NewApp(svc, cfg.UI, logger)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("Starting distfit UI on http://localhost:%s", cfg.UI.Port)
	log.Fatal(a.Start())
}
