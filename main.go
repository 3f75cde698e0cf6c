package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/davidsmarcelino/nps-dashboard/adapters/fetch"
	"github.com/davidsmarcelino/nps-dashboard/app"
	"github.com/davidsmarcelino/nps-dashboard/domain/nps"
	"github.com/davidsmarcelino/nps-dashboard/internal/config"
	"github.com/davidsmarcelino/nps-dashboard/internal/testkit"
	"github.com/davidsmarcelino/nps-dashboard/ui"
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

	fetcher := fetch.NewHTTPFetcher(appConfig.Fetch.Timeout)
	calculator := nps.NewCalculator(nps.IdentifyConfig{
		SuggestiveMinValidPct: appConfig.Identify.SuggestiveMinValidPct,
		UnnamedMinValidPct:    appConfig.Identify.UnnamedMinValidPct,
		LenientMinValidPct:    appConfig.Identify.LenientMinValidPct,
	})
	service := app.NewAnalysisService(fetcher, calculator)

	// Load the configured data source, falling back to synthetic survey
	// data so the dashboard always has something to show.
	ctx := context.Background()
	switch {
	case appConfig.Data.SheetURL != "":
		log.Printf("Using remote data source: %s", appConfig.Data.SheetURL)
		if _, err := service.AnalyzeLocation(ctx, appConfig.Data.SheetURL, appConfig.Data.ScoreColumns); err != nil {
			log.Printf("Warning: could not load initial sheet: %v", err)
		}
	case appConfig.Data.DataFile != "":
		log.Printf("Using local data source: %s", appConfig.Data.DataFile)
		if _, err := service.AnalyzeLocation(ctx, appConfig.Data.DataFile, appConfig.Data.ScoreColumns); err != nil {
			log.Printf("Warning: could not load initial data file: %v", err)
		}
	default:
		log.Printf("No data source configured, using synthetic survey data")
		generator := testkit.NewSurveyDataGenerator(testkit.DefaultSurveyConfig())
		service.AnalyzeText(generator.GenerateCSV(), "dados sintéticos", nil)
	}

	server, err := ui.NewApp(service)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("Starting NPS dashboard server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
