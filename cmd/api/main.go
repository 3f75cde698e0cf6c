package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/davidsmarcelino/nps-dashboard/adapters/fetch"
	"github.com/davidsmarcelino/nps-dashboard/app"
	"github.com/davidsmarcelino/nps-dashboard/domain/nps"
	"github.com/davidsmarcelino/nps-dashboard/internal/config"
	"github.com/davidsmarcelino/nps-dashboard/internal/errors"
)

// analyzeRequest is the POST /v1/nps payload: raw delimited text or a
// document URL, plus an optional explicit column override.
type analyzeRequest struct {
	CSV     string   `json:"csv"`
	URL     string   `json:"url"`
	Columns []string `json:"columns"`
}

func main() {
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

	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/v1/nps", func(c *gin.Context) {
		var req analyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		switch {
		case req.CSV != "":
			analysis := service.AnalyzeText(req.CSV, "api", req.Columns)
			c.JSON(http.StatusOK, analysis)
		case req.URL != "":
			analysis, err := service.AnalyzeLocation(c.Request.Context(), req.URL, req.Columns)
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
				return
			}
			c.JSON(http.StatusOK, analysis)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "either csv or url is required"})
		}
	})

	log.Printf("Starting NPS API server on port %s", appConfig.Server.Port)
	if err := router.Run(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server failed:", err)
	}
}
