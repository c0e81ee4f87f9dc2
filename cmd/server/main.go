package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jsattler/litreview/pkg/config"
	"github.com/jsattler/litreview/pkg/pdf"
	"github.com/jsattler/litreview/pkg/pipeline"
	"github.com/jsattler/litreview/pkg/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg := config.Load()

	pipeCfg := pipeline.Config{
		Model:              cfg.Model,
		MaxQueries:         cfg.MaxQueries,
		MaxResultsPerQuery: cfg.MaxResultsPerQuery,
		MinReportWords:     cfg.MinReportWords,
		MaxPromptChars:     cfg.MaxPromptChars,
		DedupeByURL:        cfg.DedupeByURL,
	}

	exporter := pdf.NewExporter()
	if cfg.PDFStrictEncoding {
		exporter.Policy = pdf.Strict
	}

	svc := server.NewService(&server.EngineGenerator{Cfg: pipeCfg}, exporter)
	handler := server.NewHandler(svc)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
	}))

	handler.RegisterRoutes(r)

	slog.Info("Server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
