package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jsattler/litreview/pkg/config"
	"github.com/jsattler/litreview/pkg/pdf"
	"github.com/jsattler/litreview/pkg/pipeline"
)

var (
	topic   string
	apiKey  string
	outPath string
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// Load .env file; it's okay if it doesn't exist, as long as env vars are set
	_ = godotenv.Load()

	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "litreview",
		Short: "Generate a literature-review report from arXiv papers",
		Long: `litreview drafts search queries for a research topic, retrieves and
summarizes matching arXiv papers, synthesizes a cited report, and writes
it out as a PDF.`,
		Run: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("topic") {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Enter research topic: ")
				input, _ := reader.ReadString('\n')
				topic = strings.TrimSpace(input)
			}
			if topic == "" {
				slog.Error("Topic cannot be empty")
				os.Exit(1)
			}

			if apiKey == "" {
				apiKey = os.Getenv("GOOGLE_API_KEY")
			}
			if apiKey == "" {
				slog.Error("No API key: pass --api-key or set GOOGLE_API_KEY")
				os.Exit(1)
			}

			pipeCfg := pipeline.Config{
				Model:              cfg.Model,
				MaxQueries:         cfg.MaxQueries,
				MaxResultsPerQuery: cfg.MaxResultsPerQuery,
				MinReportWords:     cfg.MinReportWords,
				MaxPromptChars:     cfg.MaxPromptChars,
				DedupeByURL:        cfg.DedupeByURL,
			}

			ctx := cmd.Context()
			engine, err := pipeline.NewEngine(ctx, pipeCfg, apiKey)
			if err != nil {
				slog.Error("Error initializing engine", "error", err)
				os.Exit(1)
			}

			slog.Info("Starting report generation", "topic", topic)
			result, err := engine.Run(ctx, topic)
			if err != nil {
				slog.Error("Report generation failed", "error", err)
				os.Exit(1)
			}

			exporter := pdf.NewExporter()
			if cfg.PDFStrictEncoding {
				exporter.Policy = pdf.Strict
			}
			data, err := exporter.Export(result.Report)
			if err != nil {
				slog.Error("PDF export failed", "error", err)
				os.Exit(1)
			}

			if outPath == "" {
				outPath = result.PDFName()
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				slog.Error("Failed to write PDF", "path", outPath, "error", err)
				os.Exit(1)
			}

			slog.Info("Report written", "path", outPath, "words", result.WordCount(), "sources", len(result.Records))
		},
	}

	rootCmd.Flags().StringVarP(&topic, "topic", "t", "", "The research topic")
	rootCmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "Gemini API key (defaults to GOOGLE_API_KEY)")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output PDF path (defaults to a name derived from the topic)")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
