package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port               string
	Model              string
	MaxQueries         int
	MaxResultsPerQuery int
	MinReportWords     int
	MaxPromptChars     int
	DedupeByURL        bool
	PDFStrictEncoding  bool
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Model:              getEnv("MODEL", "gemini-1.5-flash"),
		MaxQueries:         getEnvAsInt("MAX_QUERIES", 3),
		MaxResultsPerQuery: getEnvAsInt("MAX_RESULTS_PER_QUERY", 10),
		MinReportWords:     getEnvAsInt("MIN_REPORT_WORDS", 1200),
		MaxPromptChars:     getEnvAsInt("MAX_PROMPT_CHARS", 400000),
		DedupeByURL:        getEnvAsBool("DEDUPE_BY_URL", false),
		PDFStrictEncoding:  getEnvAsBool("PDF_STRICT_ENCODING", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
