package pipeline

import (
	"strings"
	"time"
)

// Config holds runtime configuration for one engine.
type Config struct {
	Model              string
	MaxQueries         int
	MaxResultsPerQuery int
	MinReportWords     int
	MaxPromptChars     int

	// DedupeByURL drops records whose URL was already seen under an
	// earlier query. The upstream index frequently returns the same
	// paper for related queries; keeping duplicates is the historical
	// behavior, so this defaults to off.
	DedupeByURL bool
}

// DefaultConfig returns the engine defaults used by both binaries.
func DefaultConfig() Config {
	return Config{
		Model:              "gemini-1.5-flash",
		MaxQueries:         3,
		MaxResultsPerQuery: 10,
		MinReportWords:     1200,
		MaxPromptChars:     400000,
	}
}

// DocumentRecord is one retrieved paper plus its generated summary.
type DocumentRecord struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// Result is the session-scoped outcome of one pipeline run. It is owned
// by the caller; the engine keeps no state between runs.
type Result struct {
	Topic       string           `json:"topic"`
	Queries     []string         `json:"queries"`
	Records     []DocumentRecord `json:"records"`
	Report      string           `json:"report"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// WordCount reports the whitespace-delimited word count of the report.
func (r *Result) WordCount() int {
	return len(strings.Fields(r.Report))
}

// PDFName derives the download filename from the topic. Topics that
// slugify to nothing fall back to a fixed default.
func (r *Result) PDFName() string {
	slug := slugify(r.Topic)
	if slug == "" {
		return "research_report.pdf"
	}
	return slug + ".pdf"
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
