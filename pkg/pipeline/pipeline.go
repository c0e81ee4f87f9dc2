package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/jsattler/litreview/pkg/arxiv"
	"github.com/jsattler/litreview/pkg/clients"
	"github.com/jsattler/litreview/pkg/splitter"
)

// Engine runs the four report stages in sequence: query composition,
// retrieval and summarization, report composition, and (via pkg/pdf,
// owned by the caller) export. One engine serves one run; it holds no
// cross-run state.
type Engine struct {
	Config   Config
	LLM      llms.Model
	Arxiv    *arxiv.Client
	Splitter *splitter.TextSplitter
	Logger   *slog.Logger
}

// NewEngine builds an engine around the user-supplied API key. The key
// is held only by the model client for the lifetime of the engine.
func NewEngine(ctx context.Context, cfg Config, apiKey string) (*Engine, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: API key must not be empty", ErrInvalidInput)
	}

	llm, err := clients.GoogleAI(ctx, apiKey, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to init LLM: %w", err)
	}

	return &Engine{
		Config:   cfg,
		LLM:      llm,
		Arxiv:    arxiv.NewClient(),
		Splitter: splitter.NewRecursiveCharacterTextSplitter(4000, 0),
		Logger:   slog.Default(),
	}, nil
}

// Run executes the pipeline for one topic. Control flows strictly
// forward; the first failing stage halts the run. Returned errors wrap
// one of the package sentinels, so callers match with errors.Is.
func (e *Engine) Run(ctx context.Context, topic string) (*Result, error) {
	topic = strings.TrimSpace(topic)

	queries, err := e.ComposeQueries(ctx, topic)
	if err != nil {
		return nil, err
	}

	records, err := e.Retrieve(ctx, queries)
	if err != nil {
		return nil, err
	}
	e.Logger.Info("Retrieval complete", "records", len(records))

	report, err := e.ComposeReport(ctx, topic, records)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Topic:       topic,
		Queries:     queries,
		Records:     records,
		Report:      report,
		GeneratedAt: time.Now(),
	}
	e.Logger.Info("Report generated", "topic", topic, "words", result.WordCount())
	return result, nil
}
