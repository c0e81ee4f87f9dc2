package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsattler/litreview/pkg/pdf"
	"github.com/jsattler/litreview/pkg/pipeline"
)

// ErrReportNotFound means the requested report ID has no stored
// result, either because it never existed or was already deleted.
var ErrReportNotFound = errors.New("report not found")

// Generator produces a report result for one topic. The real
// implementation builds a pipeline engine per request; tests stub it.
type Generator interface {
	Generate(ctx context.Context, apiKey, topic string) (*pipeline.Result, error)
}

// EngineGenerator builds a fresh engine around the caller's API key for
// every request, so keys never outlive the request that carried them.
type EngineGenerator struct {
	Cfg pipeline.Config
}

func (g *EngineGenerator) Generate(ctx context.Context, apiKey, topic string) (*pipeline.Result, error) {
	engine, err := pipeline.NewEngine(ctx, g.Cfg, apiKey)
	if err != nil {
		return nil, err
	}
	return engine.Run(ctx, topic)
}

// Service runs the pipeline and keeps finished reports in memory so the
// browser can fetch the PDF after generation. Nothing is persisted:
// the store lives and dies with the process.
type Service struct {
	Gen      Generator
	Exporter *pdf.Exporter

	mu      sync.RWMutex
	reports map[uuid.UUID]*pipeline.Result
}

func NewService(gen Generator, exporter *pdf.Exporter) *Service {
	return &Service{
		Gen:      gen,
		Exporter: exporter,
		reports:  make(map[uuid.UUID]*pipeline.Result),
	}
}

// Report is the API representation of a finished run.
type Report struct {
	ID          uuid.UUID                 `json:"id"`
	Topic       string                    `json:"topic"`
	Queries     []string                  `json:"queries"`
	Records     []pipeline.DocumentRecord `json:"records"`
	Report      string                    `json:"report"`
	WordCount   int                       `json:"word_count"`
	PDFName     string                    `json:"pdf_name"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// CreateReport validates the inputs eagerly, runs the full pipeline
// synchronously, and stores the result for later download.
func (s *Service) CreateReport(ctx context.Context, apiKey, topic string) (*Report, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: API key is required", pipeline.ErrInvalidInput)
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: research topic is required", pipeline.ErrInvalidInput)
	}

	result, err := s.Gen.Generate(ctx, apiKey, topic)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	s.mu.Lock()
	s.reports[id] = result
	s.mu.Unlock()

	return s.toReport(id, result), nil
}

// GetReport returns a stored report by ID.
func (s *Service) GetReport(id uuid.UUID) (*Report, bool) {
	s.mu.RLock()
	result, ok := s.reports[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return s.toReport(id, result), true
}

// RenderPDF renders a stored report into PDF bytes plus its download
// filename. The PDF is built on demand and never cached.
func (s *Service) RenderPDF(id uuid.UUID) (string, []byte, error) {
	s.mu.RLock()
	result, ok := s.reports[id]
	s.mu.RUnlock()
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}

	data, err := s.Exporter.Export(result.Report)
	if err != nil {
		return "", nil, err
	}
	return result.PDFName(), data, nil
}

// DeleteReport drops a stored report. Reports are transient; the UI
// calls this once the PDF has been downloaded.
func (s *Service) DeleteReport(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return false
	}
	delete(s.reports, id)
	return true
}

func (s *Service) toReport(id uuid.UUID, result *pipeline.Result) *Report {
	return &Report{
		ID:          id,
		Topic:       result.Topic,
		Queries:     result.Queries,
		Records:     result.Records,
		Report:      result.Report,
		WordCount:   result.WordCount(),
		PDFName:     result.PDFName(),
		GeneratedAt: result.GeneratedAt,
	}
}
