package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsattler/litreview/pkg/pdf"
	"github.com/jsattler/litreview/pkg/pipeline"
)

type stubGenerator struct {
	calls  int
	result *pipeline.Result
	err    error
}

func (g *stubGenerator) Generate(ctx context.Context, apiKey, topic string) (*pipeline.Result, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func testRouter(gen Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(gen, pdf.NewExporter())).RegisterRoutes(r)
	return r
}

func fixtureResult() *pipeline.Result {
	return &pipeline.Result{
		Topic:   "quantum error correction",
		Queries: []string{"q1", "q2"},
		Records: []pipeline.DocumentRecord{
			{Title: "Surface Codes", URL: "http://arxiv.org/abs/1", Summary: "s1"},
		},
		Report:      strings.Repeat("word ", 1300),
		GeneratedAt: time.Now(),
	}
}

func postReport(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReport(t *testing.T) {
	gen := &stubGenerator{result: fixtureResult()}
	r := testRouter(gen)

	w := postReport(t, r, CreateReportRequest{APIKey: "key", Topic: "quantum error correction"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "quantum error correction", resp.Topic)
	assert.Equal(t, "quantum-error-correction.pdf", resp.PDFName)
	assert.GreaterOrEqual(t, resp.WordCount, 1200)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateReportValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateReportRequest
	}{
		{"Missing key", CreateReportRequest{Topic: "topic"}},
		{"Missing topic", CreateReportRequest{APIKey: "key"}},
		{"Whitespace topic", CreateReportRequest{APIKey: "key", Topic: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{result: fixtureResult()}
			r := testRouter(gen)

			w := postReport(t, r, tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			// Rejected before the pipeline (and so any upstream call) ran.
			assert.Equal(t, 0, gen.calls)
		})
	}
}

func TestCreateReportErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Upstream", fmt.Errorf("%w: provider down", pipeline.ErrUpstream), http.StatusBadGateway},
		{"Parse", fmt.Errorf("%w: bad list", pipeline.ErrParse), http.StatusBadGateway},
		{"Context too large", fmt.Errorf("%w: 2M chars", pipeline.ErrContextTooLarge), http.StatusRequestEntityTooLarge},
		{"Invalid input", fmt.Errorf("%w: empty", pipeline.ErrInvalidInput), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRouter(&stubGenerator{err: tt.err})
			w := postReport(t, r, CreateReportRequest{APIKey: "key", Topic: "topic"})
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDownloadPDF(t *testing.T) {
	gen := &stubGenerator{result: fixtureResult()}
	r := testRouter(gen)

	w := postReport(t, r, CreateReportRequest{APIKey: "key", Topic: "quantum error correction"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	dw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/"+created.ID.String()+"/pdf", nil)
	r.ServeHTTP(dw, req)

	require.Equal(t, http.StatusOK, dw.Code)
	assert.Equal(t, "application/pdf", dw.Header().Get("Content-Type"))
	assert.Contains(t, dw.Header().Get("Content-Disposition"), "quantum-error-correction.pdf")
	assert.True(t, bytes.HasPrefix(dw.Body.Bytes(), []byte("%PDF-")), "body is not a PDF")
}

func TestDownloadPDFRenderFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := pdf.NewExporter()
	exporter.Policy = pdf.Strict

	result := fixtureResult()
	result.Report = "Schrödinger bound states " + result.Report

	r := gin.New()
	NewHandler(NewService(&stubGenerator{result: result}, exporter)).RegisterRoutes(r)

	w := postReport(t, r, CreateReportRequest{APIKey: "key", Topic: "quantum error correction"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// The report exists, so a failed render must not masquerade as 404.
	dw := httptest.NewRecorder()
	r.ServeHTTP(dw, httptest.NewRequest(http.MethodGet, "/api/reports/"+created.ID.String()+"/pdf", nil))
	assert.Equal(t, http.StatusInternalServerError, dw.Code)
	assert.Contains(t, dw.Body.String(), "unsupported characters")
}

func TestReportLifecycle(t *testing.T) {
	gen := &stubGenerator{result: fixtureResult()}
	r := testRouter(gen)

	w := postReport(t, r, CreateReportRequest{APIKey: "key", Topic: "topic"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	gw := httptest.NewRecorder()
	r.ServeHTTP(gw, httptest.NewRequest(http.MethodGet, "/api/reports/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusOK, gw.Code)

	del := httptest.NewRecorder()
	r.ServeHTTP(del, httptest.NewRequest(http.MethodDelete, "/api/reports/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, del.Code)

	gone := httptest.NewRecorder()
	r.ServeHTTP(gone, httptest.NewRequest(http.MethodGet, "/api/reports/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestUnknownReport(t *testing.T) {
	r := testRouter(&stubGenerator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/00000000-0000-0000-0000-000000000000/pdf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexPage(t *testing.T) {
	r := testRouter(&stubGenerator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Generate Report")
}
