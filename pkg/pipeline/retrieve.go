package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/tmc/langchaingo/llms"

	"github.com/jsattler/litreview/pkg/arxiv"
)

// Retrieve searches the document index for every query and summarizes
// each hit. Queries that fail or match nothing contribute zero records;
// the stage only fails when the aggregate is empty or a summarization
// call errors.
//
// Queries are processed concurrently but results are slotted by query
// index, so aggregation order is query order then retrieval order
// regardless of completion order.
func (e *Engine) Retrieve(ctx context.Context, queries []string) ([]DocumentRecord, error) {
	perQuery := make([][]DocumentRecord, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()

			docs, err := e.Arxiv.Search(ctx, query, e.Config.MaxResultsPerQuery)
			if err != nil {
				// Tolerated: this query contributes nothing.
				e.Logger.Warn("arXiv search failed", "query", query, "error", err)
				return
			}
			e.Logger.Info("arXiv search complete", "query", query, "count", len(docs))

			records := make([]DocumentRecord, 0, len(docs))
			for _, doc := range docs {
				summary, err := e.summarize(ctx, query, doc)
				if err != nil {
					errs[i] = err
					return
				}
				records = append(records, DocumentRecord{
					Title:   doc.Title,
					URL:     doc.URL,
					Summary: summary,
				})
			}
			perQuery[i] = records
		}(i, q)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool)
	var all []DocumentRecord
	for _, records := range perQuery {
		for _, rec := range records {
			if e.Config.DedupeByURL {
				if seen[rec.URL] {
					continue
				}
				seen[rec.URL] = true
			}
			all = append(all, rec)
		}
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("%w: no documents retrieved for any query", ErrUpstream)
	}
	return all, nil
}

// summarize asks the model for a short summary of one document. The
// abstract is bounded through the splitter first so a single oversized
// document cannot blow the prompt.
func (e *Engine) summarize(ctx context.Context, query string, doc arxiv.Document) (string, error) {
	text := doc.Abstract
	if e.Splitter != nil {
		text = e.Splitter.Bound(text)
	}

	resp, err := e.LLM.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, summaryPrompt(text, query)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: summarization for %q: %v", ErrUpstream, doc.Title, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: summarization returned no choices", ErrUpstream)
	}
	return resp.Choices[0].Content, nil
}
