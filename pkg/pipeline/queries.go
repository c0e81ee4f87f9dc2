package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// ComposeQueries turns a free-text topic into a bounded list of search
// queries. The topic is validated before any model call is made.
func (e *Engine) ComposeQueries(ctx context.Context, topic string) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic must not be empty", ErrInvalidInput)
	}

	max := e.Config.MaxQueries
	if max <= 0 {
		max = 3
	}

	resp, err := e.LLM.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, querySystemPrompt+"\n\n# Response Format: \n\n"+queryListSchema(max)),
		llms.TextParts(llms.ChatMessageTypeHuman, queryPrompt(topic, max)),
	}, llms.WithJSONMode())
	if err != nil {
		return nil, fmt.Errorf("%w: query generation: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: model returned no choices", ErrUpstream)
	}

	queries, err := parseQueryList(resp.Choices[0].Content)
	if err != nil {
		return nil, err
	}

	if len(queries) > max {
		queries = queries[:max]
	}

	e.Logger.Info("Generated queries", "topic", topic, "queries", queries)
	return queries, nil
}

// parseQueryList parses the model's query response. Accepted shapes:
//
//	["query 1", "query 2"]
//	{"queries": ["query 1", "query 2"]}
//
// optionally wrapped in a markdown code fence. Anything else, and lists
// that are empty after dropping blank entries, yield ErrParse.
func parseQueryList(raw string) ([]string, error) {
	text := stripCodeFence(raw)

	var list []string
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		var obj struct {
			Queries []string `json:"queries"`
		}
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return nil, fmt.Errorf("%w: expected a JSON list of queries, got: %s", ErrParse, truncate(raw, 200))
		}
		list = obj.Queries
	}

	var queries []string
	for _, q := range list {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: empty query list", ErrParse)
	}
	return queries, nil
}

// stripCodeFence unwraps ```json ... ``` style fences models tend to
// emit even when asked for bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
