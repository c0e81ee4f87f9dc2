package pipeline

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseQueryList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "Bare JSON array",
			input: `["query 1", "query 2", "query 3"]`,
			want:  []string{"query 1", "query 2", "query 3"},
		},
		{
			name:  "Object with queries key",
			input: `{"queries": ["query 1", "query 2"]}`,
			want:  []string{"query 1", "query 2"},
		},
		{
			name:  "Fenced code block",
			input: "```json\n[\"query 1\", \"query 2\"]\n```",
			want:  []string{"query 1", "query 2"},
		},
		{
			name:  "Fence without language tag",
			input: "```\n{\"queries\": [\"query 1\"]}\n```",
			want:  []string{"query 1"},
		},
		{
			name:  "Surrounding whitespace",
			input: "\n  [\"query 1\"]  \n",
			want:  []string{"query 1"},
		},
		{
			name:  "Blank entries dropped",
			input: `["query 1", "", "  ", "query 2"]`,
			want:  []string{"query 1", "query 2"},
		},
		{
			name:    "Not JSON",
			input:   "here are some queries: foo, bar",
			wantErr: true,
		},
		{
			name:    "JSON but not a list",
			input:   `"just a string"`,
			wantErr: true,
		},
		{
			name:    "Empty list",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "Only blank entries",
			input:   `["", "   "]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQueryList(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("parseQueryList() error = %v, want ErrParse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseQueryList() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseQueryList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeQueriesBounded(t *testing.T) {
	llm := &mockLLM{respond: func(string) (string, error) {
		return `["q1", "q2", "q3", "q4", "q5"]`, nil
	}}

	engine := &Engine{Config: DefaultConfig(), LLM: llm, Logger: discardLogger()}

	queries, err := engine.ComposeQueries(t.Context(), "some topic")
	if err != nil {
		t.Fatalf("ComposeQueries() error = %v", err)
	}
	if len(queries) != engine.Config.MaxQueries {
		t.Errorf("got %d queries, want at most %d", len(queries), engine.Config.MaxQueries)
	}
	for _, q := range queries {
		if q == "" {
			t.Error("query is empty")
		}
	}
}

func TestComposeQueriesUpstreamError(t *testing.T) {
	llm := &mockLLM{respond: func(string) (string, error) {
		return "", errors.New("invalid API key")
	}}
	engine := &Engine{Config: DefaultConfig(), LLM: llm, Logger: discardLogger()}

	_, err := engine.ComposeQueries(t.Context(), "some topic")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("ComposeQueries() error = %v, want ErrUpstream", err)
	}
}

func TestComposeQueriesParseError(t *testing.T) {
	llm := &mockLLM{respond: func(string) (string, error) {
		return "I could not think of any queries.", nil
	}}
	engine := &Engine{Config: DefaultConfig(), LLM: llm, Logger: discardLogger()}

	_, err := engine.ComposeQueries(t.Context(), "some topic")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("ComposeQueries() error = %v, want ErrParse", err)
	}
}
