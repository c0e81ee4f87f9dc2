package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// ComposeReport merges the topic and all records into one writer prompt
// and returns the model's long-form report.
//
// The minimum word count is an instruction to the model, not a
// guarantee: a shortfall is logged, never re-prompted.
func (e *Engine) ComposeReport(ctx context.Context, topic string, records []DocumentRecord) (string, error) {
	prompt := reportPrompt(topic, records, e.Config.MinReportWords)

	if e.Config.MaxPromptChars > 0 && len(prompt) > e.Config.MaxPromptChars {
		return "", fmt.Errorf("%w: report prompt is %d chars (budget %d)",
			ErrContextTooLarge, len(prompt), e.Config.MaxPromptChars)
	}

	resp, err := e.LLM.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, reportSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return "", fmt.Errorf("%w: report generation: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: report generation returned no choices", ErrUpstream)
	}

	report := resp.Choices[0].Content
	if words := len(strings.Fields(report)); words < e.Config.MinReportWords {
		e.Logger.Warn("Report shorter than requested minimum",
			"words", words, "minimum", e.Config.MinReportWords)
	}
	return report, nil
}
