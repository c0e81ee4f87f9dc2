package pipeline

import (
	"fmt"
	"strings"
)

// Prompt builders are pure functions so they can be tested without a
// model client.

const querySystemPrompt = `You are a research planner.
Generate targeted search queries to find objective academic information on the given topic.`

// queryListSchema is appended to the system prompt so the model answers
// in a shape parseQueryList understands.
func queryListSchema(n int) string {
	return fmt.Sprintf(`Return the JSON object directly without any formatting or additional text. Make sure to answer in valid json and include all necessary properties:{
  "type": "object",
  "properties": {
    "queries": {
      "type": "array",
      "items": {
        "type": "string"
      },
      "description": "List of %d distinct search queries"
    }
  },
  "required": ["queries"]
}`, n)
}

func queryPrompt(topic string, n int) string {
	return fmt.Sprintf("Generate %d search queries to find objective information on: %s", n, topic)
}

func summaryPrompt(docText, question string) string {
	return fmt.Sprintf(`%s

-----------
Using the above text, answer in short:

> %s
-----------
If the question cannot be answered, summarize all factual information, numbers, and statistics.`, docText, question)
}

const reportSystemPrompt = `You are an expert academic writer. Generate a high-quality research paper based on the input.`

func reportPrompt(topic string, records []DocumentRecord, minWords int) string {
	var summaries strings.Builder
	var refs strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&summaries, "Title: %s\n\nSUMMARY: %s\n\n", rec.Title, rec.Summary)
		fmt.Fprintf(&refs, "[%s](%s)\n", rec.Title, rec.URL)
	}

	return fmt.Sprintf(`Information:
--------
%s--------

Write a detailed research paper on: "%s".

- Include an in-depth literature review, findings, statistics, and APA citations.
- Ensure at least %d words.
- List references with clickable links from:
%s`, summaries.String(), topic, minWords, refs.String())
}
