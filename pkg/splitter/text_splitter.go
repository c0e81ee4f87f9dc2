package splitter

import (
	"github.com/tmc/langchaingo/textsplitter"
)

// TextSplitter wraps the langchaingo recursive character splitter. The
// pipeline uses it to bound document text before it is embedded in a
// summarization prompt.
type TextSplitter struct {
	splitter textsplitter.TextSplitter
}

// NewRecursiveCharacterTextSplitter creates a new recursive character text splitter
func NewRecursiveCharacterTextSplitter(chunkSize, chunkOverlap int) *TextSplitter {
	ts := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	return &TextSplitter{splitter: ts}
}

// SplitText splits text into chunks
func (ts *TextSplitter) SplitText(text string) ([]string, error) {
	return ts.splitter.SplitText(text)
}

// Bound returns the first chunk of text, or the text unchanged when it
// already fits in one chunk or cannot be split.
func (ts *TextSplitter) Bound(text string) string {
	chunks, err := ts.SplitText(text)
	if err != nil || len(chunks) == 0 {
		return text
	}
	return chunks[0]
}
