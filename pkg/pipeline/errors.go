package pipeline

import "errors"

// Failure categories surfaced to callers. Stages wrap these with
// fmt.Errorf("...: %w", ...) so callers match with errors.Is and still
// see the stage-specific detail.
var (
	// ErrInvalidInput means the topic (or key) failed validation before
	// any upstream call was made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream means the model provider or the document index failed
	// (network, auth, rate limit) or returned nothing usable.
	ErrUpstream = errors.New("upstream service failed")

	// ErrParse means the model's response for the query list was not in
	// the expected shape.
	ErrParse = errors.New("malformed model response")

	// ErrContextTooLarge means the report prompt exceeded the configured
	// input budget for the model.
	ErrContextTooLarge = errors.New("prompt exceeds model input budget")
)
