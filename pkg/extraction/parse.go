package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResult marks an extraction payload whose chunk list is missing
// or not a sequence. The pipeline treats it as a terminal run failure.
var ErrMalformedResult = errors.New("extraction result has no well-formed chunk list")

type rawResult struct {
	ExtractedText string          `json:"extracted_text"`
	Chunks        json.RawMessage `json:"chunks"`
}

// ParseResult decodes a model response into a Result. Markdown code fences
// around the JSON are tolerated; a missing or non-array chunk list is
// reported as ErrMalformedResult.
func ParseResult(payload []byte) (*Result, error) {
	cleaned := stripFences(string(payload))

	var raw rawResult
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}
	if len(raw.Chunks) == 0 {
		return nil, ErrMalformedResult
	}

	var chunks []Chunk
	if err := json.Unmarshal(raw.Chunks, &chunks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}

	return &Result{
		ExtractedText: raw.ExtractedText,
		Chunks:        chunks,
	}, nil
}

// stripFences removes a leading/trailing markdown code fence, which vision
// models emit even when asked for raw JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
