package extraction

import (
	"context"

	"invoice-review-be/internal/entity"
)

// Request carries one encoded page/document for the vision model.
type Request struct {
	Content  []byte
	MimeType string
	Filename string
}

// Chunk is one structured section of the extraction result, in the order the
// model returned it.
type Chunk struct {
	Type        string             `json:"type"`
	Title       string             `json:"title"`
	Data        entity.FieldMap    `json:"data"`
	BoundingBox entity.BoundingBox `json:"bounding_box"`
	Confidence  float64            `json:"confidence"`
}

// Result is the full structured output of one extraction call.
type Result struct {
	ExtractedText string  `json:"extracted_text"`
	Chunks        []Chunk `json:"chunks"`
}

// Provider turns raw document bytes into a structured chunk list. A provider
// owns its own HTTP timeout; callers never wait unbounded.
type Provider interface {
	Extract(ctx context.Context, req Request) (*Result, error)
}

const extractionPrompt = `You are an invoice data extraction system. Analyze the attached scanned document and respond with a single JSON object:
{
  "extracted_text": "<full plain text of the document>",
  "chunks": [
    {
      "type": "<one of: header, invoice_details, bill_to, line_item, totals, payment_terms>",
      "title": "<short human readable section title>",
      "data": { "<field name>": "<field value>", ... },
      "bounding_box": { "x": 0, "y": 0, "width": 100, "height": 10 },
      "confidence": 0.95
    }
  ]
}
List the chunks in reading order. Bounding box values are percentages of the page size. Respond with JSON only, no commentary.`
