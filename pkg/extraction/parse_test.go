package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormed = `{
	"extracted_text": "ACME Corp Invoice INV-001",
	"chunks": [
		{
			"type": "header",
			"title": "Invoice Header",
			"data": {"vendor": "ACME Corp", "invoice_number": "INV-001"},
			"bounding_box": {"x": 0, "y": 0, "width": 100, "height": 12},
			"confidence": 0.97
		},
		{
			"type": "totals",
			"title": "Totals",
			"data": {"total": "1250.00"},
			"bounding_box": {"x": 55, "y": 80, "width": 45, "height": 10},
			"confidence": 0.91
		}
	]
}`

func TestParseResult(t *testing.T) {
	res, err := ParseResult([]byte(wellFormed))
	require.NoError(t, err)

	assert.Equal(t, "ACME Corp Invoice INV-001", res.ExtractedText)
	require.Len(t, res.Chunks, 2)

	first := res.Chunks[0]
	assert.Equal(t, "header", first.Type)
	assert.Equal(t, "Invoice Header", first.Title)
	assert.Equal(t, 0.97, first.Confidence)
	assert.Equal(t, 12.0, first.BoundingBox.Height)

	vendor, ok := first.Data.Get("vendor")
	require.True(t, ok)
	assert.Equal(t, "ACME Corp", vendor)
}

func TestParseResultPreservesFieldOrder(t *testing.T) {
	res, err := ParseResult([]byte(wellFormed))
	require.NoError(t, err)

	data := res.Chunks[0].Data
	require.Len(t, data, 2)
	assert.Equal(t, "vendor", data[0].Key)
	assert.Equal(t, "invoice_number", data[1].Key)
}

func TestParseResultStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + wellFormed + "\n```"
	res, err := ParseResult([]byte(fenced))
	require.NoError(t, err)
	assert.Len(t, res.Chunks, 2)
}

func TestParseResultMissingChunks(t *testing.T) {
	_, err := ParseResult([]byte(`{"extracted_text": "no sections found"}`))
	assert.ErrorIs(t, err, ErrMalformedResult)
}

func TestParseResultChunksNotAnArray(t *testing.T) {
	_, err := ParseResult([]byte(`{"extracted_text": "x", "chunks": {"oops": true}}`))
	assert.ErrorIs(t, err, ErrMalformedResult)
}

func TestParseResultNotJSON(t *testing.T) {
	_, err := ParseResult([]byte("I could not read the document, sorry."))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedResult)
}
