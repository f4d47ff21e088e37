package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubmitDocumentRequest is assembled by the controller from the multipart
// upload; the service never touches transport concerns.
type SubmitDocumentRequest struct {
	Filename string `validate:"required"`
	MimeType string `validate:"required"`
	Size     int64
	Content  []byte `validate:"required"`
}

type SubmitDocumentResponse struct {
	Id                 uuid.UUID `json:"id"`
	Status             string    `json:"status"`
	ProcessingProgress int       `json:"processing_progress"`
}

type DocumentResponse struct {
	Id                 uuid.UUID       `json:"id"`
	Filename           string          `json:"filename"`
	Status             string          `json:"status"`
	ProcessingProgress int             `json:"processing_progress"`
	TotalChunks        int             `json:"total_chunks"`
	ApprovedChunks     int             `json:"approved_chunks"`
	RejectedChunks     int             `json:"rejected_chunks"`
	PendingChunks      int             `json:"pending_chunks"`
	ExtractedText      *string         `json:"extracted_text,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          *time.Time      `json:"updated_at,omitempty"`
	Chunks             []ChunkResponse `json:"chunks,omitempty"`
}

type FinalizeDocumentResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type StatsResponse struct {
	DocumentsToday           int64   `json:"documents_today"`
	ReadyForReview           int64   `json:"ready_for_review"`
	AverageConfidence        float64 `json:"average_confidence"`
	AverageProcessingSeconds float64 `json:"average_processing_seconds"`
}

// ProcessDocumentMessage is the pipeline message published at submit time and
// consumed by the background processing service. Content round-trips through
// JSON as base64.
type ProcessDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type"`
	Content    []byte    `json:"content"`
}
