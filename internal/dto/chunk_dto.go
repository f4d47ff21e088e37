package dto

import (
	"time"

	"invoice-review-be/internal/entity"

	"github.com/google/uuid"
)

type BoundingBoxResponse struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ChunkResponse struct {
	Id             uuid.UUID           `json:"id"`
	DocumentId     uuid.UUID           `json:"document_id"`
	ChunkType      string              `json:"chunk_type"`
	SequenceNumber int                 `json:"sequence_number"`
	Title          string              `json:"title"`
	ExtractedData  entity.FieldMap     `json:"extracted_data"`
	BoundingBox    BoundingBoxResponse `json:"bounding_box"`
	Confidence     float64             `json:"confidence"`
	Status         string              `json:"status"`
	IsEdited       bool                `json:"is_edited"`
	OriginalData   *entity.FieldMap    `json:"original_data,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      *time.Time          `json:"updated_at,omitempty"`
}

// UpdateChunkRequest carries a save-edit: the full replacement field set and
// an optional new title.
type UpdateChunkRequest struct {
	Id            uuid.UUID
	Title         *string         `json:"title"`
	ExtractedData entity.FieldMap `json:"extracted_data" validate:"required"`
}
