package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Chunk struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId       uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_chunks_document_sequence"`
	ChunkType        string         `gorm:"type:varchar(32);not null"`
	SequenceNumber   int            `gorm:"not null;uniqueIndex:idx_chunks_document_sequence"`
	Title            string         `gorm:"type:varchar(255)"`
	ExtractedData    datatypes.JSON `gorm:"type:jsonb"`
	BoundingBoxX     float64        `gorm:"not null;default:0"`
	BoundingBoxY     float64        `gorm:"not null;default:0"`
	BoundingBoxW     float64        `gorm:"not null;default:0"`
	BoundingBoxH     float64        `gorm:"not null;default:0"`
	Confidence       float64        `gorm:"not null;default:0"`
	Status           string         `gorm:"type:varchar(16);not null;index"`
	IsEdited         bool           `gorm:"not null;default:false"`
	OriginalData     datatypes.JSON `gorm:"type:jsonb"`
	StatusBeforeEdit *string        `gorm:"type:varchar(16)"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
}

func (Chunk) TableName() string {
	return "chunks"
}
