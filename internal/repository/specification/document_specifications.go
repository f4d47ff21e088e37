package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByDocumentId filters chunks by their owning document
type ByDocumentId struct {
	DocumentId uuid.UUID
}

func (s ByDocumentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentId)
}

// ByStatus filters by a status column value
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// BySequenceOrder orders chunks into their stable review order
type BySequenceOrder struct{}

func (s BySequenceOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("sequence_number ASC")
}
