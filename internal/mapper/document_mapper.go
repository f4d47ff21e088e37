package mapper

import (
	"time"

	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:                 d.Id,
		Filename:           d.Filename,
		Status:             entity.DocumentStatus(d.Status),
		ProcessingProgress: d.ProcessingProgress,
		TotalChunks:        d.TotalChunks,
		ApprovedChunks:     d.ApprovedChunks,
		RejectedChunks:     d.RejectedChunks,
		ExtractedText:      d.ExtractedText,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:                 d.Id,
		Filename:           d.Filename,
		Status:             string(d.Status),
		ProcessingProgress: d.ProcessingProgress,
		TotalChunks:        d.TotalChunks,
		ApprovedChunks:     d.ApprovedChunks,
		RejectedChunks:     d.RejectedChunks,
		ExtractedText:      d.ExtractedText,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
