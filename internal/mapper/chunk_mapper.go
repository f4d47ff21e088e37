package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/model"

	"gorm.io/datatypes"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

// ToEntity can fail on corrupt JSONB payloads, unlike the document mapper,
// so it returns an error instead of guessing.
func (m *ChunkMapper) ToEntity(c *model.Chunk) (*entity.Chunk, error) {
	if c == nil {
		return nil, nil
	}

	var extracted entity.FieldMap
	if len(c.ExtractedData) > 0 {
		if err := json.Unmarshal(c.ExtractedData, &extracted); err != nil {
			return nil, fmt.Errorf("chunk %s: decode extracted_data: %w", c.Id, err)
		}
	}

	var original *entity.FieldMap
	if len(c.OriginalData) > 0 {
		var fm entity.FieldMap
		if err := json.Unmarshal(c.OriginalData, &fm); err != nil {
			return nil, fmt.Errorf("chunk %s: decode original_data: %w", c.Id, err)
		}
		original = &fm
	}

	var statusBeforeEdit *entity.ChunkStatus
	if c.StatusBeforeEdit != nil {
		s := entity.ChunkStatus(*c.StatusBeforeEdit)
		statusBeforeEdit = &s
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Chunk{
		Id:             c.Id,
		DocumentId:     c.DocumentId,
		ChunkType:      entity.ChunkType(c.ChunkType),
		SequenceNumber: c.SequenceNumber,
		Title:          c.Title,
		ExtractedData:  extracted,
		BoundingBox: entity.BoundingBox{
			X:      c.BoundingBoxX,
			Y:      c.BoundingBoxY,
			Width:  c.BoundingBoxW,
			Height: c.BoundingBoxH,
		},
		Confidence:       c.Confidence,
		Status:           entity.ChunkStatus(c.Status),
		IsEdited:         c.IsEdited,
		OriginalData:     original,
		StatusBeforeEdit: statusBeforeEdit,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        updatedAt,
	}, nil
}

func (m *ChunkMapper) ToModel(c *entity.Chunk) (*model.Chunk, error) {
	if c == nil {
		return nil, nil
	}

	extracted, err := json.Marshal(c.ExtractedData)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: encode extracted_data: %w", c.Id, err)
	}

	var original datatypes.JSON
	if c.OriginalData != nil {
		b, err := json.Marshal(c.OriginalData)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: encode original_data: %w", c.Id, err)
		}
		original = datatypes.JSON(b)
	}

	var statusBeforeEdit *string
	if c.StatusBeforeEdit != nil {
		s := string(*c.StatusBeforeEdit)
		statusBeforeEdit = &s
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Chunk{
		Id:               c.Id,
		DocumentId:       c.DocumentId,
		ChunkType:        string(c.ChunkType),
		SequenceNumber:   c.SequenceNumber,
		Title:            c.Title,
		ExtractedData:    datatypes.JSON(extracted),
		BoundingBoxX:     c.BoundingBox.X,
		BoundingBoxY:     c.BoundingBox.Y,
		BoundingBoxW:     c.BoundingBox.Width,
		BoundingBoxH:     c.BoundingBox.Height,
		Confidence:       c.Confidence,
		Status:           string(c.Status),
		IsEdited:         c.IsEdited,
		OriginalData:     original,
		StatusBeforeEdit: statusBeforeEdit,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        updatedAt,
	}, nil
}

func (m *ChunkMapper) ToEntities(chunks []*model.Chunk) ([]*entity.Chunk, error) {
	entities := make([]*entity.Chunk, len(chunks))
	for i, c := range chunks {
		e, err := m.ToEntity(c)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

func (m *ChunkMapper) ToModels(chunks []*entity.Chunk) ([]*model.Chunk, error) {
	models := make([]*model.Chunk, len(chunks))
	for i, c := range chunks {
		mod, err := m.ToModel(c)
		if err != nil {
			return nil, err
		}
		models[i] = mod
	}
	return models, nil
}
