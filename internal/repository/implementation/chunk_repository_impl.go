package implementation

import (
	"context"
	"errors"

	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/mapper"
	"invoice-review-be/internal/model"
	"invoice-review-be/internal/repository/contract"
	"invoice-review-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkRepositoryImpl) CreateBatch(ctx context.Context, chunks []*entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models, err := r.mapper.ToModels(chunks)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return err
		}
		*chunks[i] = *e
	}
	return nil
}

func (r *ChunkRepositoryImpl) Update(ctx context.Context, chunk *entity.Chunk) error {
	m, err := r.mapper.ToModel(chunk)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*chunk = *e
	return nil
}

func (r *ChunkRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Chunk, error) {
	var m model.Chunk
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ChunkRepositoryImpl) FindAllByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.Chunk, error) {
	var models []*model.Chunk
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByDocumentId{DocumentId: documentId},
		specification.BySequenceOrder{},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *ChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.Chunk{}).Error
}

func (r *ChunkRepositoryImpl) AverageConfidence(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.Chunk{}).
		Select("AVG(confidence)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
