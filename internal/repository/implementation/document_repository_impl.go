package implementation

import (
	"context"
	"errors"
	"time"

	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/mapper"
	"invoice-review-be/internal/model"
	"invoice-review-be/internal/repository/contract"
	"invoice-review-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, doc *entity.Document) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) Update(ctx context.Context, doc *entity.Document) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Document{}, id).Error
}

func (r *DocumentRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var m model.Document
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRepositoryImpl) FindAllRecent(ctx context.Context, status *entity.DocumentStatus) ([]*entity.Document, error) {
	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != nil {
		specs = append(specs, specification.ByStatus{Status: string(*status)})
	}

	var models []*model.Document
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) CountByStatus(ctx context.Context, status entity.DocumentStatus) (int64, error) {
	var count int64
	query := r.applySpecifications(
		r.db.WithContext(ctx).Model(&model.Document{}),
		specification.ByStatus{Status: string(status)},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DocumentRepositoryImpl) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	query := r.applySpecifications(
		r.db.WithContext(ctx).Model(&model.Document{}),
		specification.CreatedSince{Since: since},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
