// Package memory provides cache-backed repository implementations used by
// tests and by deployments that do not need durable storage. Mutations are
// not transactional: Begin/Commit on the memory unit of work are no-ops.
package memory

import (
	"context"
	"sort"
	"time"

	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type DocumentRepository struct {
	cache *cache.Cache
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func cloneDocument(d *entity.Document) *entity.Document {
	if d == nil {
		return nil
	}
	out := *d
	if d.ExtractedText != nil {
		t := *d.ExtractedText
		out.ExtractedText = &t
	}
	if d.UpdatedAt != nil {
		t := *d.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}

func (r *DocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	if doc.Id == uuid.Nil {
		doc.Id = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	r.cache.Set(doc.Id.String(), cloneDocument(doc), cache.NoExpiration)
	return nil
}

func (r *DocumentRepository) Update(ctx context.Context, doc *entity.Document) error {
	now := time.Now()
	doc.UpdatedAt = &now
	r.cache.Set(doc.Id.String(), cloneDocument(doc), cache.NoExpiration)
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.cache.Delete(id.String())
	return nil
}

func (r *DocumentRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	if x, found := r.cache.Get(id.String()); found {
		return cloneDocument(x.(*entity.Document)), nil
	}
	return nil, nil
}

func (r *DocumentRepository) FindAllRecent(ctx context.Context, status *entity.DocumentStatus) ([]*entity.Document, error) {
	docs := make([]*entity.Document, 0)
	for _, item := range r.cache.Items() {
		d := item.Object.(*entity.Document)
		if status != nil && d.Status != *status {
			continue
		}
		docs = append(docs, cloneDocument(d))
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (r *DocumentRepository) CountByStatus(ctx context.Context, status entity.DocumentStatus) (int64, error) {
	var count int64
	for _, item := range r.cache.Items() {
		if item.Object.(*entity.Document).Status == status {
			count++
		}
	}
	return count, nil
}

func (r *DocumentRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	for _, item := range r.cache.Items() {
		if !item.Object.(*entity.Document).CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

var _ contract.DocumentRepository = (*DocumentRepository)(nil)
