package contract

import (
	"context"
	"time"

	"invoice-review-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	Update(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	// FindAllRecent lists documents newest first, optionally filtered by status.
	FindAllRecent(ctx context.Context, status *entity.DocumentStatus) ([]*entity.Document, error)
	CountByStatus(ctx context.Context, status entity.DocumentStatus) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
