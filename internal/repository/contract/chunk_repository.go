package contract

import (
	"context"

	"invoice-review-be/internal/entity"

	"github.com/google/uuid"
)

type ChunkRepository interface {
	// CreateBatch inserts the full chunk set of one pipeline run. All or nothing
	// when run inside a unit-of-work transaction.
	CreateBatch(ctx context.Context, chunks []*entity.Chunk) error
	Update(ctx context.Context, chunk *entity.Chunk) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Chunk, error)
	// FindAllByDocumentId returns the document's chunks ordered by sequence number.
	FindAllByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.Chunk, error)
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	// AverageConfidence is the mean extraction confidence across all chunks,
	// used as the dashboard accuracy proxy. Returns 0 with no chunks.
	AverageConfidence(ctx context.Context) (float64, error)
}
