package unitofwork

import (
	"context"

	"invoice-review-be/internal/repository/contract"
)

// UnitOfWork groups the repositories of one logical operation. Begin/Commit
// bracket mutations that must be atomic, e.g. materializing a pipeline run's
// chunk batch.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	ChunkRepository() contract.ChunkRepository
}
