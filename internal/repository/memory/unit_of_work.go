package memory

import (
	"context"

	"invoice-review-be/internal/repository/contract"
	"invoice-review-be/internal/repository/unitofwork"
)

// Factory is the in-memory counterpart of the GORM repository factory. All
// units of work share the same underlying stores.
type Factory struct {
	documents *DocumentRepository
	chunks    *ChunkRepository
}

func NewFactory() *Factory {
	return &Factory{
		documents: NewDocumentRepository(),
		chunks:    NewChunkRepository(),
	}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{factory: f}
}

// Direct store access for test seeding.
func (f *Factory) Documents() *DocumentRepository { return f.documents }
func (f *Factory) Chunks() *ChunkRepository       { return f.chunks }

type unitOfWork struct {
	factory *Factory
}

// Begin is a no-op: the memory backend is not transactional. Acceptable for
// tests and single-reviewer setups; documented consistency gap otherwise.
func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.factory.documents
}

func (u *unitOfWork) ChunkRepository() contract.ChunkRepository {
	return u.factory.chunks
}

var _ unitofwork.RepositoryFactory = (*Factory)(nil)
