package unitofwork

import "context"

// RepositoryFactory hands out short-lived units of work. Services depend on
// this interface only; the backing store (GORM or in-memory) is an injection
// decision.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
