package workflow

import (
	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/pkg/apperrors"
)

// EnsureReviewed fails with a validation error while any chunk is still
// pending or editing. Finalization is only allowed once every chunk carries
// an explicit decision.
func EnsureReviewed(chunks []*entity.Chunk) error {
	var open int
	for _, c := range chunks {
		if !c.Status.Decided() {
			open++
		}
	}
	if open > 0 {
		return apperrors.NewValidation("%d chunk(s) still awaiting review", open)
	}
	return nil
}

// Outcome computes the terminal document status: rejected if any chunk was
// rejected, approved otherwise.
func Outcome(chunks []*entity.Chunk) entity.DocumentStatus {
	for _, c := range chunks {
		if c.Status == entity.ChunkStatusRejected {
			return entity.DocumentStatusRejected
		}
	}
	return entity.DocumentStatusApproved
}
