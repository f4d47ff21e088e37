// Package workflow holds the chunk approval state machine, the aggregate
// counter and the finalization gate. Everything here is pure: callers load
// entities, apply a transition and persist the result.
package workflow

import (
	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/pkg/apperrors"
)

// Approve moves the chunk to approved. Approving an already-approved chunk is
// a no-op; a rejected chunk may be re-decided directly. Returns whether the
// chunk changed.
func Approve(c *entity.Chunk) (bool, error) {
	return decide(c, entity.ChunkStatusApproved)
}

// Reject mirrors Approve for the rejected status.
func Reject(c *entity.Chunk) (bool, error) {
	return decide(c, entity.ChunkStatusRejected)
}

func decide(c *entity.Chunk, target entity.ChunkStatus) (bool, error) {
	switch c.Status {
	case entity.ChunkStatusEditing:
		return false, apperrors.NewValidation("chunk %s is being edited and cannot be decided", c.Id)
	case entity.ChunkStatusPending, entity.ChunkStatusApproved, entity.ChunkStatusRejected:
		if c.Status == target {
			return false, nil
		}
		c.Status = target
		return true, nil
	default:
		return false, apperrors.NewValidation("chunk %s has unknown status %q", c.Id, c.Status)
	}
}

// StartEdit enters the editing state and records the status to restore on
// cancel. Editing an already-decided chunk is permitted.
func StartEdit(c *entity.Chunk) error {
	switch c.Status {
	case entity.ChunkStatusEditing:
		return apperrors.NewValidation("chunk %s is already being edited", c.Id)
	case entity.ChunkStatusPending, entity.ChunkStatusApproved, entity.ChunkStatusRejected:
		prior := c.Status
		c.StatusBeforeEdit = &prior
		c.Status = entity.ChunkStatusEditing
		return nil
	default:
		return apperrors.NewValidation("chunk %s has unknown status %q", c.Id, c.Status)
	}
}

// CancelEdit restores the status the chunk had when the edit started. Data is
// left untouched.
func CancelEdit(c *entity.Chunk) error {
	if c.Status != entity.ChunkStatusEditing {
		return apperrors.NewValidation("chunk %s is not being edited", c.Id)
	}
	restored := entity.ChunkStatusPending
	if c.StatusBeforeEdit != nil {
		restored = *c.StatusBeforeEdit
	}
	c.Status = restored
	c.StatusBeforeEdit = nil
	return nil
}

// SaveEdit writes the new extracted data and reopens the chunk to pending so
// it must be re-reviewed. The pre-edit snapshot is captured into OriginalData
// on the first edit only.
func SaveEdit(c *entity.Chunk, data entity.FieldMap) error {
	if !c.IsEdited {
		snapshot := c.ExtractedData.Clone()
		c.OriginalData = &snapshot
	}
	c.ExtractedData = data
	c.IsEdited = true
	c.Status = entity.ChunkStatusPending
	c.StatusBeforeEdit = nil
	return nil
}
