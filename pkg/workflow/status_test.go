package workflow

import (
	"testing"

	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChunk(status entity.ChunkStatus) *entity.Chunk {
	return &entity.Chunk{
		Id:     uuid.New(),
		Status: status,
		ExtractedData: entity.FieldMap{
			{Key: "invoice_number", Value: "INV-001"},
			{Key: "total", Value: "1250.00"},
		},
	}
}

func TestApprovePending(t *testing.T) {
	c := newChunk(entity.ChunkStatusPending)
	changed, err := Approve(c)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, entity.ChunkStatusApproved, c.Status)
}

func TestApproveIsIdempotent(t *testing.T) {
	c := newChunk(entity.ChunkStatusApproved)
	changed, err := Approve(c)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, entity.ChunkStatusApproved, c.Status)
}

func TestRedecideRejectedToApproved(t *testing.T) {
	c := newChunk(entity.ChunkStatusRejected)
	changed, err := Approve(c)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, entity.ChunkStatusApproved, c.Status)
}

func TestDecideWhileEditingFails(t *testing.T) {
	c := newChunk(entity.ChunkStatusEditing)

	_, err := Approve(c)
	assert.True(t, apperrors.IsValidation(err))

	_, err = Reject(c)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, entity.ChunkStatusEditing, c.Status)
}

func TestStartEditRecordsPriorStatus(t *testing.T) {
	c := newChunk(entity.ChunkStatusApproved)
	require.NoError(t, StartEdit(c))
	assert.Equal(t, entity.ChunkStatusEditing, c.Status)
	require.NotNil(t, c.StatusBeforeEdit)
	assert.Equal(t, entity.ChunkStatusApproved, *c.StatusBeforeEdit)
}

func TestStartEditTwiceFails(t *testing.T) {
	c := newChunk(entity.ChunkStatusPending)
	require.NoError(t, StartEdit(c))
	assert.True(t, apperrors.IsValidation(StartEdit(c)))
}

func TestCancelEditRestoresPriorStatus(t *testing.T) {
	c := newChunk(entity.ChunkStatusRejected)
	require.NoError(t, StartEdit(c))
	require.NoError(t, CancelEdit(c))
	assert.Equal(t, entity.ChunkStatusRejected, c.Status)
	assert.Nil(t, c.StatusBeforeEdit)
	assert.False(t, c.IsEdited, "cancelling leaves the data untouched")
}

func TestCancelEditOutsideEditingFails(t *testing.T) {
	c := newChunk(entity.ChunkStatusPending)
	assert.True(t, apperrors.IsValidation(CancelEdit(c)))
}

func TestSaveEditSnapshotsOriginalOnce(t *testing.T) {
	c := newChunk(entity.ChunkStatusApproved)
	original := c.ExtractedData.Clone()

	require.NoError(t, StartEdit(c))
	first := entity.FieldMap{{Key: "invoice_number", Value: "INV-002"}}
	require.NoError(t, SaveEdit(c, first))

	assert.Equal(t, entity.ChunkStatusPending, c.Status, "saving reopens the chunk")
	assert.True(t, c.IsEdited)
	assert.Nil(t, c.StatusBeforeEdit)
	require.NotNil(t, c.OriginalData)
	assert.Equal(t, original, *c.OriginalData)

	// A second edit must not overwrite the original snapshot.
	require.NoError(t, StartEdit(c))
	second := entity.FieldMap{{Key: "invoice_number", Value: "INV-003"}}
	require.NoError(t, SaveEdit(c, second))

	assert.Equal(t, original, *c.OriginalData)
	assert.Equal(t, second, c.ExtractedData)
}
