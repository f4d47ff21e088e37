package service

import (
	"context"
	"testing"
	"time"

	"invoice-review-be/internal/dto"
	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/pkg/apperrors"
	"invoice-review-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDocument(t *testing.T, factory *memory.Factory, chunkStatuses ...entity.ChunkStatus) (*entity.Document, []*entity.Chunk) {
	t.Helper()
	ctx := context.Background()

	doc := &entity.Document{
		Id:          uuid.New(),
		Filename:    "invoice.png",
		Status:      entity.DocumentStatusReadyForReview,
		TotalChunks: len(chunkStatuses),
		CreatedAt:   time.Now(),
	}
	require.NoError(t, factory.Documents().Create(ctx, doc))

	chunks := make([]*entity.Chunk, len(chunkStatuses))
	for i, status := range chunkStatuses {
		chunks[i] = &entity.Chunk{
			Id:             uuid.New(),
			DocumentId:     doc.Id,
			ChunkType:      entity.ChunkTypeLineItem,
			SequenceNumber: i + 1,
			Title:          "Line Item",
			ExtractedData:  entity.FieldMap{{Key: "description", Value: "Widget"}},
			Confidence:     0.9,
			Status:         status,
			CreatedAt:      time.Now(),
		}
	}
	require.NoError(t, factory.Chunks().CreateBatch(ctx, chunks))
	return doc, chunks
}

func TestChunkApproveUpdatesCounts(t *testing.T) {
	factory := memory.NewFactory()
	svc := NewChunkService(factory, nil)
	doc, chunks := seedDocument(t, factory, entity.ChunkStatusPending, entity.ChunkStatusPending)
	ctx := context.Background()

	res, err := svc.Approve(ctx, chunks[0].Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ChunkStatusApproved), res.Status)

	stored, err := factory.Documents().FindById(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ApprovedChunks)
	assert.Equal(t, 0, stored.RejectedChunks)
}

func TestChunkRedecideFlipsCounts(t *testing.T) {
	factory := memory.NewFactory()
	svc := NewChunkService(factory, nil)
	doc, chunks := seedDocument(t, factory, entity.ChunkStatusApproved)
	ctx := context.Background()

	_, err := svc.Reject(ctx, chunks[0].Id)
	require.NoError(t, err)

	stored, err := factory.Documents().FindById(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.ApprovedChunks)
	assert.Equal(t, 1, stored.RejectedChunks)
}

func TestChunkApproveWhileEditingFails(t *testing.T) {
	factory := memory.NewFactory()
	svc := NewChunkService(factory, nil)
	_, chunks := seedDocument(t, factory, entity.ChunkStatusPending)
	ctx := context.Background()

	_, err := svc.StartEdit(ctx, chunks[0].Id)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, chunks[0].Id)
	assert.True(t, apperrors.IsValidation(err))
}

func TestChunkEditCountsChunkAsUndecided(t *testing.T) {
	factory := memory.NewFactory()
	svc := NewChunkService(factory, nil)
	doc, chunks := seedDocument(t, factory, entity.ChunkStatusApproved)
	ctx := context.Background()

	_, err := svc.StartEdit(ctx, chunks[0].Id)
	require.NoError(t, err)

	stored, err := factory.Documents().FindById(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.ApprovedChunks, "an editing chunk leaves the approved tally")

	_, err = svc.CancelEdit(ctx, chunks[0].Id)
	require.NoError(t, err)

	stored, err = factory.Documents().FindById(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ApprovedChunks, "cancel restores the prior decision")
}

func TestChunkUpdateSnapshotsOriginalDataOnce(t *testing.T) {
	factory := memory.NewFactory()
	svc := NewChunkService(factory, nil)
	_, chunks := seedDocument(t, factory, entity.ChunkStatusApproved)
	ctx := context.Background()

	_, err := svc.StartEdit(ctx, chunks[0].Id)
	require.NoError(t, err)

	res, err := svc.Update(ctx, &dto.UpdateChunkRequest{
		Id:            chunks[0].Id,
		ExtractedData: entity.FieldMap{{Key: "description", Value: "Gadget"}},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ChunkStatusPending), res.Status)
	assert.True(t, res.IsEdited)
	require.NotNil(t, res.OriginalData)
	v, _ := res.OriginalData.Get("description")
	assert.Equal(t, "Widget", v)

	// Second edit keeps the first snapshot.
	res, err = svc.Update(ctx, &dto.UpdateChunkRequest{
		Id:            chunks[0].Id,
		ExtractedData: entity.FieldMap{{Key: "description", Value: "Doohickey"}},
	})
	require.NoError(t, err)
	v, _ = res.OriginalData.Get("description")
	assert.Equal(t, "Widget", v)
}

func TestChunkUpdateWithTitle(t *testing.T) {
	factory := memory.NewFactory()
	svc := NewChunkService(factory, nil)
	_, chunks := seedDocument(t, factory, entity.ChunkStatusPending)
	title := "Corrected Line Item"

	res, err := svc.Update(context.Background(), &dto.UpdateChunkRequest{
		Id:            chunks[0].Id,
		Title:         &title,
		ExtractedData: entity.FieldMap{{Key: "description", Value: "Widget"}},
	})
	require.NoError(t, err)
	assert.Equal(t, title, res.Title)
}

func TestChunkUpdateEmptyDataFails(t *testing.T) {
	factory := memory.NewFactory()
	svc := NewChunkService(factory, nil)
	_, chunks := seedDocument(t, factory, entity.ChunkStatusPending)

	_, err := svc.Update(context.Background(), &dto.UpdateChunkRequest{
		Id:            chunks[0].Id,
		ExtractedData: entity.FieldMap{},
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestChunkNotFound(t *testing.T) {
	factory := memory.NewFactory()
	svc := NewChunkService(factory, nil)

	_, err := svc.Approve(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}
