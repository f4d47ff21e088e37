package service

import (
	"context"
	"testing"
	"time"

	"invoice-review-be/internal/dto"
	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/pkg/apperrors"
	"invoice-review-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentService(factory *memory.Factory) IDocumentService {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	return NewDocumentService(factory, NewPublisherService("PROCESS_DOCUMENT", pubSub), nil)
}

func TestSubmitRejectsEmptyFile(t *testing.T) {
	svc := newDocumentService(memory.NewFactory())

	_, err := svc.Submit(context.Background(), &dto.SubmitDocumentRequest{
		Filename: "empty.png",
		MimeType: "image/png",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestSubmitRejectsUnsupportedMimeType(t *testing.T) {
	svc := newDocumentService(memory.NewFactory())

	_, err := svc.Submit(context.Background(), &dto.SubmitDocumentRequest{
		Filename: "invoice.docx",
		MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Content:  []byte("PK"),
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestShowNotFound(t *testing.T) {
	svc := newDocumentService(memory.NewFactory())

	_, err := svc.Show(context.Background(), uuid.New(), false)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestShowWithChunks(t *testing.T) {
	factory := memory.NewFactory()
	svc := newDocumentService(factory)
	doc, _ := seedDocument(t, factory, entity.ChunkStatusPending, entity.ChunkStatusApproved)

	res, err := svc.Show(context.Background(), doc.Id, true)
	require.NoError(t, err)
	require.Len(t, res.Chunks, 2)
	assert.Equal(t, 1, res.Chunks[0].SequenceNumber)

	res, err = svc.Show(context.Background(), doc.Id, false)
	require.NoError(t, err)
	assert.Empty(t, res.Chunks)
}

func TestListFiltersByStatus(t *testing.T) {
	factory := memory.NewFactory()
	svc := newDocumentService(factory)
	seedDocument(t, factory, entity.ChunkStatusPending)

	rejected := &entity.Document{
		Id:        uuid.New(),
		Filename:  "bad.png",
		Status:    entity.DocumentStatusRejected,
		CreatedAt: time.Now(),
	}
	require.NoError(t, factory.Documents().Create(context.Background(), rejected))

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ready := entity.DocumentStatusReadyForReview
	filtered, err := svc.List(context.Background(), &ready)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, string(ready), filtered[0].Status)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := newDocumentService(memory.NewFactory())

	bogus := entity.DocumentStatus("archived")
	_, err := svc.List(context.Background(), &bogus)
	assert.True(t, apperrors.IsValidation(err))
}

func TestFinalizeAllApproved(t *testing.T) {
	factory := memory.NewFactory()
	svc := newDocumentService(factory)
	doc, _ := seedDocument(t, factory, entity.ChunkStatusApproved, entity.ChunkStatusApproved)

	res, err := svc.Finalize(context.Background(), doc.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.DocumentStatusApproved), res.Status)

	stored, err := factory.Documents().FindById(context.Background(), doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ApprovedChunks)
}

func TestFinalizeWithOpenChunksFails(t *testing.T) {
	factory := memory.NewFactory()
	svc := newDocumentService(factory)
	doc, _ := seedDocument(t, factory, entity.ChunkStatusApproved, entity.ChunkStatusPending)

	_, err := svc.Finalize(context.Background(), doc.Id)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "1 chunk(s) still awaiting review")
}

func TestFinalizeProcessingDocumentFails(t *testing.T) {
	factory := memory.NewFactory()
	svc := newDocumentService(factory)

	doc := &entity.Document{
		Id:        uuid.New(),
		Filename:  "inflight.png",
		Status:    entity.DocumentStatusProcessing,
		CreatedAt: time.Now(),
	}
	require.NoError(t, factory.Documents().Create(context.Background(), doc))

	_, err := svc.Finalize(context.Background(), doc.Id)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDeleteRemovesDocumentAndChunks(t *testing.T) {
	factory := memory.NewFactory()
	svc := newDocumentService(factory)
	doc, chunks := seedDocument(t, factory, entity.ChunkStatusPending)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, doc.Id))

	stored, err := factory.Documents().FindById(ctx, doc.Id)
	require.NoError(t, err)
	assert.Nil(t, stored)

	chunk, err := factory.Chunks().FindById(ctx, chunks[0].Id)
	require.NoError(t, err)
	assert.Nil(t, chunk)
}

func TestDeleteNotFound(t *testing.T) {
	svc := newDocumentService(memory.NewFactory())
	assert.True(t, apperrors.IsNotFound(svc.Delete(context.Background(), uuid.New())))
}

func TestStats(t *testing.T) {
	factory := memory.NewFactory()
	svc := newDocumentService(factory)
	seedDocument(t, factory, entity.ChunkStatusPending, entity.ChunkStatusPending)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.DocumentsToday)
	assert.Equal(t, int64(1), stats.ReadyForReview)
	assert.InDelta(t, 0.9, stats.AverageConfidence, 1e-9)
	assert.Greater(t, stats.AverageProcessingSeconds, 0.0)
}
