package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoice-review-be/internal/dto"
	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/pkg/logger"
	"invoice-review-be/internal/repository/memory"
	"invoice-review-be/pkg/extraction"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	result *extraction.Result
	err    error
}

func (p *stubProvider) Extract(ctx context.Context, req extraction.Request) (*extraction.Result, error) {
	return p.result, p.err
}

func sampleResult() *extraction.Result {
	return &extraction.Result{
		ExtractedText: "ACME Corp Invoice INV-001",
		Chunks: []extraction.Chunk{
			{
				Type:  "header",
				Title: "Invoice Header",
				Data: entity.FieldMap{
					{Key: "vendor", Value: "ACME Corp"},
					{Key: "invoice_number", Value: "INV-001"},
				},
				BoundingBox: entity.BoundingBox{X: 0, Y: 0, Width: 100, Height: 12},
				Confidence:  0.97,
			},
			{
				Type:        "totals",
				Title:       "Totals",
				Data:        entity.FieldMap{{Key: "total", Value: "1250.00"}},
				BoundingBox: entity.BoundingBox{X: 55, Y: 80, Width: 45, Height: 10},
				Confidence:  0.91,
			},
		},
	}
}

type pipelineFixture struct {
	factory          *memory.Factory
	documentService  IDocumentService
	chunkService     IChunkService
	processingCancel context.CancelFunc
}

func newPipelineFixture(t *testing.T, provider extraction.Provider) *pipelineFixture {
	t.Helper()

	factory := memory.NewFactory()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisherService := NewPublisherService("PROCESS_DOCUMENT", pubSub)
	processingService := NewProcessingService(
		"PROCESS_DOCUMENT",
		pubSub,
		factory,
		provider,
		nil,
		logger.NewNopLogger(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, processingService.Consume(ctx))
	t.Cleanup(cancel)

	return &pipelineFixture{
		factory:          factory,
		documentService:  NewDocumentService(factory, publisherService, nil),
		chunkService:     NewChunkService(factory, nil),
		processingCancel: cancel,
	}
}

func (f *pipelineFixture) submit(t *testing.T) *dto.SubmitDocumentResponse {
	t.Helper()
	res, err := f.documentService.Submit(context.Background(), &dto.SubmitDocumentRequest{
		Filename: "invoice.png",
		MimeType: "image/png",
		Size:     4,
		Content:  []byte{0x89, 'P', 'N', 'G'},
	})
	require.NoError(t, err)
	return res
}

func (f *pipelineFixture) waitForStatus(t *testing.T, res *dto.SubmitDocumentResponse, status entity.DocumentStatus) *entity.Document {
	t.Helper()
	var doc *entity.Document
	require.Eventually(t, func() bool {
		d, err := f.factory.Documents().FindById(context.Background(), res.Id)
		if err != nil || d == nil {
			return false
		}
		doc = d
		return d.Status == status
	}, 3*time.Second, 10*time.Millisecond)
	return doc
}

func TestPipelineSuccess(t *testing.T) {
	f := newPipelineFixture(t, &stubProvider{result: sampleResult()})

	res := f.submit(t)
	assert.Equal(t, string(entity.DocumentStatusProcessing), res.Status)
	assert.Equal(t, 10, res.ProcessingProgress)

	doc := f.waitForStatus(t, res, entity.DocumentStatusReadyForReview)
	assert.Equal(t, 100, doc.ProcessingProgress)
	assert.Equal(t, 2, doc.TotalChunks)
	assert.Equal(t, 0, doc.ApprovedChunks)
	assert.Equal(t, 0, doc.RejectedChunks)
	require.NotNil(t, doc.ExtractedText)
	assert.Equal(t, "ACME Corp Invoice INV-001", *doc.ExtractedText)

	chunks, err := f.factory.Chunks().FindAllByDocumentId(context.Background(), res.Id)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].SequenceNumber)
	assert.Equal(t, 2, chunks[1].SequenceNumber)
	for _, c := range chunks {
		assert.Equal(t, entity.ChunkStatusPending, c.Status)
		assert.False(t, c.IsEdited)
		assert.Nil(t, c.OriginalData)
	}
	assert.Equal(t, entity.ChunkTypeHeader, chunks[0].ChunkType)
	assert.Equal(t, entity.ChunkTypeTotals, chunks[1].ChunkType)
}

func TestPipelineExtractionFailure(t *testing.T) {
	f := newPipelineFixture(t, &stubProvider{err: errors.New("model unavailable")})

	res := f.submit(t)
	doc := f.waitForStatus(t, res, entity.DocumentStatusRejected)
	assert.Equal(t, 0, doc.ProcessingProgress)
	assert.Equal(t, 0, doc.TotalChunks)

	chunks, err := f.factory.Chunks().FindAllByDocumentId(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Empty(t, chunks, "a failed run leaves no partial chunks behind")
}

func TestPipelineClampsProviderNoise(t *testing.T) {
	noisy := sampleResult()
	noisy.Chunks[0].Confidence = 1.3
	noisy.Chunks[0].BoundingBox = entity.BoundingBox{X: -4, Y: 0, Width: 104, Height: 12}
	f := newPipelineFixture(t, &stubProvider{result: noisy})

	res := f.submit(t)
	f.waitForStatus(t, res, entity.DocumentStatusReadyForReview)

	chunks, err := f.factory.Chunks().FindAllByDocumentId(context.Background(), res.Id)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 1.0, chunks[0].Confidence)
	assert.Equal(t, 0.0, chunks[0].BoundingBox.X)
	assert.Equal(t, 100.0, chunks[0].BoundingBox.Width)
}

func TestPipelineUnknownChunkTypeFallsBack(t *testing.T) {
	odd := sampleResult()
	odd.Chunks[0].Type = "mystery_section"
	f := newPipelineFixture(t, &stubProvider{result: odd})

	res := f.submit(t)
	f.waitForStatus(t, res, entity.DocumentStatusReadyForReview)

	chunks, err := f.factory.Chunks().FindAllByDocumentId(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.ChunkTypeLineItem, chunks[0].ChunkType)
}

// Runs a full review session against the pipeline output: approve, edit,
// re-review, finalize.
func TestReviewFlowEndToEnd(t *testing.T) {
	f := newPipelineFixture(t, &stubProvider{result: sampleResult()})
	ctx := context.Background()

	res := f.submit(t)
	f.waitForStatus(t, res, entity.DocumentStatusReadyForReview)

	chunks, err := f.factory.Chunks().FindAllByDocumentId(ctx, res.Id)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	// Approve the header.
	_, err = f.chunkService.Approve(ctx, chunks[0].Id)
	require.NoError(t, err)

	// Finalize must fail while the totals chunk is open.
	_, err = f.documentService.Finalize(ctx, res.Id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "awaiting review")

	// Edit the totals chunk, then reject it.
	_, err = f.chunkService.StartEdit(ctx, chunks[1].Id)
	require.NoError(t, err)
	_, err = f.chunkService.Update(ctx, &dto.UpdateChunkRequest{
		Id:            chunks[1].Id,
		ExtractedData: entity.FieldMap{{Key: "total", Value: "1300.00"}},
	})
	require.NoError(t, err)
	updated, err := f.factory.Chunks().FindById(ctx, chunks[1].Id)
	require.NoError(t, err)
	assert.Equal(t, entity.ChunkStatusPending, updated.Status, "saving an edit reopens the chunk")
	require.NotNil(t, updated.OriginalData)

	_, err = f.chunkService.Reject(ctx, chunks[1].Id)
	require.NoError(t, err)

	// One rejection forces the rejected outcome.
	final, err := f.documentService.Finalize(ctx, res.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.DocumentStatusRejected), final.Status)

	doc, err := f.factory.Documents().FindById(ctx, res.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.ApprovedChunks)
	assert.Equal(t, 1, doc.RejectedChunks)

	// Terminal documents cannot be re-finalized.
	_, err = f.documentService.Finalize(ctx, res.Id)
	assert.Error(t, err)
}
