package service

import (
	"context"
	"encoding/json"
	"time"

	"invoice-review-be/internal/dto"
	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/pkg/logger"
	"invoice-review-be/internal/repository/unitofwork"
	"invoice-review-be/pkg/extraction"
	pktNats "invoice-review-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IProcessingService runs the background extraction pipeline. Consume attaches
// the worker to the submission topic and returns immediately.
type IProcessingService interface {
	Consume(ctx context.Context) error
}

type processingService struct {
	topicName      string
	pubSub         *gochannel.GoChannel
	uowFactory     unitofwork.RepositoryFactory
	provider       extraction.Provider
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewProcessingService(
	topicName string,
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	provider extraction.Provider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IProcessingService {
	return &processingService{
		topicName:      topicName,
		pubSub:         pubSub,
		uowFactory:     uowFactory,
		provider:       provider,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (ps *processingService) Consume(ctx context.Context) error {
	messages, err := ps.pubSub.Subscribe(ctx, ps.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ps.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage runs one pipeline pass. A run is not retried: any failure
// settles the document as rejected, so the message is always Acked.
func (ps *processingService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.ProcessDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ps.logger.Error("ProcessingService", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		return
	}

	uow := ps.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindById(ctx, payload.DocumentId)
	if err != nil {
		ps.logger.Error("ProcessingService", "Failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId, "error": err.Error(),
		})
		return
	}
	if doc == nil {
		// Deleted between submit and pickup.
		ps.logger.Warn("ProcessingService", "Document vanished before processing", map[string]interface{}{
			"document_id": payload.DocumentId,
		})
		return
	}

	// Stage: normalization. The provider takes raw bytes, so this stage only
	// marks that the upload was accepted and decoded.
	if err := ps.advance(ctx, uow, doc, 25); err != nil {
		return
	}

	// Stage: extraction.
	if err := ps.advance(ctx, uow, doc, 50); err != nil {
		return
	}
	result, err := ps.provider.Extract(ctx, extraction.Request{
		Content:  payload.Content,
		MimeType: payload.MimeType,
		Filename: payload.Filename,
	})
	if err != nil {
		ps.logger.Error("ProcessingService", "Extraction failed", map[string]interface{}{
			"document_id": doc.Id, "error": err.Error(),
		})
		ps.markFailed(ctx, uow, doc)
		return
	}

	// Stage: chunk materialization.
	chunks := ps.buildChunks(doc.Id, result)
	if err := uow.Begin(ctx); err != nil {
		ps.logger.Error("ProcessingService", "Failed to begin transaction", map[string]interface{}{
			"document_id": doc.Id, "error": err.Error(),
		})
		ps.markFailed(ctx, uow, doc)
		return
	}
	if err := uow.ChunkRepository().CreateBatch(ctx, chunks); err != nil {
		_ = uow.Rollback()
		ps.logger.Error("ProcessingService", "Failed to persist chunks", map[string]interface{}{
			"document_id": doc.Id, "error": err.Error(),
		})
		ps.markFailed(ctx, uow, doc)
		return
	}
	if err := uow.Commit(); err != nil {
		ps.logger.Error("ProcessingService", "Failed to commit chunks", map[string]interface{}{
			"document_id": doc.Id, "error": err.Error(),
		})
		ps.markFailed(ctx, uow, doc)
		return
	}
	if err := ps.advance(ctx, uow, doc, 75); err != nil {
		return
	}

	// Stage: completion. All chunks open as pending, so both counters start
	// at zero.
	doc.Status = entity.DocumentStatusReadyForReview
	doc.ProcessingProgress = 100
	doc.ExtractedText = &result.ExtractedText
	doc.TotalChunks = len(chunks)
	doc.ApprovedChunks = 0
	doc.RejectedChunks = 0
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		ps.logger.Error("ProcessingService", "Failed to complete document", map[string]interface{}{
			"document_id": doc.Id, "error": err.Error(),
		})
		ps.markFailed(ctx, uow, doc)
		return
	}

	ps.logger.Info("ProcessingService", "Document ready for review", map[string]interface{}{
		"document_id": doc.Id, "chunks": len(chunks),
	})
	publishEvent(ctx, ps.eventPublisher, EventDocumentReadyForReview, map[string]interface{}{
		"document_id":  doc.Id,
		"total_chunks": len(chunks),
	})
}

func (ps *processingService) advance(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, progress int) error {
	doc.ProcessingProgress = progress
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		ps.logger.Error("ProcessingService", "Failed to advance progress", map[string]interface{}{
			"document_id": doc.Id, "progress": progress, "error": err.Error(),
		})
		ps.markFailed(ctx, uow, doc)
		return err
	}
	return nil
}

// buildChunks materializes the provider output into persistable chunks.
// Out-of-range model output is clamped rather than rejected: a confidence of
// 1.3 or a box edge at 104% is noise, not a reason to fail the run.
func (ps *processingService) buildChunks(documentId uuid.UUID, result *extraction.Result) []*entity.Chunk {
	chunks := make([]*entity.Chunk, 0, len(result.Chunks))
	for i, c := range result.Chunks {
		chunkType := entity.ChunkType(c.Type)
		if !chunkType.Valid() {
			ps.logger.Warn("ProcessingService", "Unknown chunk type from provider", map[string]interface{}{
				"document_id": documentId, "type": c.Type,
			})
			chunkType = entity.ChunkTypeLineItem
		}
		chunks = append(chunks, &entity.Chunk{
			Id:             uuid.New(),
			DocumentId:     documentId,
			ChunkType:      chunkType,
			SequenceNumber: i + 1,
			Title:          c.Title,
			ExtractedData:  c.Data,
			BoundingBox: entity.BoundingBox{
				X:      clamp(c.BoundingBox.X, 0, 100),
				Y:      clamp(c.BoundingBox.Y, 0, 100),
				Width:  clamp(c.BoundingBox.Width, 0, 100),
				Height: clamp(c.BoundingBox.Height, 0, 100),
			},
			Confidence: clamp(c.Confidence, 0, 1),
			Status:     entity.ChunkStatusPending,
			CreatedAt:  time.Now(),
		})
	}
	return chunks
}

// markFailed settles a failed run: any chunks written so far are removed and
// the document lands terminal with its progress cleared.
func (ps *processingService) markFailed(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document) {
	if err := uow.ChunkRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		ps.logger.Error("ProcessingService", "Failed to clean up chunks of failed run", map[string]interface{}{
			"document_id": doc.Id, "error": err.Error(),
		})
	}
	doc.Status = entity.DocumentStatusRejected
	doc.ProcessingProgress = 0
	doc.TotalChunks = 0
	doc.ApprovedChunks = 0
	doc.RejectedChunks = 0
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		ps.logger.Error("ProcessingService", "Failed to mark document rejected", map[string]interface{}{
			"document_id": doc.Id, "error": err.Error(),
		})
		return
	}
	publishEvent(ctx, ps.eventPublisher, EventDocumentProcessingFailed, map[string]interface{}{
		"document_id": doc.Id,
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
