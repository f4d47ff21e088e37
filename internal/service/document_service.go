package service

import (
	"context"
	"encoding/json"
	"time"

	"invoice-review-be/internal/dto"
	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/pkg/apperrors"
	"invoice-review-be/internal/repository/unitofwork"
	pktNats "invoice-review-be/pkg/nats"
	"invoice-review-be/pkg/workflow"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// The source system never measured per-document wall time, so the dashboard
// reports this fixed figure until real timing lands.
const averageProcessingSeconds = 2.4

const statsCacheKey = "dashboard_stats"

type IDocumentService interface {
	Submit(ctx context.Context, req *dto.SubmitDocumentRequest) (*dto.SubmitDocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID, includeChunks bool) (*dto.DocumentResponse, error)
	List(ctx context.Context, status *entity.DocumentStatus) ([]*dto.DocumentResponse, error)
	Finalize(ctx context.Context, id uuid.UUID) (*dto.FinalizeDocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	statsCache       *cache.Cache
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		statsCache:       cache.New(30*time.Second, time.Minute),
	}
}

var supportedMimeTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"application/pdf": true,
}

// Submit creates the document synchronously and hands the heavy lifting to
// the background pipeline. The caller polls the document to observe progress.
func (s *documentService) Submit(ctx context.Context, req *dto.SubmitDocumentRequest) (*dto.SubmitDocumentResponse, error) {
	if len(req.Content) == 0 {
		return nil, apperrors.NewValidation("uploaded file is empty")
	}
	if !supportedMimeTypes[req.MimeType] {
		return nil, apperrors.NewValidation("unsupported file type %q", req.MimeType)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc := entity.Document{
		Id:                 uuid.New(),
		Filename:           req.Filename,
		Status:             entity.DocumentStatusProcessing,
		ProcessingProgress: 10,
		CreatedAt:          time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	msgPayload := dto.ProcessDocumentMessage{
		DocumentId: doc.Id,
		Filename:   req.Filename,
		MimeType:   req.MimeType,
		Content:    req.Content,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		// The run will never start; settle the document instead of leaving it
		// stuck in processing.
		doc.Status = entity.DocumentStatusRejected
		doc.ProcessingProgress = 0
		_ = uow.DocumentRepository().Update(ctx, &doc)
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, EventDocumentSubmitted, map[string]interface{}{
		"document_id": doc.Id,
		"filename":    doc.Filename,
	})

	return &dto.SubmitDocumentResponse{
		Id:                 doc.Id,
		Status:             string(doc.Status),
		ProcessingProgress: doc.ProcessingProgress,
	}, nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID, includeChunks bool) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NewNotFound("document", id.String())
	}

	res := documentToResponse(doc)
	if includeChunks {
		chunks, err := uow.ChunkRepository().FindAllByDocumentId(ctx, id)
		if err != nil {
			return nil, err
		}
		res.Chunks = make([]dto.ChunkResponse, len(chunks))
		for i, c := range chunks {
			res.Chunks[i] = *chunkToResponse(c)
		}
	}
	return res, nil
}

func (s *documentService) List(ctx context.Context, status *entity.DocumentStatus) ([]*dto.DocumentResponse, error) {
	if status != nil && !status.Valid() {
		return nil, apperrors.NewValidation("unknown document status %q", *status)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAllRecent(ctx, status)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.DocumentResponse, len(docs))
	for i, d := range docs {
		response[i] = documentToResponse(d)
	}
	return response, nil
}

// Finalize closes out a fully reviewed document. Re-finalizing a terminal
// document is rejected rather than treated as a no-op so that double submits
// from a stale UI are surfaced.
func (s *documentService) Finalize(ctx context.Context, id uuid.UUID) (*dto.FinalizeDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NewNotFound("document", id.String())
	}
	if doc.Status.Terminal() {
		return nil, apperrors.NewValidation("document %s is already finalized", id)
	}
	if doc.Status != entity.DocumentStatusReadyForReview {
		return nil, apperrors.NewValidation("document %s is not ready for review", id)
	}

	chunks, err := uow.ChunkRepository().FindAllByDocumentId(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := workflow.EnsureReviewed(chunks); err != nil {
		return nil, err
	}

	doc.Status = workflow.Outcome(chunks)
	workflow.ApplyTally(doc, chunks)
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, EventDocumentFinalized, map[string]interface{}{
		"document_id": doc.Id,
		"status":      string(doc.Status),
	})

	return &dto.FinalizeDocumentResponse{
		Id:     doc.Id,
		Status: string(doc.Status),
	}, nil
}

// Delete removes a document and, because the document exclusively owns its
// chunks, the whole chunk set with it.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindById(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NewNotFound("document", id.String())
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *documentService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	if x, found := s.statsCache.Get(statsCacheKey); found {
		return x.(*dto.StatsResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := uow.DocumentRepository().CountCreatedSince(ctx, midnight)
	if err != nil {
		return nil, err
	}
	readyForReview, err := uow.DocumentRepository().CountByStatus(ctx, entity.DocumentStatusReadyForReview)
	if err != nil {
		return nil, err
	}
	avgConfidence, err := uow.ChunkRepository().AverageConfidence(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.StatsResponse{
		DocumentsToday:           today,
		ReadyForReview:           readyForReview,
		AverageConfidence:        avgConfidence,
		AverageProcessingSeconds: averageProcessingSeconds,
	}
	s.statsCache.Set(statsCacheKey, stats, cache.DefaultExpiration)
	return stats, nil
}

func documentToResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:                 d.Id,
		Filename:           d.Filename,
		Status:             string(d.Status),
		ProcessingProgress: d.ProcessingProgress,
		TotalChunks:        d.TotalChunks,
		ApprovedChunks:     d.ApprovedChunks,
		RejectedChunks:     d.RejectedChunks,
		PendingChunks:      d.PendingChunks(),
		ExtractedText:      d.ExtractedText,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}
