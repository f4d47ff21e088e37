package service

import (
	"context"

	"invoice-review-be/internal/dto"
	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/pkg/apperrors"
	"invoice-review-be/internal/repository/unitofwork"
	pktNats "invoice-review-be/pkg/nats"
	"invoice-review-be/pkg/workflow"

	"github.com/google/uuid"
)

type IChunkService interface {
	Approve(ctx context.Context, id uuid.UUID) (*dto.ChunkResponse, error)
	Reject(ctx context.Context, id uuid.UUID) (*dto.ChunkResponse, error)
	StartEdit(ctx context.Context, id uuid.UUID) (*dto.ChunkResponse, error)
	CancelEdit(ctx context.Context, id uuid.UUID) (*dto.ChunkResponse, error)
	Update(ctx context.Context, req *dto.UpdateChunkRequest) (*dto.ChunkResponse, error)
}

type chunkService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewChunkService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IChunkService {
	return &chunkService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *chunkService) Approve(ctx context.Context, id uuid.UUID) (*dto.ChunkResponse, error) {
	res, err := s.decide(ctx, id, workflow.Approve)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.eventPublisher, EventChunkApproved, map[string]interface{}{
		"chunk_id":    res.Id,
		"document_id": res.DocumentId,
	})
	return res, nil
}

func (s *chunkService) Reject(ctx context.Context, id uuid.UUID) (*dto.ChunkResponse, error) {
	res, err := s.decide(ctx, id, workflow.Reject)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.eventPublisher, EventChunkRejected, map[string]interface{}{
		"chunk_id":    res.Id,
		"document_id": res.DocumentId,
	})
	return res, nil
}

func (s *chunkService) decide(ctx context.Context, id uuid.UUID, transition func(*entity.Chunk) (bool, error)) (*dto.ChunkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunk, err := s.load(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	changed, err := transition(chunk)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := uow.ChunkRepository().Update(ctx, chunk); err != nil {
			return nil, err
		}
		if err := s.recomputeCounts(ctx, uow, chunk.DocumentId); err != nil {
			return nil, err
		}
	}
	return chunkToResponse(chunk), nil
}

func (s *chunkService) StartEdit(ctx context.Context, id uuid.UUID) (*dto.ChunkResponse, error) {
	return s.mutate(ctx, id, workflow.StartEdit)
}

func (s *chunkService) CancelEdit(ctx context.Context, id uuid.UUID) (*dto.ChunkResponse, error) {
	return s.mutate(ctx, id, workflow.CancelEdit)
}

// Update applies a save-edit: the replacement field set goes in and the chunk
// reopens to pending for re-review.
func (s *chunkService) Update(ctx context.Context, req *dto.UpdateChunkRequest) (*dto.ChunkResponse, error) {
	if len(req.ExtractedData) == 0 {
		return nil, apperrors.NewValidation("extracted_data must not be empty")
	}
	return s.mutate(ctx, req.Id, func(c *entity.Chunk) error {
		if err := workflow.SaveEdit(c, req.ExtractedData); err != nil {
			return err
		}
		if req.Title != nil {
			c.Title = *req.Title
		}
		return nil
	})
}

func (s *chunkService) mutate(ctx context.Context, id uuid.UUID, transition func(*entity.Chunk) error) (*dto.ChunkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunk, err := s.load(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if err := transition(chunk); err != nil {
		return nil, err
	}
	if err := uow.ChunkRepository().Update(ctx, chunk); err != nil {
		return nil, err
	}
	// An editing chunk counts as neither approved nor rejected, so every
	// transition in or out of editing can move the aggregates.
	if err := s.recomputeCounts(ctx, uow, chunk.DocumentId); err != nil {
		return nil, err
	}
	return chunkToResponse(chunk), nil
}

func (s *chunkService) load(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Chunk, error) {
	chunk, err := uow.ChunkRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if chunk == nil {
		return nil, apperrors.NewNotFound("chunk", id.String())
	}
	return chunk, nil
}

// recomputeCounts rebuilds the document's approved/rejected tallies from the
// full chunk set. A rescan is cheap at invoice scale and immune to the drift
// that incremental counters accumulate.
func (s *chunkService) recomputeCounts(ctx context.Context, uow unitofwork.UnitOfWork, documentId uuid.UUID) error {
	doc, err := uow.DocumentRepository().FindById(ctx, documentId)
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NewNotFound("document", documentId.String())
	}
	chunks, err := uow.ChunkRepository().FindAllByDocumentId(ctx, documentId)
	if err != nil {
		return err
	}
	workflow.ApplyTally(doc, chunks)
	return uow.DocumentRepository().Update(ctx, doc)
}

func chunkToResponse(c *entity.Chunk) *dto.ChunkResponse {
	return &dto.ChunkResponse{
		Id:             c.Id,
		DocumentId:     c.DocumentId,
		ChunkType:      string(c.ChunkType),
		SequenceNumber: c.SequenceNumber,
		Title:          c.Title,
		ExtractedData:  c.ExtractedData,
		BoundingBox: dto.BoundingBoxResponse{
			X:      c.BoundingBox.X,
			Y:      c.BoundingBox.Y,
			Width:  c.BoundingBox.Width,
			Height: c.BoundingBox.Height,
		},
		Confidence:   c.Confidence,
		Status:       string(c.Status),
		IsEdited:     c.IsEdited,
		OriginalData: c.OriginalData,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
