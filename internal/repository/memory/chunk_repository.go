package memory

import (
	"context"
	"sort"
	"time"

	"invoice-review-be/internal/entity"
	"invoice-review-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ChunkRepository struct {
	cache *cache.Cache
}

func NewChunkRepository() *ChunkRepository {
	return &ChunkRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func cloneChunk(c *entity.Chunk) *entity.Chunk {
	if c == nil {
		return nil
	}
	out := *c
	out.ExtractedData = c.ExtractedData.Clone()
	if c.OriginalData != nil {
		fm := c.OriginalData.Clone()
		out.OriginalData = &fm
	}
	if c.StatusBeforeEdit != nil {
		s := *c.StatusBeforeEdit
		out.StatusBeforeEdit = &s
	}
	if c.UpdatedAt != nil {
		t := *c.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}

func (r *ChunkRepository) CreateBatch(ctx context.Context, chunks []*entity.Chunk) error {
	for _, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		r.cache.Set(c.Id.String(), cloneChunk(c), cache.NoExpiration)
	}
	return nil
}

func (r *ChunkRepository) Update(ctx context.Context, chunk *entity.Chunk) error {
	now := time.Now()
	chunk.UpdatedAt = &now
	r.cache.Set(chunk.Id.String(), cloneChunk(chunk), cache.NoExpiration)
	return nil
}

func (r *ChunkRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Chunk, error) {
	if x, found := r.cache.Get(id.String()); found {
		return cloneChunk(x.(*entity.Chunk)), nil
	}
	return nil, nil
}

func (r *ChunkRepository) FindAllByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.Chunk, error) {
	chunks := make([]*entity.Chunk, 0)
	for _, item := range r.cache.Items() {
		c := item.Object.(*entity.Chunk)
		if c.DocumentId == documentId {
			chunks = append(chunks, cloneChunk(c))
		}
	}
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].SequenceNumber < chunks[j].SequenceNumber
	})
	return chunks, nil
}

func (r *ChunkRepository) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	for key, item := range r.cache.Items() {
		if item.Object.(*entity.Chunk).DocumentId == documentId {
			r.cache.Delete(key)
		}
	}
	return nil
}

func (r *ChunkRepository) AverageConfidence(ctx context.Context) (float64, error) {
	var sum float64
	var n int
	for _, item := range r.cache.Items() {
		sum += item.Object.(*entity.Chunk).Confidence
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

var _ contract.ChunkRepository = (*ChunkRepository)(nil)
