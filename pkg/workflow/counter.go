package workflow

import "invoice-review-be/internal/entity"

// Tally re-derives the approved and rejected counts from a full scan of the
// chunk set. Deliberately not incremental: a scan is correct under any
// sequence of mutations at O(chunk count) per mutation, which is cheap at
// document scale.
func Tally(chunks []*entity.Chunk) (approved, rejected int) {
	for _, c := range chunks {
		switch c.Status {
		case entity.ChunkStatusApproved:
			approved++
		case entity.ChunkStatusRejected:
			rejected++
		case entity.ChunkStatusPending, entity.ChunkStatusEditing:
			// still in review, not counted
		}
	}
	return approved, rejected
}

// ApplyTally writes the recomputed counts back onto the document.
func ApplyTally(doc *entity.Document, chunks []*entity.Chunk) {
	doc.ApprovedChunks, doc.RejectedChunks = Tally(chunks)
}
