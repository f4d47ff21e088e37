package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusUploading      DocumentStatus = "uploading"
	DocumentStatusProcessing     DocumentStatus = "processing"
	DocumentStatusReadyForReview DocumentStatus = "ready_for_review"
	DocumentStatusApproved       DocumentStatus = "approved"
	DocumentStatusRejected       DocumentStatus = "rejected"
)

func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusUploading, DocumentStatusProcessing, DocumentStatusReadyForReview,
		DocumentStatusApproved, DocumentStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the document has reached a final review outcome.
// A terminal document accepts no further transitions.
func (s DocumentStatus) Terminal() bool {
	return s == DocumentStatusApproved || s == DocumentStatusRejected
}

type Document struct {
	Id                 uuid.UUID
	Filename           string
	Status             DocumentStatus
	ProcessingProgress int
	TotalChunks        int
	ApprovedChunks     int
	RejectedChunks     int
	ExtractedText      *string
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// PendingChunks is always derived, never stored.
func (d *Document) PendingChunks() int {
	return d.TotalChunks - d.ApprovedChunks - d.RejectedChunks
}
