package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChunkStatus string

const (
	ChunkStatusPending  ChunkStatus = "pending"
	ChunkStatusApproved ChunkStatus = "approved"
	ChunkStatusRejected ChunkStatus = "rejected"
	ChunkStatusEditing  ChunkStatus = "editing"
)

func (s ChunkStatus) Valid() bool {
	switch s {
	case ChunkStatusPending, ChunkStatusApproved, ChunkStatusRejected, ChunkStatusEditing:
		return true
	}
	return false
}

// Decided reports whether the chunk has left the review states.
func (s ChunkStatus) Decided() bool {
	return s == ChunkStatusApproved || s == ChunkStatusRejected
}

type ChunkType string

const (
	ChunkTypeHeader         ChunkType = "header"
	ChunkTypeInvoiceDetails ChunkType = "invoice_details"
	ChunkTypeBillTo         ChunkType = "bill_to"
	ChunkTypeLineItem       ChunkType = "line_item"
	ChunkTypeTotals         ChunkType = "totals"
	ChunkTypePaymentTerms   ChunkType = "payment_terms"
)

func (t ChunkType) Valid() bool {
	switch t {
	case ChunkTypeHeader, ChunkTypeInvoiceDetails, ChunkTypeBillTo,
		ChunkTypeLineItem, ChunkTypeTotals, ChunkTypePaymentTerms:
		return true
	}
	return false
}

// BoundingBox locates a chunk on the source page, in percentages of page size.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Chunk struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	ChunkType      ChunkType
	SequenceNumber int
	Title          string
	ExtractedData  FieldMap
	BoundingBox    BoundingBox
	Confidence     float64
	Status         ChunkStatus
	IsEdited       bool
	// OriginalData is the snapshot of ExtractedData taken at the moment of the
	// first edit. Nil until the chunk has been edited.
	OriginalData *FieldMap
	// StatusBeforeEdit is the restore target for cancel-edit. Set while the
	// chunk is in editing, nil otherwise.
	StatusBeforeEdit *ChunkStatus
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
