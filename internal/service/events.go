package service

import (
	"context"
	"log"
	"time"

	"invoice-review-be/pkg/events"
	pktNats "invoice-review-be/pkg/nats"
)

// Event type codes published on the NATS bus.
const (
	EventDocumentSubmitted        = "DOCUMENT_SUBMITTED"
	EventDocumentReadyForReview   = "DOCUMENT_READY_FOR_REVIEW"
	EventDocumentProcessingFailed = "DOCUMENT_PROCESSING_FAILED"
	EventDocumentFinalized        = "DOCUMENT_FINALIZED"
	EventChunkApproved            = "CHUNK_APPROVED"
	EventChunkRejected            = "CHUNK_REJECTED"
)

// publishEvent emits a lifecycle event. Events are auxiliary: failures are
// logged and never fail the calling operation. A nil publisher disables
// events entirely (tests, NATS-less deployments).
func publishEvent(ctx context.Context, pub *pktNats.Publisher, eventType string, data map[string]interface{}) {
	if pub == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := pub.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", eventType, err)
	}
}
