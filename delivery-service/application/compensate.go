package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/orderflow/delivery-system/delivery-service/domain"
	"github.com/orderflow/delivery-system/shared/events"
	"github.com/orderflow/delivery-system/shared/models"
	"github.com/orderflow/delivery-system/shared/saga"
	"github.com/orderflow/delivery-system/shared/telemetry"
)

// CompensationPublisher fans a failed reservation out as rollback events. It
// publishes the same payload under rollback.request, which drives the
// rollback handler, and under rollback.inventory, the externally visible
// "delivery did not happen" signal for downstream consumers.
type CompensationPublisher struct {
	eventPublisher events.Publisher
	logger         logrus.FieldLogger
}

// NewCompensationPublisher creates a new CompensationPublisher
func NewCompensationPublisher(eventPublisher events.Publisher, logger logrus.FieldLogger) *CompensationPublisher {
	return &CompensationPublisher{
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Publish builds a rollback event from the original payload, the delivery id
// when a record was created, and the failure reason when one is known.
// A publish failure is returned to the caller; the caller still acknowledges
// the inbound message, accepting a lost compensation over a duplicated one.
func (p *CompensationPublisher) Publish(
	ctx context.Context,
	correlationID models.ID,
	request domain.DeliveryRequest,
	deliveryID *int64,
	reason saga.FailureReason,
) error {
	rollback := domain.RollbackRequest{
		DeliveryRequest: request,
		DeliveryID:      deliveryID,
		Status:          reason.String(),
	}

	aggregateID := correlationID
	if aggregateID.IsZero() {
		aggregateID = models.GenerateUUID()
	}

	rollbackEvent := events.NewEvent(aggregateID, events.RollbackRequestedEvent, rollback).
		WithCorrelationID(correlationID)
	signalEvent := events.NewEvent(aggregateID, events.InventoryRollbackEvent, rollback).
		WithCorrelationID(correlationID)

	if err := p.eventPublisher.Publish(ctx, rollbackEvent, signalEvent); err != nil {
		return errors.Wrap(err, "failed to publish rollback events")
	}

	p.logger.WithFields(logrus.Fields{
		"requester": request.Requester,
		"reason":    reason.String(),
	}).Info("published compensation for failed reservation")

	telemetry.RecordCounter(ctx, "compensations_published_total", "Total compensations published", 1,
		attribute.String("reason", reason.String()),
	)

	return nil
}
