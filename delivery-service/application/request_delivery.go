package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/orderflow/delivery-system/delivery-service/domain"
	"github.com/orderflow/delivery-system/shared/events"
	"github.com/orderflow/delivery-system/shared/models"
)

// RequestDelivery is the producer side of the pipeline: it validates an
// inbound delivery request and enqueues it on deliver.request. There is no
// synchronous outcome channel; callers observe the saga through the
// confirmation and rollback events.
type RequestDelivery struct {
	eventPublisher events.Publisher
	logger         logrus.FieldLogger
}

// NewRequestDelivery creates a new RequestDelivery use case
func NewRequestDelivery(eventPublisher events.Publisher, logger logrus.FieldLogger) *RequestDelivery {
	return &RequestDelivery{
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Execute enqueues the request and returns the correlation id assigned to it.
func (uc *RequestDelivery) Execute(ctx context.Context, request domain.DeliveryRequest) (models.ID, error) {
	if err := request.Validate(); err != nil {
		return "", errors.Wrap(err, "invalid delivery request")
	}

	aggregateID := models.GenerateUUID()
	event := events.NewEvent(aggregateID, events.DeliveryRequestedEvent, request).
		WithCorrelationID(aggregateID)

	if err := uc.eventPublisher.Publish(ctx, event); err != nil {
		return "", errors.Wrap(err, "failed to publish delivery request")
	}

	uc.logger.WithFields(logrus.Fields{
		"correlation_id": aggregateID.String(),
		"requester":      request.Requester,
		"amount":         request.Amount,
	}).Info("delivery requested")

	return aggregateID, nil
}

// GetDelivery reads one ledger record by its store-assigned id.
type GetDelivery struct {
	store domain.DeliveryStore
}

// NewGetDelivery creates a new GetDelivery use case
func NewGetDelivery(store domain.DeliveryStore) *GetDelivery {
	return &GetDelivery{store: store}
}

// Execute returns the record, or domain.ErrDeliveryNotFound.
func (uc *GetDelivery) Execute(ctx context.Context, id int64) (*domain.DeliveryRecord, error) {
	return uc.store.FindByID(ctx, id)
}
