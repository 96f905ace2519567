package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/orderflow/delivery-system/delivery-service/application"
	"github.com/orderflow/delivery-system/delivery-service/domain"
	"github.com/orderflow/delivery-system/shared/events"
)

// DeliveryEventHandlers consumes deliver.request. Every per-message error
// class is converted here into either a compensation publish (inside the use
// case) or a log line; returning nil lets the transport acknowledge, and
// nothing per-message crashes the process.
type DeliveryEventHandlers struct {
	reserveInventory *application.ReserveInventory
	logger           logrus.FieldLogger
}

// NewDeliveryEventHandlers creates new delivery event handlers
func NewDeliveryEventHandlers(reserveInventory *application.ReserveInventory, logger logrus.FieldLogger) *DeliveryEventHandlers {
	return &DeliveryEventHandlers{
		reserveInventory: reserveInventory,
		logger:           logger,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *DeliveryEventHandlers) HandlerID() string {
	return "delivery-request-handler"
}

// Handle implements the events.EventHandler interface
func (h *DeliveryEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.Topic.String() {
	case events.DeliveryRequestedEvent:
		return h.handleDeliveryRequested(ctx, event)
	default:
		// Unknown topic, ignore
		return nil
	}
}

func (h *DeliveryEventHandlers) handleDeliveryRequested(ctx context.Context, event *events.Event) error {
	var request domain.DeliveryRequest
	if err := event.UnmarshalPayload(&request); err != nil {
		// Permanently malformed: retrying cannot succeed, so ack.
		h.logger.WithError(err).WithField("event_id", event.ID.String()).
			Warn("discarding malformed delivery request")
		return nil
	}

	if err := h.reserveInventory.Execute(ctx, request, event.CorrelationID); err != nil {
		h.logger.WithError(err).WithField("event_id", event.ID.String()).
			Warn("discarding invalid delivery request")
	}
	return nil
}

// RollbackEventHandlers consumes rollback.request and acknowledges after
// handling regardless of outcome: the conditional store update is the only
// idempotent-safe part of this step, so redelivery buys nothing.
type RollbackEventHandlers struct {
	rollbackDelivery *application.RollbackDelivery
	logger           logrus.FieldLogger
}

// NewRollbackEventHandlers creates new rollback event handlers
func NewRollbackEventHandlers(rollbackDelivery *application.RollbackDelivery, logger logrus.FieldLogger) *RollbackEventHandlers {
	return &RollbackEventHandlers{
		rollbackDelivery: rollbackDelivery,
		logger:           logger,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *RollbackEventHandlers) HandlerID() string {
	return "rollback-request-handler"
}

// Handle implements the events.EventHandler interface
func (h *RollbackEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.Topic.String() {
	case events.RollbackRequestedEvent:
		return h.handleRollbackRequested(ctx, event)
	default:
		return nil
	}
}

func (h *RollbackEventHandlers) handleRollbackRequested(ctx context.Context, event *events.Event) error {
	var rollback domain.RollbackRequest
	if err := event.UnmarshalPayload(&rollback); err != nil {
		h.logger.WithError(err).WithField("event_id", event.ID.String()).
			Warn("discarding malformed rollback request")
		return nil
	}

	if err := h.rollbackDelivery.Execute(ctx, rollback); err != nil {
		h.logger.WithError(err).WithField("event_id", event.ID.String()).
			Error("rollback handling failed")
	}
	return nil
}
