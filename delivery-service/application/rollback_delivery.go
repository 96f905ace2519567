package application

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/orderflow/delivery-system/delivery-service/domain"
	"github.com/orderflow/delivery-system/shared/telemetry"
)

// RollbackDelivery is the saga's compensating step: it transitions the
// referenced ledger record to its terminal DELIVERY_FAILED status. The
// conditional update makes a second application of the same rollback a
// detected no-op rather than an error.
type RollbackDelivery struct {
	store  domain.DeliveryStore
	logger logrus.FieldLogger
}

// NewRollbackDelivery creates a new RollbackDelivery use case
func NewRollbackDelivery(store domain.DeliveryStore, logger logrus.FieldLogger) *RollbackDelivery {
	return &RollbackDelivery{
		store:  store,
		logger: logger,
	}
}

// Execute handles one rollback request. All outcomes are terminal for the
// message: a rollback without a delivery id reconciles nothing, and a
// rollback referencing an unknown id is a logged anomaly, not a retry.
func (uc *RollbackDelivery) Execute(ctx context.Context, rollback domain.RollbackRequest) error {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "rollback_delivery",
		trace.WithAttributes(
			attribute.String("requester", rollback.Requester),
			attribute.String("reason", rollback.Status),
		),
	)
	defer span.End()

	if rollback.DeliveryID == nil {
		// Pre-reservation failure: no record was ever created.
		uc.logger.WithFields(logrus.Fields{
			"requester": rollback.Requester,
			"reason":    rollback.Status,
		}).Info("rollback without delivery id, nothing to reconcile")
		uc.recordOutcome(ctx, start, "no_record")
		return nil
	}

	span.SetAttributes(attribute.Int64("delivery_id", *rollback.DeliveryID))

	err := uc.store.MarkDeliveryFailed(ctx, *rollback.DeliveryID)
	if errors.Is(err, domain.ErrDeliveryNotFound) {
		// Store inconsistency: redelivery would reproduce it, so report
		// and move on.
		uc.logger.WithFields(logrus.Fields{
			"delivery_id": *rollback.DeliveryID,
			"requester":   rollback.Requester,
		}).Warn("rollback references unknown delivery record")
		uc.recordOutcome(ctx, start, "not_found")
		return nil
	}
	if err != nil {
		span.RecordError(err)
		uc.recordOutcome(ctx, start, "error")
		return errors.Wrap(err, "failed to mark delivery failed")
	}

	uc.logger.WithFields(logrus.Fields{
		"delivery_id": *rollback.DeliveryID,
		"requester":   rollback.Requester,
		"reason":      rollback.Status,
	}).Info("delivery marked failed")
	uc.recordOutcome(ctx, start, "failed")

	return nil
}

func (uc *RollbackDelivery) recordOutcome(ctx context.Context, start time.Time, outcome string) {
	telemetry.RecordCounter(ctx, "delivery_rollbacks_total", "Total delivery rollbacks handled", 1,
		attribute.String("outcome", outcome),
	)
	telemetry.RecordHistogram(ctx, "delivery_rollback_duration_seconds", "Delivery rollback duration", time.Since(start).Seconds(),
		attribute.String("outcome", outcome),
	)
}
