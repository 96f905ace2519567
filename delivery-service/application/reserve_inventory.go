package application

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/orderflow/delivery-system/delivery-service/domain"
	"github.com/orderflow/delivery-system/shared/events"
	"github.com/orderflow/delivery-system/shared/models"
	"github.com/orderflow/delivery-system/shared/saga"
	"github.com/orderflow/delivery-system/shared/telemetry"
)

// ReserveInventory is the saga's forward step: it creates a PENDING ledger
// record for one delivery request, confirms downstream on success, and routes
// every failure class through the compensation publisher. The whole unit of
// work runs under the timeout governor's budget.
type ReserveInventory struct {
	store          domain.DeliveryStore
	eventPublisher events.Publisher
	compensator    *CompensationPublisher
	governor       *saga.Governor
	logger         logrus.FieldLogger
}

// NewReserveInventory creates a new ReserveInventory use case
func NewReserveInventory(
	store domain.DeliveryStore,
	eventPublisher events.Publisher,
	compensator *CompensationPublisher,
	governor *saga.Governor,
	logger logrus.FieldLogger,
) *ReserveInventory {
	return &ReserveInventory{
		store:          store,
		eventPublisher: eventPublisher,
		compensator:    compensator,
		governor:       governor,
		logger:         logger,
	}
}

// Execute handles one delivery request. A returned error means the payload
// was permanently malformed; every other outcome, including timeout and
// rejected reservation, is settled here via confirmation or compensation so
// the caller can acknowledge the message.
func (uc *ReserveInventory) Execute(ctx context.Context, request domain.DeliveryRequest, correlationID models.ID) error {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "reserve_inventory",
		trace.WithAttributes(
			attribute.String("requester", request.Requester),
			attribute.Int64("amount", request.Amount),
		),
	)
	defer span.End()

	if err := request.Validate(); err != nil {
		span.RecordError(err)
		uc.recordOutcome(ctx, start, "invalid")
		return errors.Wrap(err, "invalid delivery request")
	}

	err := uc.governor.Run(ctx, func(ctx context.Context) error {
		return uc.reserve(ctx, request, correlationID)
	})
	if err == nil {
		uc.recordOutcome(ctx, start, "confirmed")
		return nil
	}

	// Timeout is a first-class failure category; everything else, including
	// a rejected reservation, compensates without an explicit reason.
	span.RecordError(err)
	var reason saga.FailureReason
	outcome := "compensated"
	if errors.Is(err, saga.ErrBudgetExceeded) {
		reason = saga.ReasonTimeout
		outcome = "timeout"
	}

	uc.logger.WithError(err).WithFields(logrus.Fields{
		"requester": request.Requester,
		"reason":    reason.String(),
	}).Warn("reservation failed, compensating")

	// The governed context is already expired on the timeout path, so the
	// compensation publish runs detached.
	compensateCtx, cancel := uc.governor.Detach(ctx)
	defer cancel()

	if err := uc.compensator.Publish(compensateCtx, correlationID, request, nil, reason); err != nil {
		// Still acknowledged by the caller: a redelivery would duplicate
		// the compensation attempt, not repair it.
		uc.logger.WithError(err).Error("failed to publish compensation")
	}

	uc.recordOutcome(ctx, start, outcome)
	return nil
}

// reserve is the governed unit of work: create, publish confirmation, commit.
func (uc *ReserveInventory) reserve(ctx context.Context, request domain.DeliveryRequest, correlationID models.ID) error {
	if request.ForceFailure {
		return errors.New("reservation rejected: insufficient inventory")
	}

	if request.ForceTimeout {
		// Deliberate stall past the budget to exercise the governor.
		select {
		case <-time.After(2 * uc.governor.Budget()):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	reservation, err := uc.store.CreateReservation(ctx, request.Requester, request.Amount)
	if err != nil {
		return errors.Wrap(err, "failed to create delivery record")
	}

	record := reservation.Record()

	aggregateID := correlationID
	if aggregateID.IsZero() {
		aggregateID = models.GenerateUUID()
	}

	confirmation := events.NewEvent(aggregateID, events.DeliveryConfirmedEvent, domain.DeliveryConfirmed{
		DeliveryRequest: request,
		DeliveryID:      record.ID,
	}).WithCorrelationID(correlationID)

	// Publish before commit: a crash between the two duplicates the
	// confirmation instead of losing it.
	if err := uc.eventPublisher.Publish(ctx, confirmation); err != nil {
		reservation.Rollback()
		return errors.Wrap(err, "failed to publish delivery confirmation")
	}

	// A commit that raced past the deadline would leave an un-compensated
	// success, so the budget is checked one last time before committing.
	if ctx.Err() != nil {
		reservation.Rollback()
		return ctx.Err()
	}

	if err := reservation.Commit(); err != nil {
		reservation.Rollback()
		return errors.Wrap(err, "failed to commit reservation")
	}

	uc.logger.WithFields(logrus.Fields{
		"delivery_id": record.ID,
		"requester":   record.Requester,
		"amount":      record.Amount,
	}).Info("reservation confirmed")

	return nil
}

func (uc *ReserveInventory) recordOutcome(ctx context.Context, start time.Time, outcome string) {
	telemetry.RecordCounter(ctx, "delivery_reservations_total", "Total delivery reservation attempts", 1,
		attribute.String("outcome", outcome),
	)
	telemetry.RecordHistogram(ctx, "delivery_reservation_duration_seconds", "Delivery reservation duration", time.Since(start).Seconds(),
		attribute.String("outcome", outcome),
	)
}
