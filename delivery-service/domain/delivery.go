package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// DeliveryStatus enumerates the states of a delivery ledger record.
type DeliveryStatus string

const (
	// StatusPending marks a reservation that has been written but not yet
	// resolved by the saga. It is the only status ever written at creation.
	StatusPending DeliveryStatus = "PENDING"

	// StatusTimeout is an event-level diagnostic carried on rollback events.
	// It is never persisted: the store-side terminal failure status is
	// always StatusDeliveryFailed.
	StatusTimeout DeliveryStatus = "TIMEOUT"

	// StatusDeliveryFailed is the terminal status written by the rollback
	// handler when a reservation is compensated.
	StatusDeliveryFailed DeliveryStatus = "DELIVERY_FAILED"
)

// Terminal reports whether a record in this status may never transition again.
func (s DeliveryStatus) Terminal() bool {
	return s == StatusDeliveryFailed
}

// ErrDeliveryNotFound is returned when a delivery id references no record.
var ErrDeliveryNotFound = errors.New("delivery record not found")

// DeliveryRecord is the durable ledger entry for one accepted delivery
// request. The id is store-assigned, monotonically increasing and immutable;
// it is the sole correlation key carried into confirmation and rollback
// events.
type DeliveryRecord struct {
	ID        int64          `db:"id" json:"id"`
	Requester string         `db:"requester" json:"requester"`
	Amount    int64          `db:"amount" json:"amount"`
	Status    DeliveryStatus `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// DeliveryRequest is the inbound wire payload on deliver.request. The force
// flags are test-only fault injection used to exercise the failure paths
// deterministically.
type DeliveryRequest struct {
	Requester    string `json:"requester"`
	Amount       int64  `json:"amount"`
	ForceFailure bool   `json:"forceFailure,omitempty"`
	ForceTimeout bool   `json:"forceTimeout,omitempty"`
}

// Validate checks the required wire fields. A request that fails validation
// is permanently malformed and must not be retried.
func (r DeliveryRequest) Validate() error {
	if r.Requester == "" {
		return errors.New("requester is required")
	}
	if r.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}

// DeliveryConfirmed is the outbound wire payload on deliver.confirmed: the
// original request plus the assigned record id.
type DeliveryConfirmed struct {
	DeliveryRequest
	DeliveryID int64 `json:"deliveryId"`
}

// RollbackRequest is the compensation wire payload. DeliveryID is nil for
// failures that happened before a record was created; Status carries the
// failure reason (TIMEOUT) when one is known.
type RollbackRequest struct {
	DeliveryRequest
	DeliveryID *int64 `json:"deliveryId,omitempty"`
	Status     string `json:"status,omitempty"`
}

// Reservation is an open, uncommitted PENDING record. The caller decides its
// fate: Commit after the confirmation publish succeeded, Rollback on any
// failure or timeout. Exactly one of the two must be called.
type Reservation interface {
	// Record returns the provisional record, with its assigned id.
	Record() *DeliveryRecord

	// Commit makes the reservation durable.
	Commit() error

	// Rollback discards the reservation. Safe to call after a failed Commit.
	Rollback() error
}

// DeliveryStore is the durable ledger of delivery attempts.
type DeliveryStore interface {
	// CreateReservation atomically inserts a PENDING record inside a new
	// transaction and returns it uncommitted. It either returns a
	// reservation or an error; it never partially applies.
	CreateReservation(ctx context.Context, requester string, amount int64) (Reservation, error)

	// MarkDeliveryFailed conditionally transitions the identified record to
	// DELIVERY_FAILED. It returns ErrDeliveryNotFound when the id matches no
	// row, so the caller can report the anomaly instead of silently
	// ignoring it. Applying it to an already failed record is a no-op.
	MarkDeliveryFailed(ctx context.Context, id int64) error

	// FindByID returns the record for id, or ErrDeliveryNotFound.
	FindByID(ctx context.Context, id int64) (*DeliveryRecord, error)
}
