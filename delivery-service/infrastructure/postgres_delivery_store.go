package infrastructure

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/orderflow/delivery-system/delivery-service/domain"
)

// PostgresDeliveryStore implements domain.DeliveryStore using PostgreSQL
type PostgresDeliveryStore struct {
	db *sqlx.DB
}

var _ domain.DeliveryStore = (*PostgresDeliveryStore)(nil)

// NewPostgresDeliveryStore creates a new PostgresDeliveryStore
func NewPostgresDeliveryStore(db *sqlx.DB) *PostgresDeliveryStore {
	return &PostgresDeliveryStore{db: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS delivery_records (
		id         BIGSERIAL PRIMARY KEY,
		requester  TEXT        NOT NULL,
		amount     BIGINT      NOT NULL CHECK (amount > 0),
		status     TEXT        NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_delivery_records_requester ON delivery_records (requester)`

// EnsureSchema creates the ledger table when it does not exist yet. It is
// idempotent, so repeated process startups never destroy existing records.
func (s *PostgresDeliveryStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to ensure delivery_records schema")
	}
	return nil
}

// postgresReservation holds the open transaction for one uncommitted record.
type postgresReservation struct {
	tx     *sqlx.Tx
	record *domain.DeliveryRecord
}

func (r *postgresReservation) Record() *domain.DeliveryRecord {
	return r.record
}

func (r *postgresReservation) Commit() error {
	if err := r.tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit reservation")
	}
	return nil
}

func (r *postgresReservation) Rollback() error {
	if err := r.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return errors.Wrap(err, "failed to roll back reservation")
	}
	return nil
}

// CreateReservation inserts a PENDING record inside a new transaction. The
// insert assigns the id; the caller commits only after the confirmation
// publish succeeded, so an abandoned reservation leaves no row behind.
func (s *PostgresDeliveryStore) CreateReservation(ctx context.Context, requester string, amount int64) (domain.Reservation, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin reservation transaction")
	}

	query := `
		INSERT INTO delivery_records (requester, amount, status)
		VALUES ($1, $2, $3)
		RETURNING id, requester, amount, status, created_at, updated_at`

	var record domain.DeliveryRecord
	if err := tx.GetContext(ctx, &record, query, requester, amount, domain.StatusPending); err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "failed to insert delivery record")
	}

	return &postgresReservation{tx: tx, record: &record}, nil
}

// MarkDeliveryFailed transitions the record to DELIVERY_FAILED. The single
// conditional statement is the row-level atomicity boundary; a zero row
// count surfaces as ErrDeliveryNotFound so the caller can report the
// anomaly.
func (s *PostgresDeliveryStore) MarkDeliveryFailed(ctx context.Context, id int64) error {
	query := `
		UPDATE delivery_records
		SET status = $1, updated_at = now()
		WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, domain.StatusDeliveryFailed, id)
	if err != nil {
		return errors.Wrap(err, "failed to mark delivery failed")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return errors.Wrapf(domain.ErrDeliveryNotFound, "delivery %d", id)
	}

	return nil
}

// FindByID returns the record for id
func (s *PostgresDeliveryStore) FindByID(ctx context.Context, id int64) (*domain.DeliveryRecord, error) {
	query := `
		SELECT id, requester, amount, status, created_at, updated_at
		FROM delivery_records
		WHERE id = $1`

	var record domain.DeliveryRecord
	if err := s.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(domain.ErrDeliveryNotFound, "delivery %d", id)
		}
		return nil, errors.Wrap(err, "failed to find delivery record")
	}

	return &record, nil
}
