package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orderflow/delivery-system/delivery-service/domain"
	"github.com/orderflow/delivery-system/delivery-service/mocks"
	"github.com/orderflow/delivery-system/shared/events"
	"github.com/orderflow/delivery-system/shared/saga"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newReserveInventory(t *testing.T, budget time.Duration) (*ReserveInventory, *mocks.MockDeliveryStore, *mocks.MockPublisher) {
	store := mocks.NewMockDeliveryStore(t)
	publisher := mocks.NewMockPublisher(t)
	logger := testLogger()

	uc := NewReserveInventory(
		store,
		publisher,
		NewCompensationPublisher(publisher, logger),
		saga.NewGovernor(budget),
		logger,
	)
	return uc, store, publisher
}

func rollbackPayload(t *testing.T, event *events.Event) domain.RollbackRequest {
	t.Helper()
	var rollback domain.RollbackRequest
	require.NoError(t, event.UnmarshalPayload(&rollback))
	return rollback
}

func TestReserveInventory_Confirms(t *testing.T) {
	uc, store, publisher := newReserveInventory(t, time.Second)

	record := &domain.DeliveryRecord{ID: 7, Requester: "alice", Amount: 3, Status: domain.StatusPending}
	reservation := mocks.NewMockReservation(t)
	reservation.EXPECT().Record().Return(record).Once()
	reservation.EXPECT().Commit().Return(nil).Once()

	store.EXPECT().CreateReservation(mock.Anything, "alice", int64(3)).Return(reservation, nil).Once()

	var confirmed *events.Event
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, evts ...*events.Event) {
			confirmed = evts[0]
		}).
		Return(nil).Once()

	err := uc.Execute(context.Background(), domain.DeliveryRequest{Requester: "alice", Amount: 3}, "")
	require.NoError(t, err)

	require.NotNil(t, confirmed)
	assert.Equal(t, events.Topic(events.DeliveryConfirmedEvent), confirmed.Topic)

	var payload domain.DeliveryConfirmed
	require.NoError(t, confirmed.UnmarshalPayload(&payload))
	assert.Equal(t, int64(7), payload.DeliveryID)
	assert.Equal(t, "alice", payload.Requester)
}

func TestReserveInventory_ForcedFailureCompensatesWithoutRecord(t *testing.T) {
	uc, _, publisher := newReserveInventory(t, time.Second)

	var published []*events.Event
	publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).
		Run(func(ctx context.Context, evts ...*events.Event) {
			published = evts
		}).
		Return(nil).Once()

	err := uc.Execute(context.Background(), domain.DeliveryRequest{
		Requester:    "bob",
		Amount:       5,
		ForceFailure: true,
	}, "")
	require.NoError(t, err)

	// No store interaction happened; the mock would have failed otherwise.
	require.Len(t, published, 2)
	assert.Equal(t, events.Topic(events.RollbackRequestedEvent), published[0].Topic)
	assert.Equal(t, events.Topic(events.InventoryRollbackEvent), published[1].Topic)

	rollback := rollbackPayload(t, published[0])
	assert.Nil(t, rollback.DeliveryID)
	assert.Empty(t, rollback.Status)
	assert.Equal(t, "bob", rollback.Requester)
}

func TestReserveInventory_TimeoutCompensatesWithReason(t *testing.T) {
	uc, _, publisher := newReserveInventory(t, 20*time.Millisecond)

	var published []*events.Event
	publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).
		Run(func(ctx context.Context, evts ...*events.Event) {
			published = evts
		}).
		Return(nil).Once()

	err := uc.Execute(context.Background(), domain.DeliveryRequest{
		Requester:    "carol",
		Amount:       1,
		ForceTimeout: true,
	}, "")
	require.NoError(t, err)

	require.Len(t, published, 2)
	rollback := rollbackPayload(t, published[0])
	assert.Nil(t, rollback.DeliveryID)
	assert.Equal(t, "TIMEOUT", rollback.Status)
}

func TestReserveInventory_CreationFailureCompensates(t *testing.T) {
	uc, store, publisher := newReserveInventory(t, time.Second)

	store.EXPECT().CreateReservation(mock.Anything, "dave", int64(2)).
		Return(nil, errors.New("insufficient inventory")).Once()

	var published []*events.Event
	publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).
		Run(func(ctx context.Context, evts ...*events.Event) {
			published = evts
		}).
		Return(nil).Once()

	err := uc.Execute(context.Background(), domain.DeliveryRequest{Requester: "dave", Amount: 2}, "")
	require.NoError(t, err)

	require.Len(t, published, 2)
	rollback := rollbackPayload(t, published[0])
	assert.Nil(t, rollback.DeliveryID)
	assert.Empty(t, rollback.Status)
}

func TestReserveInventory_ConfirmationPublishFailureRollsBack(t *testing.T) {
	uc, store, publisher := newReserveInventory(t, time.Second)

	record := &domain.DeliveryRecord{ID: 9, Requester: "erin", Amount: 4, Status: domain.StatusPending}
	reservation := mocks.NewMockReservation(t)
	reservation.EXPECT().Record().Return(record).Once()
	reservation.EXPECT().Rollback().Return(nil).Once()

	store.EXPECT().CreateReservation(mock.Anything, "erin", int64(4)).Return(reservation, nil).Once()

	publisher.EXPECT().Publish(mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable")).Once()
	publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()

	err := uc.Execute(context.Background(), domain.DeliveryRequest{Requester: "erin", Amount: 4}, "")
	assert.NoError(t, err)
}

func TestReserveInventory_CommitFailureRollsBackAndCompensates(t *testing.T) {
	uc, store, publisher := newReserveInventory(t, time.Second)

	record := &domain.DeliveryRecord{ID: 11, Requester: "frank", Amount: 6, Status: domain.StatusPending}
	reservation := mocks.NewMockReservation(t)
	reservation.EXPECT().Record().Return(record).Once()
	reservation.EXPECT().Commit().Return(errors.New("connection reset")).Once()
	reservation.EXPECT().Rollback().Return(nil).Once()

	store.EXPECT().CreateReservation(mock.Anything, "frank", int64(6)).Return(reservation, nil).Once()

	publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
	publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	err := uc.Execute(context.Background(), domain.DeliveryRequest{Requester: "frank", Amount: 6}, "")
	assert.NoError(t, err)
}

func TestReserveInventory_PublishOutlivingBudgetIsNotCommitted(t *testing.T) {
	budget := 30 * time.Millisecond
	uc, store, publisher := newReserveInventory(t, budget)

	record := &domain.DeliveryRecord{ID: 13, Requester: "heidi", Amount: 8, Status: domain.StatusPending}
	reservation := mocks.NewMockReservation(t)
	reservation.EXPECT().Record().Return(record).Once()
	reservation.EXPECT().Rollback().Return(nil).Once()

	store.EXPECT().CreateReservation(mock.Anything, "heidi", int64(8)).Return(reservation, nil).Once()

	// The confirmation publish succeeds, but only after the budget expired.
	// The reservation must roll back instead of committing.
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, evts ...*events.Event) {
			time.Sleep(2 * budget)
		}).
		Return(nil).Once()

	var published []*events.Event
	publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).
		Run(func(ctx context.Context, evts ...*events.Event) {
			published = evts
		}).
		Return(nil).Once()

	err := uc.Execute(context.Background(), domain.DeliveryRequest{Requester: "heidi", Amount: 8}, "")
	require.NoError(t, err)

	reservation.AssertNotCalled(t, "Commit")

	require.Len(t, published, 2)
	rollback := rollbackPayload(t, published[0])
	assert.Equal(t, "TIMEOUT", rollback.Status)
}

func TestReserveInventory_MalformedRequestIsNotCompensated(t *testing.T) {
	uc, _, _ := newReserveInventory(t, time.Second)

	err := uc.Execute(context.Background(), domain.DeliveryRequest{Requester: "", Amount: 3}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requester is required")
}

func TestReserveInventory_CompensationPublishFailureIsStillHandled(t *testing.T) {
	uc, _, publisher := newReserveInventory(t, time.Second)

	publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable")).Once()

	// The message stays handled so the caller acks: redelivery would
	// duplicate the compensation attempt.
	err := uc.Execute(context.Background(), domain.DeliveryRequest{
		Requester:    "gina",
		Amount:       2,
		ForceFailure: true,
	}, "")
	assert.NoError(t, err)
}
