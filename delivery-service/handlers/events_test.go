package handlers

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orderflow/delivery-system/delivery-service/application"
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

func newDeliveryHandler(t *testing.T) (*DeliveryEventHandlers, *mocks.MockDeliveryStore, *mocks.MockPublisher) {
	store := mocks.NewMockDeliveryStore(t)
	publisher := mocks.NewMockPublisher(t)
	logger := testLogger()

	uc := application.NewReserveInventory(
		store,
		publisher,
		application.NewCompensationPublisher(publisher, logger),
		saga.NewGovernor(time.Second),
		logger,
	)
	return NewDeliveryEventHandlers(uc, logger), store, publisher
}

func TestDeliveryEventHandlers_Handle(t *testing.T) {
	t.Run("routes deliver.request to the reservation", func(t *testing.T) {
		handler, store, publisher := newDeliveryHandler(t)

		record := &domain.DeliveryRecord{ID: 7, Requester: "alice", Amount: 3, Status: domain.StatusPending}
		reservation := mocks.NewMockReservation(t)
		reservation.EXPECT().Record().Return(record).Once()
		reservation.EXPECT().Commit().Return(nil).Once()

		store.EXPECT().CreateReservation(mock.Anything, "alice", int64(3)).Return(reservation, nil).Once()
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

		event := events.NewEvent("", events.DeliveryRequestedEvent,
			domain.DeliveryRequest{Requester: "alice", Amount: 3})

		assert.NoError(t, handler.Handle(context.Background(), event))
	})

	t.Run("acks malformed payload without touching the store", func(t *testing.T) {
		handler, _, _ := newDeliveryHandler(t)

		event := events.NewEvent("", events.DeliveryRequestedEvent, json.RawMessage(`{not json`))

		assert.NoError(t, handler.Handle(context.Background(), event))
	})

	t.Run("acks invalid payload without touching the store", func(t *testing.T) {
		handler, _, _ := newDeliveryHandler(t)

		event := events.NewEvent("", events.DeliveryRequestedEvent,
			domain.DeliveryRequest{Requester: "", Amount: 3})

		assert.NoError(t, handler.Handle(context.Background(), event))
	})

	t.Run("ignores unrelated topics", func(t *testing.T) {
		handler, _, _ := newDeliveryHandler(t)

		event := events.NewEvent("", events.DeliveryConfirmedEvent,
			domain.DeliveryRequest{Requester: "alice", Amount: 3})

		assert.NoError(t, handler.Handle(context.Background(), event))
	})
}

func TestRollbackEventHandlers_Handle(t *testing.T) {
	id := int64(42)

	t.Run("routes rollback.request to the store", func(t *testing.T) {
		store := mocks.NewMockDeliveryStore(t)
		store.EXPECT().MarkDeliveryFailed(mock.Anything, id).Return(nil).Once()

		handler := NewRollbackEventHandlers(application.NewRollbackDelivery(store, testLogger()), testLogger())

		event := events.NewEvent("", events.RollbackRequestedEvent, domain.RollbackRequest{
			DeliveryRequest: domain.DeliveryRequest{Requester: "alice", Amount: 3},
			DeliveryID:      &id,
		})

		assert.NoError(t, handler.Handle(context.Background(), event))
	})

	t.Run("acks even when the store fails", func(t *testing.T) {
		store := mocks.NewMockDeliveryStore(t)
		store.EXPECT().MarkDeliveryFailed(mock.Anything, id).
			Return(domain.ErrDeliveryNotFound).Once()

		handler := NewRollbackEventHandlers(application.NewRollbackDelivery(store, testLogger()), testLogger())

		event := events.NewEvent("", events.RollbackRequestedEvent, domain.RollbackRequest{
			DeliveryRequest: domain.DeliveryRequest{Requester: "bob", Amount: 5},
			DeliveryID:      &id,
		})

		require.NoError(t, handler.Handle(context.Background(), event))
	})

	t.Run("acks malformed payload", func(t *testing.T) {
		store := mocks.NewMockDeliveryStore(t)
		handler := NewRollbackEventHandlers(application.NewRollbackDelivery(store, testLogger()), testLogger())

		event := events.NewEvent("", events.RollbackRequestedEvent, json.RawMessage(`{not json`))

		assert.NoError(t, handler.Handle(context.Background(), event))
	})
}
