package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orderflow/delivery-system/delivery-service/domain"
	"github.com/orderflow/delivery-system/delivery-service/mocks"
	"github.com/orderflow/delivery-system/shared/events"
)

func TestRequestDelivery_Execute(t *testing.T) {
	t.Run("publishes delivery request", func(t *testing.T) {
		publisher := mocks.NewMockPublisher(t)

		var published *events.Event
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).
			Run(func(ctx context.Context, evts ...*events.Event) {
				published = evts[0]
			}).
			Return(nil).Once()

		uc := NewRequestDelivery(publisher, testLogger())
		correlationID, err := uc.Execute(context.Background(), domain.DeliveryRequest{Requester: "alice", Amount: 3})
		require.NoError(t, err)
		assert.False(t, correlationID.IsZero())

		require.NotNil(t, published)
		assert.Equal(t, events.Topic(events.DeliveryRequestedEvent), published.Topic)
		assert.Equal(t, correlationID, published.CorrelationID)
	})

	t.Run("rejects invalid request without publishing", func(t *testing.T) {
		publisher := mocks.NewMockPublisher(t)

		uc := NewRequestDelivery(publisher, testLogger())
		_, err := uc.Execute(context.Background(), domain.DeliveryRequest{Requester: "alice"})
		assert.ErrorContains(t, err, "amount must be positive")
	})

	t.Run("publish failure surfaces", func(t *testing.T) {
		publisher := mocks.NewMockPublisher(t)
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).
			Return(errors.New("broker unavailable")).Once()

		uc := NewRequestDelivery(publisher, testLogger())
		_, err := uc.Execute(context.Background(), domain.DeliveryRequest{Requester: "alice", Amount: 3})
		assert.ErrorContains(t, err, "failed to publish delivery request")
	})
}

func TestGetDelivery_Execute(t *testing.T) {
	store := mocks.NewMockDeliveryStore(t)
	record := &domain.DeliveryRecord{ID: 42, Requester: "alice", Amount: 3, Status: domain.StatusPending}
	store.EXPECT().FindByID(mock.Anything, int64(42)).Return(record, nil).Once()

	uc := NewGetDelivery(store)
	got, err := uc.Execute(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}
