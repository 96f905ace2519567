package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		name    string
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"exact match", "deliver.request", "deliver.request", true},
		{"exact mismatch", "deliver.request", "deliver.confirmed", false},
		{"single wildcard", "rollback.request", "rollback.*", true},
		{"single wildcard mismatch length", "rollback.request.retry", "rollback.*", false},
		{"hash matches everything", "deliver.confirmed", "#", true},
		{"prefix hash", "rollback.inventory", "#.inventory", true},
		{"suffix hash", "deliver.request", "deliver.#", true},
		{"contains hash", "rollback.inventory", "#back#", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.topic.Matches(tt.pattern))
		})
	}
}

func TestNewTopic(t *testing.T) {
	_, err := NewTopic("")
	assert.ErrorIs(t, err, ErrInvalidTopic)

	topic, err := NewTopic("deliver.request")
	require.NoError(t, err)
	assert.Equal(t, "deliver.request", topic.String())
}

func TestEventUnmarshalPayload(t *testing.T) {
	type payload struct {
		Requester string `json:"requester"`
		Amount    int64  `json:"amount"`
	}

	t.Run("from raw message", func(t *testing.T) {
		event := NewEvent("", DeliveryRequestedEvent, json.RawMessage(`{"requester":"alice","amount":3}`))

		var got payload
		require.NoError(t, event.UnmarshalPayload(&got))
		assert.Equal(t, payload{Requester: "alice", Amount: 3}, got)
	})

	t.Run("from struct", func(t *testing.T) {
		event := NewEvent("", DeliveryRequestedEvent, payload{Requester: "bob", Amount: 5})

		var got payload
		require.NoError(t, event.UnmarshalPayload(&got))
		assert.Equal(t, int64(5), got.Amount)
	})

	t.Run("non-pointer receiver", func(t *testing.T) {
		event := NewEvent("", DeliveryRequestedEvent, payload{})

		var got payload
		assert.ErrorIs(t, event.UnmarshalPayload(got), ErrInvalidReceiver)
	})
}

func TestMetadataSetInitializesNilMap(t *testing.T) {
	var m Metadata
	m.Set("source", "test")

	got, ok := m.Get("source")
	require.True(t, ok)
	assert.Equal(t, "test", got)
}

func TestEventJSONRoundTrip(t *testing.T) {
	event := NewEvent("", DeliveryConfirmedEvent, map[string]interface{}{"deliveryId": float64(42)}).
		WithMetadata("source", "test")

	raw, err := event.ToJSON()
	require.NoError(t, err)

	decoded, err := FromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, Topic(DeliveryConfirmedEvent), decoded.Topic)
	assert.True(t, decoded.Metadata.Has("source"))
}
