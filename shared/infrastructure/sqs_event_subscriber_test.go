package infrastructure

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderflow/delivery-system/shared/events"
)

// fixedResponseClient answers every SQS call with the same canned payload.
type fixedResponseClient struct {
	body string
}

func (c *fixedResponseClient) Do(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/x-amz-json-1.0"}},
		Body:       io.NopCloser(strings.NewReader(c.body)),
	}, nil
}

func newTestSubscriber(t *testing.T, receiveBody string) *SQSEventSubscriber {
	t.Helper()

	client := sqs.New(sqs.Options{
		Region:       "us-east-1",
		Credentials:  aws.AnonymousCredentials{},
		BaseEndpoint: aws.String("http://localhost:4566"),
		HTTPClient:   &fixedResponseClient{body: receiveBody},
	})

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewEventHandlerFunc("test-handler", func(ctx context.Context, event *events.Event) error {
		return nil
	})

	return NewSQSEventSubscriber(client, "http://localhost:4566/000000000000/queue", handler, logger)
}

func TestSQSEventSubscriberRead(t *testing.T) {
	t.Run("skips a body of JSON null without crashing", func(t *testing.T) {
		s := newTestSubscriber(t, `{"Messages":[{"MessageId":"m1","ReceiptHandle":"rh","Body":"null"}]}`)

		assert.NotPanics(t, func() {
			require.NoError(t, s.read(context.Background()))
		})

		select {
		case msg := <-s.inboundMessages:
			t.Fatalf("poison message was forwarded to a worker: %+v", msg)
		default:
		}
	})

	t.Run("skips a malformed body", func(t *testing.T) {
		s := newTestSubscriber(t, `{"Messages":[{"MessageId":"m2","ReceiptHandle":"rh","Body":"{not json"}]}`)

		require.NoError(t, s.read(context.Background()))

		select {
		case msg := <-s.inboundMessages:
			t.Fatalf("malformed message was forwarded to a worker: %+v", msg)
		default:
		}
	})

	t.Run("forwards a well-formed event", func(t *testing.T) {
		body := `{"Messages":[{"MessageId":"m3","ReceiptHandle":"rh3","Body":"{\"topic\":\"deliver.request\",\"event_type\":\"deliver.request\",\"data\":{\"requester\":\"alice\",\"amount\":3}}"}]}`
		s := newTestSubscriber(t, body)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		go func() {
			_ = s.read(ctx)
		}()

		select {
		case msg := <-s.inboundMessages:
			require.NotNil(t, msg.Event)
			assert.Equal(t, events.Topic(events.DeliveryRequestedEvent), msg.Event.Topic)
			id, ok := msg.Event.Metadata.Get(SQSMessageIDKey)
			require.True(t, ok)
			assert.Equal(t, "m3", id)
		case <-ctx.Done():
			t.Fatal("event was not forwarded to a worker")
		}
	})
}
