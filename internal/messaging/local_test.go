package messaging

import (
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishReachesSubscriber(t *testing.T) {
	bus := NewBus()
	defer func() { _ = bus.Close() }()

	received := bus.Subscriber("test.topic").Subscribe()
	require.NotNil(t, received)

	publisher := bus.Publisher("test.topic")
	require.NoError(t, publisher.Publish(message.NewMessage(watermill.NewUUID(), []byte("payload"))))

	select {
	case msg := <-received:
		assert.Equal(t, "payload", string(msg.Payload))
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("message never arrived")
	}
}

func TestBus_TopicsAreIsolated(t *testing.T) {
	bus := NewBus()
	defer func() { _ = bus.Close() }()

	other := bus.Subscriber("other.topic").Subscribe()
	require.NotNil(t, other)

	publisher := bus.Publisher("test.topic")
	require.NoError(t, publisher.Publish(message.NewMessage(watermill.NewUUID(), []byte("payload"))))

	select {
	case msg := <-other:
		t.Fatalf("unexpected message on other topic: %s", msg.Payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_FanOut(t *testing.T) {
	bus := NewBus()
	defer func() { _ = bus.Close() }()

	first := bus.Subscriber("test.topic").Subscribe()
	second := bus.Subscriber("test.topic").Subscribe()
	require.NotNil(t, first)
	require.NotNil(t, second)

	publisher := bus.Publisher("test.topic")
	require.NoError(t, publisher.Publish(message.NewMessage(watermill.NewUUID(), []byte("payload"))))

	for _, ch := range []<-chan *message.Message{first, second} {
		select {
		case msg := <-ch:
			msg.Ack()
		case <-time.After(time.Second):
			t.Fatal("fan-out subscriber never received the message")
		}
	}
}
