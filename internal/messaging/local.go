package messaging

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

// Bus is the in-process session bus. Every dispatched action and every toast
// is fanned out over a gochannel topic to whichever observers are wired
// (toast sinks, the snapshot writer, tests). Nothing crosses the process
// boundary.
type Bus struct {
	channel *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		channel: gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
	}
}

func (b *Bus) Publisher(topicName string) IPublisher {
	return &topicPublisher{topicName: topicName, channel: b.channel}
}

func (b *Bus) Subscriber(topicName string) ISubscriber {
	return &topicSubscriber{topicName: topicName, channel: b.channel}
}

func (b *Bus) Close() error {
	return b.channel.Close()
}

type topicPublisher struct {
	topicName string
	channel   *gochannel.GoChannel
}

func (p *topicPublisher) Publish(messages ...*message.Message) error {
	return p.channel.Publish(p.topicName, messages...)
}

func (p *topicPublisher) Close() error {
	return p.channel.Close()
}

type topicSubscriber struct {
	topicName string
	channel   *gochannel.GoChannel
}

func (s *topicSubscriber) Subscribe() <-chan *message.Message {
	sub, err := s.channel.Subscribe(context.Background(), s.topicName)
	if err != nil {
		zap.L().Error("Failed to subscribe to topic", zap.String("topic", s.topicName), zap.Error(err))
		return nil
	}
	return sub
}

func (s *topicSubscriber) Close() error {
	return s.channel.Close()
}
