package toast

import (
	"encoding/json"
	"time"

	"sessiond/internal/messaging"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast is a user-visible notification. Emission is fire-and-forget: no
// delivery guarantee, no acknowledgement back to the emitting flow.
type Toast struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type IToaster interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// Emitter publishes toasts on the session bus. Publish failures are logged
// and swallowed; a toast must never fail the flow that emitted it.
type Emitter struct {
	publisher messaging.IPublisher
}

func NewEmitter(publisher messaging.IPublisher) *Emitter {
	return &Emitter{publisher: publisher}
}

func (e *Emitter) Success(msg string) { e.emit(LevelSuccess, msg) }
func (e *Emitter) Error(msg string)   { e.emit(LevelError, msg) }
func (e *Emitter) Info(msg string)    { e.emit(LevelInfo, msg) }

func (e *Emitter) emit(level Level, text string) {
	payload, err := json.Marshal(Toast{Level: level, Message: text, At: time.Now().UTC()})
	if err != nil {
		zap.L().Error("Failed to marshal toast", zap.Error(err))
		return
	}

	if err = e.publisher.Publish(message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		zap.L().Error("Failed to publish toast", zap.Error(err))
	}
}

// ISink consumes toasts off the bus.
type ISink interface {
	Handle(t Toast)
}

// StartSink drains the subscriber into the sink until the topic closes.
func StartSink(subscriber messaging.ISubscriber, sink ISink) {
	ch := subscriber.Subscribe()
	if ch == nil {
		return
	}

	go func() {
		for msg := range ch {
			var t Toast
			if err := json.Unmarshal(msg.Payload, &t); err != nil {
				zap.L().Error("Failed to unmarshal toast", zap.Error(err))
				msg.Ack()
				continue
			}
			sink.Handle(t)
			msg.Ack()
		}
	}()
}
