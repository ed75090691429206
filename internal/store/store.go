package store

import (
	"encoding/json"
	"sync"
	"time"

	"sessiond/internal/messaging"
	"sessiond/internal/models"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// ActionEnvelope is what observers on the actions topic see: which action
// ran, when, and the post-reduction snapshot-relevant fields. The full state
// is never published; observers that need more read the store directly.
type ActionEnvelope struct {
	Action          string    `json:"action"`
	At              time.Time `json:"at"`
	IsAuthenticated bool      `json:"is_authenticated"`
}

// Store is the session store: the only shared mutable resource of the
// engine. All mutations go through Dispatch, which applies the reducer under
// a lock and then publishes the action envelope for observers.
type Store struct {
	mu        sync.RWMutex
	state     models.SessionState
	publisher messaging.IPublisher
}

func New(publisher messaging.IPublisher) *Store {
	return &Store{
		state:     models.NewSessionState(),
		publisher: publisher,
	}
}

// Dispatch applies the action synchronously. The publish that follows is
// observational only; reducer state is already settled when it happens.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	envelope := ActionEnvelope{
		Action:          action.Name(),
		At:              time.Now().UTC(),
		IsAuthenticated: s.state.IsAuthenticated,
	}
	s.mu.Unlock()

	zap.L().Debug("Dispatched action", zap.String("action", action.Name()))

	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		zap.L().Error("Failed to marshal action envelope", zap.Error(err))
		return
	}
	if err = s.publisher.Publish(message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		zap.L().Error("Failed to publish action", zap.String("action", action.Name()), zap.Error(err))
	}
}

// State returns a copy; the nested user pointer is cloned so callers can
// never mutate store-owned data.
func (s *Store) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.state
	state.User = cloneUser(s.state.User)
	return state
}
