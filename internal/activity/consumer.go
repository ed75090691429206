package activity

import (
	"encoding/json"

	"sessiond/internal/messaging"

	"go.uber.org/zap"
)

// StartJournalWriter drains the actions topic into the journal. Recording is
// best effort; an indexing failure never reaches the flow that dispatched
// the action.
func StartJournalWriter(subscriber messaging.ISubscriber, journal IJournal) {
	messages := subscriber.Subscribe()
	if messages == nil {
		return
	}

	go func() {
		for msg := range messages {
			var entry Entry
			if err := json.Unmarshal(msg.Payload, &entry); err != nil {
				zap.L().Error("Failed to unmarshal journal entry", zap.Error(err))
				msg.Ack()
				continue
			}
			if err := journal.Record(entry); err != nil {
				zap.L().Error("Failed to record journal entry", zap.Error(err))
			}
			msg.Ack()
		}
	}()
}
