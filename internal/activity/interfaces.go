package activity

import (
	"time"

	"sessiond/internal/models"
)

// Entry is one journaled action: what ran, when, and whether the session was
// authenticated after it. The journal never stores credentials, codes or
// tokens; action names and timestamps only.
type Entry struct {
	Action          string    `json:"action"`
	At              time.Time `json:"at"`
	IsAuthenticated bool      `json:"is_authenticated"`
}

// IJournal is the searchable history of dispatched actions.
type IJournal interface {
	Record(entry Entry) error
	Search(searchCriteria map[string][]string) ([]Entry, error)
	CountByDay(searchCriteria map[string][]string, days int) ([]models.TimeSeriesPoint, error)
	Close() error
}
