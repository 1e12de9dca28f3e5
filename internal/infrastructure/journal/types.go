package journal

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one persisted saga summary: a consistency operation, the targets
// it resolved and the subset that actually updated. Entries exist for
// observability; nothing replays them.
type Entry struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id"`
	Operation string    `json:"operation"`
	Targets   int       `json:"targets"`
	Updated   int       `json:"updated"`
	Failures  []string  `json:"failures,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	bucketKey []byte
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}
