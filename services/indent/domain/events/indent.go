package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicIndentSubmitted carries IndentSubmittedEvent messages.
const TopicIndentSubmitted = "indent.submitted"

// IndentSubmittedEvent is published transactionally with the log append.
// Consumers invalidate the cached history view so the submission is visible
// ahead of the cache TTL.
type IndentSubmittedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	MRN         string    `json:"mrn"`
	Department  string    `json:"department"`
	RequestedBy string    `json:"requested_by"`
	LineCount   int       `json:"line_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}
