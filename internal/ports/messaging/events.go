package messaging

import "time"

// EntrySyncEvent is the JSON payload sent via SQS for the sync queue. It
// names the entry that changed locally; the sync worker loads the current
// record and pushes it to the cloud gateway.
type EntrySyncEvent struct {
	EntryID    string    `json:"entryId"`
	Deleted    bool      `json:"deleted,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// SummaryEmailEvent is the JSON payload sent via SQS for the email queue,
// requesting a pay-summary mail for one accounting period.
type SummaryEmailEvent struct {
	Email      string    `json:"email"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	OccurredAt time.Time `json:"occurredAt"`
}
