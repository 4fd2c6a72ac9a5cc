package domain

import "time"

// Translation request status constants
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

// TranslationJob is the persisted lifecycle record for one translation
// request. The request ID is the sole correlation key between HTTP, the
// store, and the queue message.
type TranslationJob struct {
	RequestID      string    `db:"request_id"`
	Status         string    `db:"status"`
	OriginalText   string    `db:"original_text"`
	TranslatedText *string   `db:"translated_text"`
	TargetLanguage string    `db:"target_language"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// JobMessage is the queue payload published per accepted submission. It
// duplicates the record's input fields so the worker can log context even
// when the store is unavailable, but the record stays authoritative.
type JobMessage struct {
	RequestID      string `json:"requestId"`
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}
