package domain

import "time"

type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeNoResults Outcome = "no_results"
	OutcomeError     Outcome = "error"
	OutcomeStale     Outcome = "stale"
	OutcomeSkipped   Outcome = "skipped"
)

// LoadEvent describes how one panel trigger ended. It carries diagnostics
// only, never the payload itself.
type LoadEvent struct {
	Page       string        `json:"page"`
	Panel      string        `json:"panel"`
	Seq        uint64        `json:"seq"`
	Outcome    Outcome       `json:"outcome"`
	ErrorKind  string        `json:"error_kind,omitempty"`
	Message    string        `json:"message,omitempty"`
	Items      int           `json:"items"`
	Duration   time.Duration `json:"duration_ns"`
	FinishedAt time.Time     `json:"finished_at"`
}

// RefreshRequest asks every live page holding the named panel to reload it.
type RefreshRequest struct {
	Panel       string    `json:"panel"`
	RequestedBy string    `json:"requested_by,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
