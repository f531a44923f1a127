// Package call tracks phone calls handled by the voice agent and ties them
// to the bookings they produced.
package call

import "strings"

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusMissed     Status = "missed"
	StatusFailed     Status = "failed"
)

// providerStatuses maps telephony provider call states onto ours.
var providerStatuses = map[string]Status{
	"queued":      StatusInProgress,
	"ringing":     StatusInProgress,
	"in-progress": StatusInProgress,
	"in_progress": StatusInProgress,
	"completed":   StatusCompleted,
	"busy":        StatusMissed,
	"no-answer":   StatusMissed,
	"no_answer":   StatusMissed,
	"canceled":    StatusMissed,
	"cancelled":   StatusMissed,
	"missed":      StatusMissed,
	"failed":      StatusFailed,
}

// Normalize maps a provider status onto a call status. Unknown values are
// reported with ok=false.
func Normalize(raw string) (Status, bool) {
	s, ok := providerStatuses[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

// Ended reports whether the call is over.
func (s Status) Ended() bool {
	return s != StatusInProgress
}
