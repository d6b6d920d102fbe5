// Package verification implements the lifecycle engine that keeps the
// directory's verified badges honest: organisations untouched for 90 days get
// a reminder, and verified organisations untouched for 100 days or more are
// demoted to unverified.
package verification

import (
	"github.com/google/uuid"
)

// Action is the classification outcome for one organisation in one scan.
type Action string

const (
	// ActionNone means the organisation is inside its verification window.
	ActionNone Action = "none"

	// ActionRemind means the reminder threshold was hit exactly today.
	ActionRemind Action = "remind"

	// ActionUnverify means the organisation aged past the expiry threshold
	// while still verified.
	ActionUnverify Action = "unverify"
)

// Decision is derived fresh on every scan and never persisted. The remind and
// unverify rules are evaluated independently; with non-default thresholds
// both can apply in the same pass.
type Decision struct {
	OrganisationID uuid.UUID
	ElapsedDays    int
	Remind         bool
	Unverify       bool

	// Skipped is true when the organisation has no usable notification
	// recipient. Counted separately, never an error.
	Skipped    bool
	SkipReason string
}

// Action reports the dominant action for logging and diagnostics.
func (d Decision) Action() Action {
	switch {
	case d.Unverify:
		return ActionUnverify
	case d.Remind:
		return ActionRemind
	default:
		return ActionNone
	}
}

// BatchError records one per-organisation failure inside a scan.
type BatchError struct {
	OrganisationID uuid.UUID `json:"organisation_id"`
	Message        string    `json:"message"`
}

// BatchReport aggregates one scan run. Counts are exact; the order of Errors
// is not guaranteed.
type BatchReport struct {
	Total         int          `json:"total"`
	RemindersSent int          `json:"reminders_sent"`
	Unverified    int          `json:"unverified"`
	Skipped       int          `json:"skipped"`
	Cancelled     bool         `json:"cancelled"`
	Errors        []BatchError `json:"errors"`
}
