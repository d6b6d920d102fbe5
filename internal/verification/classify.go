package verification

import (
	"strings"
	"time"

	"supportdir/internal/directory/models"
)

// ElapsedDays computes whole days between last and now: millisecond-precision
// division truncated toward zero, not calendar-day boundaries. An
// organisation modified 89.9 days ago is on day 89.
func ElapsedDays(now, last time.Time) int {
	return int(now.UTC().Sub(last.UTC()) / (24 * time.Hour))
}

// Classify derives the scan decision for one organisation.
//
// The reminder rule is an exact-day match: if a scheduled run is missed on
// day 90 the reminder window is silently skipped. That gap is retained,
// documented current behaviour; converting it to a crossed-threshold check
// needs a persisted per-organisation marker first.
func Classify(org *models.Organisation, now time.Time, reminderDay, expiryDay int) Decision {
	decision := Decision{OrganisationID: org.ID}

	admin, ok := org.SelectedAdministrator()
	if !ok {
		decision.Skipped = true
		decision.SkipReason = "no selected administrator"
		return decision
	}
	if strings.TrimSpace(admin.Email) == "" {
		decision.Skipped = true
		decision.SkipReason = "selected administrator has no email"
		return decision
	}

	decision.ElapsedDays = ElapsedDays(now, org.LastSubstantiveUpdate)
	decision.Remind = decision.ElapsedDays == reminderDay
	decision.Unverify = decision.ElapsedDays >= expiryDay && org.IsVerified
	return decision
}
