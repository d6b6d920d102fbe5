// Ports consumed by the scanner. Kept as package-local interfaces so the
// engine can be exercised with mocks and re-wired against any store.
package verification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"supportdir/internal/directory/models"
	"supportdir/internal/events"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks OrganisationStore,Dispatcher,Publisher

// OrganisationStore is the persistence surface the engine needs: candidate
// enumeration plus the conditional demotion write.
type OrganisationStore interface {
	// List returns every organisation; a failure here aborts the run.
	List(ctx context.Context) ([]*models.Organisation, error)

	// Unverify conditionally flips the verified flag. Implementations return
	// organisation.ErrNotFound or organisation.ErrAlreadyUnverified when the
	// conditional write matches nothing.
	Unverify(ctx context.Context, id uuid.UUID, now time.Time) error
}

// Dispatcher sends lifecycle notifications. See notify.Dispatcher for the
// production SMTP implementation.
type Dispatcher interface {
	SendReminder(ctx context.Context, email, orgName string, elapsedDays int) bool
	SendExpiry(ctx context.Context, email, orgName string) bool
}

// Publisher emits lifecycle events, best effort.
type Publisher interface {
	Emit(ctx context.Context, event events.Event) error
}
