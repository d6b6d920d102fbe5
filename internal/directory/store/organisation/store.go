package organisation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"supportdir/internal/directory/models"
)

// Sentinel errors shared by all store implementations.
var (
	// ErrNotFound is returned when the organisation no longer exists.
	ErrNotFound = errors.New("organisation not found")

	// ErrAlreadyUnverified is returned by Unverify when the stored flag was
	// already false at mutation time. It signals an overlapping run got there
	// first and prevents double-processing.
	ErrAlreadyUnverified = errors.New("organisation already unverified")
)

// Store is the persistence boundary consumed by the lifecycle engine and the
// directory service. Stores are pure I/O; domain rules live in services.
type Store interface {
	// Get returns one organisation or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*models.Organisation, error)

	// List returns every organisation. The scanner filters candidates itself
	// so that skipped organisations can be counted.
	List(ctx context.Context) ([]*models.Organisation, error)

	// Create inserts a new organisation.
	Create(ctx context.Context, org *models.Organisation) error

	// UpdateAddress replaces the stored address. A substantive edit also moves
	// the aging clock; a coordinate-only refresh does not.
	UpdateAddress(ctx context.Context, id uuid.UUID, addr models.Address, substantive bool, now time.Time) error

	// Unverify conditionally flips IsVerified true -> false and stamps
	// UpdatedAt. It must not touch LastSubstantiveUpdate: demotion does not
	// restart the aging clock. Returns ErrNotFound or ErrAlreadyUnverified
	// when the conditional write matches no row.
	Unverify(ctx context.Context, id uuid.UUID, now time.Time) error
}
