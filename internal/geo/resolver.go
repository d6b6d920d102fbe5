package geo

import (
	"context"

	"supportdir/internal/directory/models"
	"supportdir/pkg/derrors"
)

// Resolver resolves a postal code to geographic coordinates.
type Resolver interface {
	// Resolve returns coordinates for a postcode. A postcode the service does
	// not know yields a not_found domain error; network and service failures
	// yield transient ones. Blank postcodes short-circuit to not_found without
	// network I/O.
	Resolve(ctx context.Context, postcode string) (*models.Coordinates, error)
}

// IsNotFound reports whether err is the terminal "postcode does not exist"
// outcome rather than a retryable failure.
func IsNotFound(err error) bool {
	return derrors.CategoryOf(err) == derrors.CategoryNotFound
}

func errNotFound(op, postcode string) error {
	return derrors.New(derrors.CategoryNotFound, op, "postcode not found: "+postcode, nil)
}
