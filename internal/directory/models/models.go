package models

import (
	"time"

	"github.com/google/uuid"
)

// Organisation is a support provider listed in the directory. The lifecycle
// engine reads it and mutates only IsVerified; everything else is owned by the
// entity-CRUD layer.
type Organisation struct {
	ID         uuid.UUID
	Name       string
	IsVerified bool

	// LastSubstantiveUpdate is the aging clock for the verification window.
	// The unverify transition must never touch it, or a demoted organisation
	// would become eligible for another 90/100-day cycle prematurely.
	LastSubstantiveUpdate time.Time

	// UpdatedAt is bookkeeping only and moves on every write.
	UpdatedAt time.Time

	Administrators []Administrator
	Address        Address
}

// Administrator is a notification contact for an organisation. At most one
// administrator is selected; the selected one is the sole recipient of
// lifecycle mail.
type Administrator struct {
	Name       string
	Email      string
	IsSelected bool
}

// SelectedAdministrator returns the canonical notification recipient.
// Lists with more than one selected entry are normalized first-selected-wins;
// ok is false when no administrator is selected.
func (o *Organisation) SelectedAdministrator() (Administrator, bool) {
	for _, admin := range o.Administrators {
		if admin.IsSelected {
			return admin, true
		}
	}
	return Administrator{}, false
}

// Coordinates is a WGS84 longitude/latitude pair derived from a postcode.
type Coordinates struct {
	Longitude float64
	Latitude  float64
}

// Address is a postal location. Coordinates, when present, must have been
// derived from the stored Postcode; the geocoding synchronizer exists to keep
// that true.
type Address struct {
	Line1       string
	Line2       string
	City        string
	Postcode    string
	Coordinates *Coordinates
}

// ServiceLocation is a secondary address-bearing entity: one organisation may
// run services at several sites, each geocoded independently.
type ServiceLocation struct {
	ID             uuid.UUID
	OrganisationID uuid.UUID
	Name           string
	Address        Address
}

// GeocodeResult is the ephemeral outcome of one postcode resolution. It is
// consumed immediately and never persisted beyond the address it updates.
type GeocodeResult struct {
	Postcode    string
	Coordinates Coordinates
}
