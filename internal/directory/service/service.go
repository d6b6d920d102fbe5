// Entity mutations for the directory. The service owns the two timestamp
// rules: substantive edits move the aging clock, coordinate-only refreshes
// move bookkeeping only.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"supportdir/internal/directory/models"
	"supportdir/internal/directory/store/organisation"
	"supportdir/internal/geo"
	"supportdir/pkg/derrors"
)

// Service is the directory entity-CRUD layer.
type Service struct {
	store  organisation.Store
	geo    *geo.Coordinator
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock sets the time source; used by tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// New constructs the directory service.
func New(store organisation.Store, coordinator *geo.Coordinator, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("organisation store is required")
	}
	if coordinator == nil {
		return nil, fmt.Errorf("geocode coordinator is required")
	}

	s := &Service{
		store:  store,
		geo:    coordinator,
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get returns one organisation.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Organisation, error) {
	org, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, organisation.ErrNotFound) {
			return nil, derrors.New(derrors.CategoryNotFound, "directory.get", "organisation not found", err)
		}
		return nil, derrors.New(derrors.CategoryTransient, "directory.get", "load organisation", err)
	}
	return org, nil
}

// List returns every organisation.
func (s *Service) List(ctx context.Context) ([]*models.Organisation, error) {
	orgs, err := s.store.List(ctx)
	if err != nil {
		return nil, derrors.New(derrors.CategoryTransient, "directory.list", "list organisations", err)
	}
	return orgs, nil
}

// Create registers a new organisation. The address is geocoded on the way in;
// a resolution failure is reported as a warning and never blocks the insert.
func (s *Service) Create(ctx context.Context, org *models.Organisation) (*geo.Warning, error) {
	if org.Name == "" {
		return nil, derrors.New(derrors.CategoryValidation, "directory.create", "organisation name is required", nil)
	}
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}

	addr, warning := s.geo.Sync(ctx, "", org.Address)
	org.Address = addr

	now := s.clock().UTC()
	org.LastSubstantiveUpdate = now
	org.UpdatedAt = now

	if err := s.store.Create(ctx, org); err != nil {
		return warning, derrors.New(derrors.CategoryTransient, "directory.create", "store organisation", err)
	}

	s.logger.Info("organisation created", "organisation_id", org.ID, "name", org.Name)
	return warning, nil
}

// UpdateAddress applies an address edit. The geocode coordinator is consulted
// only when the normalized postcode changed or coordinates are missing, and
// the aging clock moves only when a textual field actually changed.
func (s *Service) UpdateAddress(ctx context.Context, id uuid.UUID, addr models.Address) (*models.Organisation, *geo.Warning, error) {
	org, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	synced, warning := s.geo.Sync(ctx, org.Address.Postcode, addr)
	substantive := textualChange(org.Address, synced)

	now := s.clock().UTC()
	if err := s.store.UpdateAddress(ctx, id, synced, substantive, now); err != nil {
		if errors.Is(err, organisation.ErrNotFound) {
			return nil, warning, derrors.New(derrors.CategoryNotFound, "directory.update_address", "organisation not found", err)
		}
		return nil, warning, derrors.New(derrors.CategoryTransient, "directory.update_address", "store address", err)
	}

	org.Address = synced
	org.UpdatedAt = now
	if substantive {
		org.LastSubstantiveUpdate = now
	}

	s.logger.Info("organisation address updated",
		"organisation_id", id, "substantive", substantive, "geocode_warning", warning != nil)
	return org, warning, nil
}

// SyncLocations geocodes a batch of service locations in one pass. Locations
// sharing a postcode cost a single lookup; failed resolutions keep whatever
// coordinates each location already carried.
func (s *Service) SyncLocations(ctx context.Context, locations []models.ServiceLocation) ([]models.ServiceLocation, []geo.Warning) {
	updates := make([]geo.AddressUpdate, 0, len(locations))
	for _, loc := range locations {
		updates = append(updates, geo.AddressUpdate{Address: loc.Address})
	}

	synced, warnings := s.geo.SyncAll(ctx, updates)
	out := make([]models.ServiceLocation, len(locations))
	for i, loc := range locations {
		loc.Address = synced[i]
		out[i] = loc
	}
	return out, warnings
}

// textualChange reports whether the edit touched anything a person typed.
// Coordinate refreshes alone are bookkeeping, not substantive updates.
func textualChange(old, updated models.Address) bool {
	return old.Line1 != updated.Line1 ||
		old.Line2 != updated.Line2 ||
		old.City != updated.City ||
		geo.NormalizePostcode(old.Postcode) != geo.NormalizePostcode(updated.Postcode)
}
