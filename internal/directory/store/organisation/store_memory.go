package organisation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"supportdir/internal/directory/models"
)

// InMemory is a map-backed Store for tests and local development.
type InMemory struct {
	mu   sync.RWMutex
	orgs map[uuid.UUID]*models.Organisation
}

// NewInMemory constructs an empty in-memory organisation store.
func NewInMemory() *InMemory {
	return &InMemory{orgs: make(map[uuid.UUID]*models.Organisation)}
}

func (s *InMemory) Get(_ context.Context, id uuid.UUID) (*models.Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.orgs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneOrganisation(org)
	return &cp, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Organisation, 0, len(s.orgs))
	for _, org := range s.orgs {
		cp := cloneOrganisation(org)
		out = append(out, &cp)
	}
	return out, nil
}

func (s *InMemory) Create(_ context.Context, org *models.Organisation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := cloneOrganisation(org)
	s.orgs[org.ID] = &cp
	return nil
}

func (s *InMemory) UpdateAddress(_ context.Context, id uuid.UUID, addr models.Address, substantive bool, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgs[id]
	if !ok {
		return ErrNotFound
	}
	org.Address = cloneAddress(addr)
	org.UpdatedAt = now
	if substantive {
		org.LastSubstantiveUpdate = now
	}
	return nil
}

func (s *InMemory) Unverify(_ context.Context, id uuid.UUID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgs[id]
	if !ok {
		return ErrNotFound
	}
	if !org.IsVerified {
		return ErrAlreadyUnverified
	}
	org.IsVerified = false
	org.UpdatedAt = now
	return nil
}

func cloneOrganisation(org *models.Organisation) models.Organisation {
	cp := *org
	cp.Administrators = append([]models.Administrator(nil), org.Administrators...)
	cp.Address = cloneAddress(org.Address)
	return cp
}

func cloneAddress(addr models.Address) models.Address {
	cp := addr
	if addr.Coordinates != nil {
		coords := *addr.Coordinates
		cp.Coordinates = &coords
	}
	return cp
}
