package geo

import (
	"context"
	"log/slog"

	"supportdir/internal/directory/models"
)

// Coordinator decides when an address actually needs geocoding. It never
// blocks an entity write: resolution failures surface as warnings and the
// previously stored coordinates stay in place.
type Coordinator struct {
	resolver Resolver
	logger   *slog.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLogger sets the coordinator logger.
func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator constructs the address sync coordinator.
func NewCoordinator(resolver Resolver, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		resolver: resolver,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Warning reports a non-blocking resolution problem for one address.
type Warning struct {
	Postcode string
	Message  string
}

// AddressUpdate pairs the postcode stored before the mutation with the
// incoming address, as supplied by the entity-CRUD layer.
type AddressUpdate struct {
	OldPostcode string
	Address     models.Address
}

// Sync returns the address to persist. The resolver is consulted only when
// the normalized postcode changed or coordinates are missing; otherwise the
// address passes through untouched with zero external calls.
func (c *Coordinator) Sync(ctx context.Context, oldPostcode string, addr models.Address) (models.Address, *Warning) {
	out, warnings := c.SyncAll(ctx, []AddressUpdate{{OldPostcode: oldPostcode, Address: addr}})
	if len(warnings) > 0 {
		return out[0], &warnings[0]
	}
	return out[0], nil
}

// SyncAll evaluates each address independently, memoizing resolutions by
// normalized postcode so identical postcodes in one batch cost one lookup.
func (c *Coordinator) SyncAll(ctx context.Context, updates []AddressUpdate) ([]models.Address, []Warning) {
	type outcome struct {
		coords *models.Coordinates
		err    error
	}
	memo := make(map[string]outcome)

	out := make([]models.Address, 0, len(updates))
	var warnings []Warning

	for _, update := range updates {
		addr := update.Address
		newPostcode := NormalizePostcode(addr.Postcode)

		if newPostcode == "" {
			// Nothing to resolve; stored coordinates (if any) stay as they are.
			out = append(out, addr)
			continue
		}

		unchanged := newPostcode == NormalizePostcode(update.OldPostcode)
		if unchanged && addr.Coordinates != nil {
			out = append(out, addr)
			continue
		}

		key := cacheKey(newPostcode)
		res, seen := memo[key]
		if !seen {
			coords, err := c.resolver.Resolve(ctx, newPostcode)
			res = outcome{coords: coords, err: err}
			memo[key] = res
		}

		if res.err != nil {
			msg := "postcode could not be resolved, keeping stored coordinates"
			if !IsNotFound(res.err) {
				msg = "geocode lookup failed, keeping stored coordinates"
			}
			c.logger.Warn(msg, "postcode", newPostcode, "error", res.err)
			warnings = append(warnings, Warning{Postcode: newPostcode, Message: msg})
			out = append(out, addr)
			continue
		}

		coords := *res.coords
		addr.Coordinates = &coords
		out = append(out, addr)
	}

	return out, warnings
}
