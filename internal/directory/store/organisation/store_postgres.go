package organisation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"supportdir/internal/directory/models"
)

// Postgres persists organisations in PostgreSQL. Administrators and the
// address travel as JSONB documents; the verification columns stay relational
// so the conditional unverify write can be a single statement.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed organisation store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Schema creates the organisations table. Applied by deployments and the
// integration tests; no migration tooling is wired yet.
const Schema = `
CREATE TABLE IF NOT EXISTS organisations (
	id                      UUID PRIMARY KEY,
	name                    TEXT NOT NULL,
	is_verified             BOOLEAN NOT NULL DEFAULT FALSE,
	last_substantive_update TIMESTAMPTZ NOT NULL,
	updated_at              TIMESTAMPTZ NOT NULL,
	administrators          JSONB NOT NULL DEFAULT '[]',
	address                 JSONB NOT NULL DEFAULT '{}'
)`

// EnsureSchema applies the schema.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure organisations schema: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, id uuid.UUID) (*models.Organisation, error) {
	query := `
		SELECT id, name, is_verified, last_substantive_update, updated_at, administrators, address
		FROM organisations
		WHERE id = $1
	`
	org, err := scanOrganisation(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get organisation: %w", err)
	}
	return org, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Organisation, error) {
	query := `
		SELECT id, name, is_verified, last_substantive_update, updated_at, administrators, address
		FROM organisations
		ORDER BY name
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list organisations: %w", err)
	}
	defer rows.Close()

	var out []*models.Organisation
	for rows.Next() {
		org, err := scanOrganisation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organisation: %w", err)
		}
		out = append(out, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list organisations: %w", err)
	}
	return out, nil
}

func (s *Postgres) Create(ctx context.Context, org *models.Organisation) error {
	admins, err := json.Marshal(org.Administrators)
	if err != nil {
		return fmt.Errorf("marshal administrators: %w", err)
	}
	addr, err := json.Marshal(org.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}

	query := `
		INSERT INTO organisations (id, name, is_verified, last_substantive_update, updated_at, administrators, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.pool.Exec(ctx, query,
		org.ID, org.Name, org.IsVerified, org.LastSubstantiveUpdate, org.UpdatedAt, admins, addr)
	if err != nil {
		return fmt.Errorf("create organisation: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateAddress(ctx context.Context, id uuid.UUID, addr models.Address, substantive bool, now time.Time) error {
	payload, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}

	query := `
		UPDATE organisations
		SET address = $2,
		    updated_at = $3,
		    last_substantive_update = CASE WHEN $4 THEN $3 ELSE last_substantive_update END
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query, id, payload, now, substantive)
	if err != nil {
		return fmt.Errorf("update organisation address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Unverify performs the conditional demotion write. The predicate on
// is_verified is the optimistic concurrency check: overlapping runs race on
// it and only one can win. last_substantive_update is deliberately absent
// from the SET list.
func (s *Postgres) Unverify(ctx context.Context, id uuid.UUID, now time.Time) error {
	query := `
		UPDATE organisations
		SET is_verified = FALSE, updated_at = $2
		WHERE id = $1 AND is_verified = TRUE
	`
	tag, err := s.pool.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("unverify organisation: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM organisations WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("unverify organisation: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrAlreadyUnverified
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrganisation(row rowScanner) (*models.Organisation, error) {
	var (
		org    models.Organisation
		admins []byte
		addr   []byte
	)
	if err := row.Scan(&org.ID, &org.Name, &org.IsVerified,
		&org.LastSubstantiveUpdate, &org.UpdatedAt, &admins, &addr); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(admins, &org.Administrators); err != nil {
		return nil, fmt.Errorf("unmarshal administrators: %w", err)
	}
	if err := json.Unmarshal(addr, &org.Address); err != nil {
		return nil, fmt.Errorf("unmarshal address: %w", err)
	}
	return &org, nil
}
