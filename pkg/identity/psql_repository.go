package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-actas/pkg/principal"
)

// PostgresIdentityRepository implements IdentityRepository using PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE principal (
//	    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//	    username TEXT NOT NULL,
//	    password BYTEA NOT NULL,
//	    name TEXT,
//	    privileged BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
//	    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
//	);
//	CREATE UNIQUE INDEX idx_principal_username ON principal (username);
type PostgresIdentityRepository struct {
	db *pgxpool.Pool
}

// NewPostgresIdentityRepository creates a new PostgreSQL-based identity repository.
func NewPostgresIdentityRepository(db *pgxpool.Pool) *PostgresIdentityRepository {
	return &PostgresIdentityRepository{
		db: db,
	}
}

const principalColumns = "id, username, password, COALESCE(name, ''), privileged, created_at, updated_at"

// GetPrincipalByID returns a principal by ID.
func (r *PostgresIdentityRepository) GetPrincipalByID(ctx context.Context, id uuid.UUID) (principal.Principal, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+principalColumns+" FROM principal WHERE id = $1", id)

	p, err := scanPrincipal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return principal.Principal{}, ErrPrincipalNotFound
		}
		return principal.Principal{}, fmt.Errorf("query principal by id: %w", err)
	}
	return p, nil
}

// FindPrincipalsByUsername returns every principal with the exact username.
// No LIMIT is applied on purpose so that duplicate rows surface upstream as
// an integrity violation instead of being hidden.
func (r *PostgresIdentityRepository) FindPrincipalsByUsername(ctx context.Context, username string) ([]principal.Principal, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+principalColumns+" FROM principal WHERE username = $1", username)
	if err != nil {
		return nil, fmt.Errorf("query principals by username: %w", err)
	}
	defer rows.Close()

	var principals []principal.Principal
	for rows.Next() {
		p, err := scanPrincipal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan principal row: %w", err)
		}
		principals = append(principals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate principal rows: %w", err)
	}
	return principals, nil
}

func scanPrincipal(row pgx.Row) (principal.Principal, error) {
	var p principal.Principal
	err := row.Scan(&p.ID, &p.Username, &p.Password, &p.Name, &p.Privileged, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return principal.Principal{}, err
	}
	return p, nil
}
