package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/sgacceso/service-acceso-go/internal/terminal/entity"
)

// Repo provides data access for the terminals table.
type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

// EnsureTable creates the terminals table if missing (idempotent).
func (r *Repo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS terminales (
  id TEXT PRIMARY KEY,
  nombre TEXT NOT NULL DEFAULT '',
  secret_hash TEXT NOT NULL,
  punto_acceso TEXT NOT NULL DEFAULT '',
  activo BOOLEAN NOT NULL DEFAULT TRUE
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// GetByID returns a terminal or (nil, nil) when unknown.
func (r *Repo) GetByID(ctx context.Context, id string) (*entity.Terminal, error) {
	const q = `SELECT id, nombre, secret_hash, punto_acceso, activo
	  FROM terminales WHERE id = $1`
	var row entity.Terminal
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Upsert inserts or replaces a terminal registration.
func (r *Repo) Upsert(ctx context.Context, t *entity.Terminal) error {
	const q = `INSERT INTO terminales (id, nombre, secret_hash, punto_acceso, activo)
	  VALUES ($1, $2, $3, $4, $5)
	  ON CONFLICT (id) DO UPDATE SET
	    nombre = EXCLUDED.nombre,
	    secret_hash = EXCLUDED.secret_hash,
	    punto_acceso = EXCLUDED.punto_acceso,
	    activo = EXCLUDED.activo`
	_, err := r.db.ExecContext(ctx, q, t.ID, t.Nombre, t.SecretHash, t.PuntoAcceso, t.Activo)
	return err
}
