package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sgacceso/service-acceso-go/internal/accesslog/entity"
	registry "github.com/sgacceso/service-acceso-go/internal/registry/entity"
)

// Repo persists the access log. Rows are append-only: the only UPDATE this
// repo ever issues flips estado from activo to cancelado.
type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

// logRow is the storage shape of an entry. Timestamps are kept as unix
// milliseconds so the same DDL and scans work on PostgreSQL and SQLite.
type logRow struct {
	ID           int64  `db:"id"`
	TargetID     int64  `db:"target_id"`
	TargetType   string `db:"target_type"`
	Accion       string `db:"accion"`
	Nombre       string `db:"nombre"`
	Mensaje      string `db:"mensaje"`
	PuntoAcceso  string `db:"punto_acceso"`
	Estado       string `db:"estado"`
	RegistradoMS int64  `db:"registrado_en_ms"`
}

func (r logRow) entry() *entity.Entry {
	return &entity.Entry{
		ID:           r.ID,
		TargetID:     r.TargetID,
		TargetType:   registry.Kind(r.TargetType),
		Accion:       entity.Accion(r.Accion),
		Nombre:       r.Nombre,
		Mensaje:      r.Mensaje,
		PuntoAcceso:  entity.PuntoAcceso(r.PuntoAcceso),
		Estado:       entity.Estado(r.Estado),
		RegistradoEn: time.UnixMilli(r.RegistradoMS).UTC(),
	}
}

// EnsureTable creates the access log table if missing (idempotent). IDs are
// generated application-side (snowflake), so the column is a plain BIGINT.
func (r *Repo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS registro_accesos (
  id BIGINT PRIMARY KEY,
  target_id BIGINT NOT NULL,
  target_type TEXT NOT NULL,
  accion TEXT NOT NULL,
  nombre TEXT NOT NULL DEFAULT '',
  mensaje TEXT NOT NULL DEFAULT '',
  punto_acceso TEXT NOT NULL,
  estado TEXT NOT NULL,
  registrado_en_ms BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_registro_accesos_target
  ON registro_accesos (target_id, target_type, estado);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Insert appends one entry.
func (r *Repo) Insert(ctx context.Context, e *entity.Entry) error {
	const q = `INSERT INTO registro_accesos
	  (id, target_id, target_type, accion, nombre, mensaje, punto_acceso, estado, registrado_en_ms)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.TargetID, string(e.TargetType), string(e.Accion), e.Nombre, e.Mensaje,
		string(e.PuntoAcceso), string(e.Estado), e.RegistradoEn.UnixMilli())
	return err
}

// LastActive returns the most recent active entry for the target, ordered
// by id (ids are time-ordered, so the highest id is the most recent).
// Cancelled entries are excluded entirely. Returns (nil, nil) when the
// target has no active entry.
func (r *Repo) LastActive(ctx context.Context, targetID int64, targetType registry.Kind) (*entity.Entry, error) {
	const q = `SELECT id, target_id, target_type, accion, nombre, mensaje,
		punto_acceso, estado, registrado_en_ms
	  FROM registro_accesos
	  WHERE target_id = $1 AND target_type = $2 AND estado = $3
	  ORDER BY id DESC LIMIT 1`
	var row logRow
	if err := r.db.GetContext(ctx, &row, q, targetID, string(targetType), string(entity.EstadoActivo)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.entry(), nil
}

// Cancel flips an active entry to cancelado and reports how many rows
// changed. Zero rows means the id does not exist or was already cancelled;
// the caller decides how to surface that.
func (r *Repo) Cancel(ctx context.Context, id int64) (int64, error) {
	const q = `UPDATE registro_accesos SET estado = $1 WHERE id = $2 AND estado = $3`
	res, err := r.db.ExecContext(ctx, q, string(entity.EstadoCancelado), id, string(entity.EstadoActivo))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListRecent returns the newest entries first, cancelled ones included
// (the guard UI shows them struck through).
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]*entity.Entry, error) {
	const q = `SELECT id, target_id, target_type, accion, nombre, mensaje,
		punto_acceso, estado, registrado_en_ms
	  FROM registro_accesos ORDER BY id DESC LIMIT $1`
	rows := []logRow{}
	if err := r.db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, err
	}
	out := make([]*entity.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entry())
	}
	return out, nil
}
