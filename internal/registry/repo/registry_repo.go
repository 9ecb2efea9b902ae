package repo

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/sgacceso/service-acceso-go/internal/registry/entity"
)

// Repo provides read-only keyed lookups over the five registry tables. The
// tables themselves are owned by the administrative CRUD layer; this repo
// never writes to them.
type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

// EnsureTables creates the registry tables if missing (idempotent). This is
// a convenience for dev and test bootstrap; production schemas are managed
// by the administrative service. Column types stay portable so the same DDL
// runs on PostgreSQL and SQLite.
func (r *Repo) EnsureTables(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS personal (
  id BIGINT PRIMARY KEY,
  ci TEXT UNIQUE NOT NULL,
  grado TEXT NOT NULL DEFAULT '',
  nombres TEXT NOT NULL DEFAULT '',
  apellidos TEXT NOT NULL DEFAULT '',
  residente BOOLEAN NOT NULL DEFAULT FALSE,
  unidad TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS vehiculos (
  id BIGINT PRIMARY KEY,
  placa TEXT UNIQUE NOT NULL,
  marca TEXT NOT NULL DEFAULT '',
  modelo TEXT NOT NULL DEFAULT '',
  propietario_tipo TEXT NOT NULL DEFAULT '',
  propietario_id BIGINT NOT NULL DEFAULT 0,
  estado TEXT NOT NULL DEFAULT '',
  acceso_permanente BOOLEAN NOT NULL DEFAULT FALSE,
  fecha_inicio TEXT NOT NULL DEFAULT '',
  fecha_expiracion TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS visitantes (
  id BIGINT PRIMARY KEY,
  ci TEXT NOT NULL,
  nombre TEXT NOT NULL DEFAULT '',
  lista_negra BOOLEAN NOT NULL DEFAULT FALSE,
  estado TEXT NOT NULL DEFAULT '',
  acceso_permanente BOOLEAN NOT NULL DEFAULT FALSE,
  fecha_inicio TEXT NOT NULL DEFAULT '',
  fecha_expiracion TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS empleados (
  id BIGINT PRIMARY KEY,
  ci TEXT NOT NULL,
  nombre TEXT NOT NULL DEFAULT '',
  empresa_id BIGINT NOT NULL DEFAULT 0,
  acceso_permanente BOOLEAN NOT NULL DEFAULT FALSE,
  fecha_inicio TEXT NOT NULL DEFAULT '',
  fecha_expiracion TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS comisiones (
  id BIGINT PRIMARY KEY,
  ci TEXT NOT NULL,
  nombre TEXT NOT NULL DEFAULT '',
  estado TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_visitantes_ci ON visitantes (ci);
CREATE INDEX IF NOT EXISTS idx_empleados_ci ON empleados (ci);
CREATE INDEX IF NOT EXISTS idx_comisiones_ci ON comisiones (ci);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// PersonalByCI fetches a personnel row by national ID. Returns (nil, nil)
// when no row matches.
func (r *Repo) PersonalByCI(ctx context.Context, ci string) (*entity.Personal, error) {
	const q = `SELECT id, ci, grado, nombres, apellidos, residente, unidad
	  FROM personal WHERE ci = $1`
	var row entity.Personal
	if err := r.db.GetContext(ctx, &row, q, ci); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// PersonalByID fetches a personnel row by its numeric identifier, used by
// the clarification finalizer. Returns (nil, nil) when no row matches.
func (r *Repo) PersonalByID(ctx context.Context, id int64) (*entity.Personal, error) {
	const q = `SELECT id, ci, grado, nombres, apellidos, residente, unidad
	  FROM personal WHERE id = $1`
	var row entity.Personal
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// VehiculoByPlacaOrID matches a vehicle by exact plate, or by internal id
// when the scanned code is numeric. The id path supports programmatic
// lookups; human scans carry the plate.
func (r *Repo) VehiculoByPlacaOrID(ctx context.Context, code string) (*entity.Vehiculo, error) {
	id, _ := strconv.ParseInt(code, 10, 64)
	const q = `SELECT id, placa, marca, modelo, propietario_tipo, propietario_id,
		estado, acceso_permanente, fecha_inicio, fecha_expiracion
	  FROM vehiculos WHERE placa = $1 OR ($2 > 0 AND id = $2)`
	var row entity.Vehiculo
	if err := r.db.GetContext(ctx, &row, q, code, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// VisitanteByCI fetches a visitor row by national ID.
func (r *Repo) VisitanteByCI(ctx context.Context, ci string) (*entity.Visitante, error) {
	const q = `SELECT id, ci, nombre, lista_negra, estado, acceso_permanente,
		fecha_inicio, fecha_expiracion
	  FROM visitantes WHERE ci = $1`
	var row entity.Visitante
	if err := r.db.GetContext(ctx, &row, q, ci); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// EmpleadoByCI fetches a contractor-employee row by national ID.
func (r *Repo) EmpleadoByCI(ctx context.Context, ci string) (*entity.Empleado, error) {
	const q = `SELECT id, ci, nombre, empresa_id, acceso_permanente,
		fecha_inicio, fecha_expiracion
	  FROM empleados WHERE ci = $1`
	var row entity.Empleado
	if err := r.db.GetContext(ctx, &row, q, ci); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ComisionActivaByCI fetches a temporary assignment by national ID. Only
// rows whose lifecycle status is Activo are visible; finished assignments
// do not resolve at all.
func (r *Repo) ComisionActivaByCI(ctx context.Context, ci string) (*entity.Comision, error) {
	const q = `SELECT id, ci, nombre, estado
	  FROM comisiones WHERE ci = $1 AND estado = $2`
	var row entity.Comision
	if err := r.db.GetContext(ctx, &row, q, ci, entity.EstadoComisionActiva); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
