package entity

import (
	"time"

	registry "github.com/sgacceso/service-acceso-go/internal/registry/entity"
)

// Accion is the direction of an access event.
type Accion string

const (
	AccionEntrada Accion = "entrada"
	AccionSalida  Accion = "salida"
)

// Opposite returns the alternating follow-up action.
func (a Accion) Opposite() Accion {
	if a == AccionEntrada {
		return AccionSalida
	}
	return AccionEntrada
}

// Estado is the lifecycle state of a log entry. Entries are immutable apart
// from the single forward transition activo → cancelado; they are never
// physically deleted.
type Estado string

const (
	EstadoActivo    Estado = "activo"
	EstadoCancelado Estado = "cancelado"
)

// PuntoAcceso identifies the physical checkpoint a scan occurred at.
type PuntoAcceso string

const (
	PuntoGaritaPrincipal PuntoAcceso = "garita_principal"
	PuntoOficina         PuntoAcceso = "oficina"
	PuntoResidencia      PuntoAcceso = "residencia"
	PuntoReuniones       PuntoAcceso = "reuniones"
)

// Valid reports whether p is one of the known checkpoints. Checkpoint names
// arrive from terminals and are validated at the boundary rather than
// passed through as free text.
func (p PuntoAcceso) Valid() bool {
	switch p {
	case PuntoGaritaPrincipal, PuntoOficina, PuntoResidencia, PuntoReuniones:
		return true
	}
	return false
}

// Entry is one access event in the audit log.
type Entry struct {
	ID           int64         `db:"id" json:"id"`
	TargetID     int64         `db:"target_id" json:"target_id"`
	TargetType   registry.Kind `db:"target_type" json:"target_type"`
	Accion       Accion        `db:"accion" json:"accion"`
	Nombre       string        `db:"nombre" json:"nombre"`
	Mensaje      string        `db:"mensaje" json:"mensaje"`
	PuntoAcceso  PuntoAcceso   `db:"punto_acceso" json:"punto_acceso"`
	Estado       Estado        `db:"estado" json:"estado"`
	RegistradoEn time.Time     `db:"registrado_en" json:"registrado_en"`
}
