package gate

import (
	logentity "github.com/sgacceso/service-acceso-go/internal/accesslog/entity"
)

// Motivo is the closed set of reasons a member of personnel may give for
// an entrance. Anything outside the set is rejected at the boundary.
type Motivo string

const (
	MotivoResidencia Motivo = "residencia"
	MotivoTrabajo    Motivo = "trabajo"
	MotivoReunion    Motivo = "reunion"
	MotivoOtros      Motivo = "otros"
)

func (m Motivo) Valid() bool {
	switch m {
	case MotivoResidencia, MotivoTrabajo, MotivoReunion, MotivoOtros:
		return true
	}
	return false
}

// clarificationTarget maps a validated reason to the checkpoint and message
// stamped on the finalized entrada. The mapping is deterministic; only
// MotivoOtros carries the caller's free text through.
func clarificationTarget(m Motivo, detalles string) (logentity.PuntoAcceso, string) {
	switch m {
	case MotivoResidencia:
		return logentity.PuntoResidencia, "Residencia"
	case MotivoTrabajo:
		return logentity.PuntoOficina, "Trabajo"
	case MotivoReunion:
		return logentity.PuntoReuniones, "Reunión"
	default:
		return logentity.PuntoGaritaPrincipal, detalles
	}
}
