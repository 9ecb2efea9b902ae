package gate

import "strings"

// Category classifies a rejection so the web layer can map it to a status
// code without parsing messages.
type Category string

const (
	CategoryNotFound             Category = "not_found"
	CategoryBlacklisted          Category = "blacklisted"
	CategoryUnauthorized         Category = "unauthorized"
	CategoryOutsideWindow        Category = "outside_window"
	CategoryInvalidClarification Category = "invalid_clarification"
)

// RejectionError is an expected, modeled outcome of the scan flow: the scan
// is refused before anything is written. Every rejection carries the full
// list of human-readable reasons; multiple simultaneous reasons are
// concatenated, never dropped.
type RejectionError struct {
	Category Category
	Reasons  []string
}

func (e *RejectionError) Error() string {
	return strings.Join(e.Reasons, ", ")
}

func reject(cat Category, reasons ...string) *RejectionError {
	return &RejectionError{Category: cat, Reasons: reasons}
}

// Fixed user-facing rejection messages.
const (
	MsgNoEncontrado       = "el código escaneado no corresponde a ningún registro"
	MsgListaNegra         = "INGRESO PROHIBIDO: notificar al personal de guardia"
	MsgAccesoNoIniciado   = "su periodo de acceso aún no ha iniciado"
	MsgSinFechaExpiracion = "no registra una fecha de expiración válida"
	MsgAccesoExpirado     = "su periodo de acceso ha expirado"
	MsgEstadoNoAutorizado = "su estado no se encuentra autorizado"

	MsgJornadaEntradaYaRegistrada = "ya registra una entrada activa; en la tarde solo puede marcar salida"
	MsgJornadaSinEntrada          = "no registra una entrada activa; en la mañana solo puede marcar entrada"
	MsgJornadaFueraDeHorario      = "registro de jornada fuera de horario (07:00-07:59 y 16:00-16:59); diríjase a la garita principal"

	MsgMotivoInvalido   = "motivo de ingreso inválido"
	MsgDetallesFaltan   = "el motivo 'otros' requiere una descripción"
	MsgPuntoInvalido    = "punto de acceso desconocido"
	MsgCodigoRequerido  = "debe escanear un código"
	MsgPersonaRequerida = "la persona indicada no existe"
)
