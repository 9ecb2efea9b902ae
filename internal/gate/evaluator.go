package gate

import (
	"time"

	registry "github.com/sgacceso/service-acceso-go/internal/registry/entity"
)

// dateLayout is how the registries store access-window dates.
const dateLayout = "2006-01-02"

// Verdict is the outcome of evaluating an entity's access attributes.
// Reasons carries every failed check in evaluation order.
type Verdict struct {
	Authorized  bool
	Blacklisted bool
	Reasons     []string
}

// Evaluate computes the authorization verdict for a resolved entity on the
// given calendar day. It is pure: the evaluation date is passed in, never
// read from a system clock.
//
// A set blacklist flag short-circuits immediately with the fixed guard-post
// message. Otherwise every applicable check contributes its own reason:
// a start date strictly after today, and a missing/unparseable or strictly
// past expiration date. Permanent access skips the date window altogether.
// Variants carrying an explicit estado must additionally hold the
// authorized status; a bad estado is one more reason, it does not suppress
// the date checks. Both window ends are inclusive: today == start and
// today == expiration still authorize.
func Evaluate(ent *registry.Resolved, today time.Time) Verdict {
	switch ent.Kind {
	case registry.KindPersonal:
		// Own personnel carry no access-window attributes.
		return Verdict{Authorized: true}
	case registry.KindComision:
		// Resolvable assignments are Activo by definition.
		return Verdict{Authorized: true}
	case registry.KindVehiculo:
		v := ent.Vehiculo
		return evaluateWindow(windowAttrs{
			estado:     v.Estado,
			hasEstado:  true,
			permanente: v.AccesoPermanente,
			inicio:     v.FechaInicio,
			expiracion: v.FechaExpiracion,
		}, today)
	case registry.KindVisitante:
		v := ent.Visitante
		if v.ListaNegra {
			return Verdict{Blacklisted: true, Reasons: []string{MsgListaNegra}}
		}
		return evaluateWindow(windowAttrs{
			estado:     v.Estado,
			hasEstado:  true,
			permanente: v.AccesoPermanente,
			inicio:     v.FechaInicio,
			expiracion: v.FechaExpiracion,
		}, today)
	case registry.KindEmpleado:
		e := ent.Empleado
		return evaluateWindow(windowAttrs{
			permanente: e.AccesoPermanente,
			inicio:     e.FechaInicio,
			expiracion: e.FechaExpiracion,
		}, today)
	}
	return Verdict{Reasons: []string{MsgEstadoNoAutorizado}}
}

type windowAttrs struct {
	estado     string
	hasEstado  bool
	permanente bool
	inicio     string
	expiracion string
}

func evaluateWindow(a windowAttrs, today time.Time) Verdict {
	day := truncateToDay(today)
	var reasons []string

	// Permanent access bypasses the date window entirely; the estado check
	// below still applies.
	if !a.permanente {
		if start, ok := parseDate(a.inicio); ok && start.After(day) {
			reasons = append(reasons, MsgAccesoNoIniciado)
		}

		exp, ok := parseDate(a.expiracion)
		switch {
		case !ok:
			reasons = append(reasons, MsgSinFechaExpiracion)
		case exp.Before(day):
			reasons = append(reasons, MsgAccesoExpirado)
		}
	}

	if a.hasEstado && a.estado != registry.EstadoAutorizado {
		reasons = append(reasons, MsgEstadoNoAutorizado)
	}

	return Verdict{Authorized: len(reasons) == 0, Reasons: reasons}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// truncateToDay maps an instant to its local calendar day at UTC midnight,
// the same normalization parseDate produces, so comparisons are strictly
// day-granular.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
