package entity

import "strings"

// Kind discriminates the five registries a scanned code can resolve to.
// It doubles as the target_type stored on access log entries.
type Kind string

const (
	KindPersonal  Kind = "personal"
	KindVehiculo  Kind = "vehiculo"
	KindVisitante Kind = "visitante"
	KindEmpleado  Kind = "empleado"
	KindComision  Kind = "comision"
)

// EstadoAutorizado is the only status value that authorizes entities
// carrying an explicit estado column (vehicles and visitors).
const EstadoAutorizado = "Autorizado"

// EstadoComisionActiva is the lifecycle status a temporary assignment must
// have to be resolvable at all; any other status makes it invisible to the
// gate, not merely unauthorized.
const EstadoComisionActiva = "Activo"

// Personal is a member of the facility's own personnel.
type Personal struct {
	ID        int64  `db:"id" json:"id"`
	CI        string `db:"ci" json:"ci"`
	Grado     string `db:"grado" json:"grado"`
	Nombres   string `db:"nombres" json:"nombres"`
	Apellidos string `db:"apellidos" json:"apellidos"`
	Residente bool   `db:"residente" json:"residente"`
	Unidad    string `db:"unidad" json:"unidad"`
}

func (p *Personal) DisplayName() string {
	return strings.TrimSpace(strings.Join([]string{p.Grado, p.Nombres, p.Apellidos}, " "))
}

// Vehiculo is a registered vehicle. The owner reference is polymorphic:
// propietario_tipo names the registry propietario_id points into.
type Vehiculo struct {
	ID               int64  `db:"id" json:"id"`
	Placa            string `db:"placa" json:"placa"`
	Marca            string `db:"marca" json:"marca"`
	Modelo           string `db:"modelo" json:"modelo"`
	PropietarioTipo  string `db:"propietario_tipo" json:"propietario_tipo"`
	PropietarioID    int64  `db:"propietario_id" json:"propietario_id"`
	Estado           string `db:"estado" json:"estado"`
	AccesoPermanente bool   `db:"acceso_permanente" json:"acceso_permanente"`
	FechaInicio      string `db:"fecha_inicio" json:"fecha_inicio"`
	FechaExpiracion  string `db:"fecha_expiracion" json:"fecha_expiracion"`
}

func (v *Vehiculo) DisplayName() string {
	return strings.TrimSpace(v.Placa + " " + strings.TrimSpace(v.Marca+" "+v.Modelo))
}

// Visitante is an external visitor. ListaNegra is a hard denial flag that
// overrides every other attribute.
type Visitante struct {
	ID               int64  `db:"id" json:"id"`
	CI               string `db:"ci" json:"ci"`
	Nombre           string `db:"nombre" json:"nombre"`
	ListaNegra       bool   `db:"lista_negra" json:"lista_negra"`
	Estado           string `db:"estado" json:"estado"`
	AccesoPermanente bool   `db:"acceso_permanente" json:"acceso_permanente"`
	FechaInicio      string `db:"fecha_inicio" json:"fecha_inicio"`
	FechaExpiracion  string `db:"fecha_expiracion" json:"fecha_expiracion"`
}

// Empleado is a contractor-company employee.
type Empleado struct {
	ID               int64  `db:"id" json:"id"`
	CI               string `db:"ci" json:"ci"`
	Nombre           string `db:"nombre" json:"nombre"`
	EmpresaID        int64  `db:"empresa_id" json:"empresa_id"`
	AccesoPermanente bool   `db:"acceso_permanente" json:"acceso_permanente"`
	FechaInicio      string `db:"fecha_inicio" json:"fecha_inicio"`
	FechaExpiracion  string `db:"fecha_expiracion" json:"fecha_expiracion"`
}

// Comision is personnel temporarily assigned from another unit.
type Comision struct {
	ID     int64  `db:"id" json:"id"`
	CI     string `db:"ci" json:"ci"`
	Nombre string `db:"nombre" json:"nombre"`
	Estado string `db:"estado" json:"estado"`
}

// Resolved is the tagged union returned by the resolver: exactly one of the
// variant pointers matching Kind is non-nil. Callers switch on Kind so every
// variant is handled explicitly.
type Resolved struct {
	Kind      Kind
	Personal  *Personal
	Vehiculo  *Vehiculo
	Visitante *Visitante
	Empleado  *Empleado
	Comision  *Comision
}

// ID returns the numeric identifier of the underlying variant.
func (r *Resolved) ID() int64 {
	switch r.Kind {
	case KindPersonal:
		return r.Personal.ID
	case KindVehiculo:
		return r.Vehiculo.ID
	case KindVisitante:
		return r.Visitante.ID
	case KindEmpleado:
		return r.Empleado.ID
	case KindComision:
		return r.Comision.ID
	}
	return 0
}

// DisplayName returns the human-readable name shown on the gate terminal
// and stamped onto log entries.
func (r *Resolved) DisplayName() string {
	switch r.Kind {
	case KindPersonal:
		return r.Personal.DisplayName()
	case KindVehiculo:
		return r.Vehiculo.DisplayName()
	case KindVisitante:
		return r.Visitante.Nombre
	case KindEmpleado:
		return r.Empleado.Nombre
	case KindComision:
		return r.Comision.Nombre
	}
	return ""
}
