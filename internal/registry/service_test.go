package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sgacceso/service-acceso-go/internal/registry/entity"
)

// fakeLookups returns canned rows per registry so priority can be exercised
// without a database.
type fakeLookups struct {
	personal  map[string]*entity.Personal
	personaID map[int64]*entity.Personal
	vehiculos map[string]*entity.Vehiculo
	visitas   map[string]*entity.Visitante
	empleados map[string]*entity.Empleado
	comision  map[string]*entity.Comision
}

func (f *fakeLookups) PersonalByCI(_ context.Context, ci string) (*entity.Personal, error) {
	return f.personal[ci], nil
}
func (f *fakeLookups) PersonalByID(_ context.Context, id int64) (*entity.Personal, error) {
	return f.personaID[id], nil
}
func (f *fakeLookups) VehiculoByPlacaOrID(_ context.Context, code string) (*entity.Vehiculo, error) {
	return f.vehiculos[code], nil
}
func (f *fakeLookups) VisitanteByCI(_ context.Context, ci string) (*entity.Visitante, error) {
	return f.visitas[ci], nil
}
func (f *fakeLookups) EmpleadoByCI(_ context.Context, ci string) (*entity.Empleado, error) {
	return f.empleados[ci], nil
}
func (f *fakeLookups) ComisionActivaByCI(_ context.Context, ci string) (*entity.Comision, error) {
	return f.comision[ci], nil
}

func newFakeLookups() *fakeLookups {
	return &fakeLookups{
		personal:  map[string]*entity.Personal{},
		personaID: map[int64]*entity.Personal{},
		vehiculos: map[string]*entity.Vehiculo{},
		visitas:   map[string]*entity.Visitante{},
		empleados: map[string]*entity.Empleado{},
		comision:  map[string]*entity.Comision{},
	}
}

func newTestService(lookups Lookups) *Service {
	return NewService(lookups, zap.NewNop().Sugar())
}

func TestResolve_PriorityOrder(t *testing.T) {
	// The same code exists in every registry; personnel must win, and no
	// later registry may shadow an earlier one.
	lookups := newFakeLookups()
	lookups.personal["1234"] = &entity.Personal{ID: 1}
	lookups.vehiculos["1234"] = &entity.Vehiculo{ID: 2}
	lookups.visitas["1234"] = &entity.Visitante{ID: 3}
	lookups.empleados["1234"] = &entity.Empleado{ID: 4}
	lookups.comision["1234"] = &entity.Comision{ID: 5}
	svc := newTestService(lookups)

	res, err := svc.Resolve(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, entity.KindPersonal, res.Kind)
	assert.Equal(t, int64(1), res.ID())

	delete(lookups.personal, "1234")
	res, err = svc.Resolve(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, entity.KindVehiculo, res.Kind)

	delete(lookups.vehiculos, "1234")
	res, err = svc.Resolve(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, entity.KindVisitante, res.Kind)

	delete(lookups.visitas, "1234")
	res, err = svc.Resolve(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, entity.KindEmpleado, res.Kind)

	delete(lookups.empleados, "1234")
	res, err = svc.Resolve(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, entity.KindComision, res.Kind)
}

func TestResolve_NoMatch(t *testing.T) {
	svc := newTestService(newFakeLookups())

	_, err := svc.Resolve(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolve_TrimsCode(t *testing.T) {
	lookups := newFakeLookups()
	lookups.personal["1234"] = &entity.Personal{ID: 1}
	svc := newTestService(lookups)

	res, err := svc.Resolve(context.Background(), "  1234  ")
	require.NoError(t, err)
	assert.Equal(t, entity.KindPersonal, res.Kind)

	_, err = svc.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolvePersonalByID(t *testing.T) {
	lookups := newFakeLookups()
	lookups.personaID[7] = &entity.Personal{ID: 7, Grado: "Tte.", Nombres: "Eva", Apellidos: "Mena"}
	svc := newTestService(lookups)

	p, err := svc.ResolvePersonalByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Tte. Eva Mena", p.DisplayName())

	_, err = svc.ResolvePersonalByID(context.Background(), 8)
	assert.ErrorIs(t, err, ErrNoMatch)
}
