package accesslog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sgacceso/service-acceso-go/internal/accesslog/entity"
	registry "github.com/sgacceso/service-acceso-go/internal/registry/entity"
)

type fakeStore struct {
	inserted   []*entity.Entry
	cancelRows int64
	lastLimit  int
}

func (f *fakeStore) Insert(_ context.Context, e *entity.Entry) error {
	f.inserted = append(f.inserted, e)
	return nil
}

func (f *fakeStore) LastActive(context.Context, int64, registry.Kind) (*entity.Entry, error) {
	return nil, nil
}

func (f *fakeStore) Cancel(context.Context, int64) (int64, error) {
	return f.cancelRows, nil
}

func (f *fakeStore) ListRecent(_ context.Context, limit int) ([]*entity.Entry, error) {
	f.lastLimit = limit
	return nil, nil
}

func newTestService(store Store, at time.Time) *Service {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return NewService(store, node, clockwork.NewFakeClockAt(at), zap.NewNop().Sugar())
}

func TestAppend_StampsEntry(t *testing.T) {
	at := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	store := &fakeStore{}
	svc := newTestService(store, at)

	e, err := svc.Append(context.Background(), &entity.Entry{
		TargetID:    12,
		TargetType:  registry.KindPersonal,
		Accion:      entity.AccionEntrada,
		PuntoAcceso: entity.PuntoGaritaPrincipal,
	})
	require.NoError(t, err)

	assert.NotZero(t, e.ID)
	assert.Equal(t, entity.EstadoActivo, e.Estado)
	assert.True(t, e.RegistradoEn.Equal(at))
	require.Len(t, store.inserted, 1)
}

func TestAppend_IDsAreMonotonic(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, time.Now())

	var prev int64
	for i := 0; i < 10; i++ {
		e, err := svc.Append(context.Background(), &entity.Entry{TargetID: 1, TargetType: registry.KindVehiculo})
		require.NoError(t, err)
		assert.Greater(t, e.ID, prev)
		prev = e.ID
	}
}

func TestCancel_NotFound(t *testing.T) {
	store := &fakeStore{cancelRows: 0}
	svc := newTestService(store, time.Now())

	err := svc.Cancel(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel_OK(t *testing.T) {
	store := &fakeStore{cancelRows: 1}
	svc := newTestService(store, time.Now())

	assert.NoError(t, svc.Cancel(context.Background(), 42))
}

func TestListRecent_ClampsLimit(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, time.Now())

	_, err := svc.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, defaultListLimit, store.lastLimit)

	_, err = svc.ListRecent(context.Background(), 10000)
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, store.lastLimit)

	_, err = svc.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, store.lastLimit)
}

func TestAppend_SurfacesStoreFailure(t *testing.T) {
	svc := newTestService(&failingStore{}, time.Now())

	_, err := svc.Append(context.Background(), &entity.Entry{TargetID: 1})
	assert.Error(t, err)
}

type failingStore struct{ fakeStore }

func (f *failingStore) Insert(context.Context, *entity.Entry) error {
	return errors.New("store rejected insert")
}
