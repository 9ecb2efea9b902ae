package gate

import (
	"context"
	"strings"
	"sync"

	logentity "github.com/sgacceso/service-acceso-go/internal/accesslog/entity"
	"github.com/sgacceso/service-acceso-go/internal/registry"
	registryentity "github.com/sgacceso/service-acceso-go/internal/registry/entity"
)

// fakeResolver serves pre-registered entities keyed by scanned code.
type fakeResolver struct {
	byCode map[string]*registryentity.Resolved
	people map[int64]*registryentity.Personal
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		byCode: map[string]*registryentity.Resolved{},
		people: map[int64]*registryentity.Personal{},
	}
}

func (f *fakeResolver) addPersonal(code string, p *registryentity.Personal) {
	f.byCode[code] = &registryentity.Resolved{Kind: registryentity.KindPersonal, Personal: p}
	f.people[p.ID] = p
}

func (f *fakeResolver) Resolve(_ context.Context, code string) (*registryentity.Resolved, error) {
	if r, ok := f.byCode[strings.TrimSpace(code)]; ok {
		return r, nil
	}
	return nil, registry.ErrNoMatch
}

func (f *fakeResolver) ResolvePersonalByID(_ context.Context, id int64) (*registryentity.Personal, error) {
	if p, ok := f.people[id]; ok {
		return p, nil
	}
	return nil, registry.ErrNoMatch
}

// fakeLogBook is an in-memory append-only log mirroring the real store's
// toggle semantics, including the non-atomic read-then-insert.
type fakeLogBook struct {
	mu      sync.Mutex
	nextID  int64
	entries []*logentity.Entry
	failErr error
}

func (f *fakeLogBook) LastActive(_ context.Context, targetID int64, targetType registryentity.Kind) (*logentity.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if e.TargetID == targetID && e.TargetType == targetType && e.Estado == logentity.EstadoActivo {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLogBook) Append(_ context.Context, e *logentity.Entry) (*logentity.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	f.nextID++
	e.ID = f.nextID
	e.Estado = logentity.EstadoActivo
	f.entries = append(f.entries, e)
	cp := *e
	return &cp, nil
}

func (f *fakeLogBook) cancel(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id && e.Estado == logentity.EstadoActivo {
			e.Estado = logentity.EstadoCancelado
		}
	}
}

func (f *fakeLogBook) all() []*logentity.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*logentity.Entry, len(f.entries))
	copy(out, f.entries)
	return out
}
