package registry

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/sgacceso/service-acceso-go/internal/registry/entity"
)

// ErrNoMatch reports that a scanned code matched none of the registries.
var ErrNoMatch = errors.New("scanned code matches no registry")

// Lookups is the read-only registry access the resolver needs. Every method
// returns (nil, nil) when no row matches, so the resolver can fall through
// to the next registry without inspecting driver errors.
type Lookups interface {
	PersonalByCI(ctx context.Context, ci string) (*entity.Personal, error)
	PersonalByID(ctx context.Context, id int64) (*entity.Personal, error)
	VehiculoByPlacaOrID(ctx context.Context, code string) (*entity.Vehiculo, error)
	VisitanteByCI(ctx context.Context, ci string) (*entity.Visitante, error)
	EmpleadoByCI(ctx context.Context, ci string) (*entity.Empleado, error)
	ComisionActivaByCI(ctx context.Context, ci string) (*entity.Comision, error)
}

// Service resolves a scanned credential to exactly one registry entity.
type Service struct {
	lookups Lookups
	logger  *zap.SugaredLogger
}

func NewService(lookups Lookups, logger *zap.SugaredLogger) *Service {
	return &Service{lookups: lookups, logger: logger}
}

// Resolve searches the registries in fixed priority order — personnel,
// vehicles, visitors, contractor employees, temporary assignments — and
// returns the first match. Once a registry yields a match no further
// registry is consulted. Returns ErrNoMatch when the code is unknown.
func (s *Service) Resolve(ctx context.Context, code string) (*entity.Resolved, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrNoMatch
	}

	if p, err := s.lookups.PersonalByCI(ctx, code); err != nil {
		return nil, err
	} else if p != nil {
		return &entity.Resolved{Kind: entity.KindPersonal, Personal: p}, nil
	}

	if v, err := s.lookups.VehiculoByPlacaOrID(ctx, code); err != nil {
		return nil, err
	} else if v != nil {
		return &entity.Resolved{Kind: entity.KindVehiculo, Vehiculo: v}, nil
	}

	if v, err := s.lookups.VisitanteByCI(ctx, code); err != nil {
		return nil, err
	} else if v != nil {
		return &entity.Resolved{Kind: entity.KindVisitante, Visitante: v}, nil
	}

	if e, err := s.lookups.EmpleadoByCI(ctx, code); err != nil {
		return nil, err
	} else if e != nil {
		return &entity.Resolved{Kind: entity.KindEmpleado, Empleado: e}, nil
	}

	if c, err := s.lookups.ComisionActivaByCI(ctx, code); err != nil {
		return nil, err
	} else if c != nil {
		return &entity.Resolved{Kind: entity.KindComision, Comision: c}, nil
	}

	s.logger.Debugw("scan resolved to no registry", "code", code)
	return nil, ErrNoMatch
}

// ResolvePersonalByID resolves a personnel record by numeric id for the
// clarification finalizer. Returns ErrNoMatch when absent.
func (s *Service) ResolvePersonalByID(ctx context.Context, id int64) (*entity.Personal, error) {
	p, err := s.lookups.PersonalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoMatch
	}
	return p, nil
}
