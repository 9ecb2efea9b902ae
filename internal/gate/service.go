package gate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	logentity "github.com/sgacceso/service-acceso-go/internal/accesslog/entity"
	"github.com/sgacceso/service-acceso-go/internal/registry"
	registryentity "github.com/sgacceso/service-acceso-go/internal/registry/entity"
)

// Invalid-input sentinels, mapped to 400 by the handler.
var (
	ErrEmptyCode     = errors.New(MsgCodigoRequerido)
	ErrBadCheckpoint = errors.New(MsgPuntoInvalido)
)

// mensajeJornada is stamped on office clock-in/out entries, which bypass
// the clarification workflow.
const mensajeJornada = "Registro de jornada"

// Resolver finds the entity a scanned code belongs to.
type Resolver interface {
	Resolve(ctx context.Context, code string) (*registryentity.Resolved, error)
	ResolvePersonalByID(ctx context.Context, id int64) (*registryentity.Personal, error)
}

// LogBook is the slice of the audit log the engine needs: the toggle lookup
// and the append. Cancellation is not part of the scan flow.
type LogBook interface {
	LastActive(ctx context.Context, targetID int64, targetType registryentity.Kind) (*logentity.Entry, error)
	Append(ctx context.Context, e *logentity.Entry) (*logentity.Entry, error)
}

// Service is the access gate decision engine. Each scan is one
// request-scoped evaluation; the service holds no cross-request state.
type Service struct {
	resolver Resolver
	logs     LogBook
	clock    clockwork.Clock
	logger   *zap.SugaredLogger
}

func NewService(resolver Resolver, logs LogBook, clock clockwork.Clock, logger *zap.SugaredLogger) *Service {
	return &Service{resolver: resolver, logs: logs, clock: clock, logger: logger}
}

// ScanRequest is one credential scan at a checkpoint.
type ScanRequest struct {
	Codigo      string                `json:"codigo"`
	PuntoAcceso logentity.PuntoAcceso `json:"punto_acceso"`
}

// PersonaDetalle identifies the candidate of a pending personnel entrance
// so the terminal can ask for a reason.
type PersonaDetalle struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Unidad    string `json:"unidad"`
	Residente bool   `json:"residente"`
}

// ScanResult is the accepted outcome of a scan: either a written log entry
// or a clarification request, never both.
type ScanResult struct {
	Entry         *logentity.Entry `json:"entry,omitempty"`
	Clarification *PersonaDetalle  `json:"persona,omitempty"`
}

// ClarificationRequired reports whether the caller must follow up with a
// reason before the entrance is recorded.
func (r *ScanResult) ClarificationRequired() bool { return r.Clarification != nil }

// ClarifyRequest is the follow-up call finalizing a personnel entrance.
type ClarifyRequest struct {
	PersonID int64  `json:"person_id"`
	Motivo   Motivo `json:"motivo"`
	Detalles string `json:"detalles,omitempty"`
}

// Scan runs the full decision flow: resolve the credential, evaluate
// authorization, toggle entrada/salida from the target's own history, apply
// the office window policy, and either record the event or pause for
// clarification. Every rejection happens before anything is written.
func (s *Service) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	code := strings.TrimSpace(req.Codigo)
	if code == "" {
		return nil, ErrEmptyCode
	}
	if !req.PuntoAcceso.Valid() {
		return nil, ErrBadCheckpoint
	}

	ent, err := s.resolver.Resolve(ctx, code)
	if err != nil {
		if errors.Is(err, registry.ErrNoMatch) {
			return nil, reject(CategoryNotFound, MsgNoEncontrado)
		}
		return nil, fmt.Errorf("resolve %q: %w", code, err)
	}

	verdict := Evaluate(ent, s.clock.Now())
	if verdict.Blacklisted {
		s.logger.Warnw("blacklisted credential scanned",
			"target_type", ent.Kind, "target_id", ent.ID(), "punto_acceso", req.PuntoAcceso)
		return nil, reject(CategoryBlacklisted, verdict.Reasons...)
	}
	if !verdict.Authorized {
		return nil, reject(CategoryUnauthorized, verdict.Reasons...)
	}

	accion, err := s.nextAction(ctx, ent.ID(), ent.Kind)
	if err != nil {
		return nil, fmt.Errorf("resolve next action: %w", err)
	}

	esPersonal := ent.Kind == registryentity.KindPersonal
	mensaje := ""
	if esPersonal && req.PuntoAcceso == logentity.PuntoOficina {
		accion, err = enforceOfficeWindow(accion, s.clock.Now())
		if err != nil {
			return nil, err
		}
		mensaje = mensajeJornada
	} else if esPersonal && accion == logentity.AccionEntrada {
		// General-path personnel entrances pause for a reason. Nothing is
		// written; the terminal re-submits via Clarify.
		p := ent.Personal
		return &ScanResult{Clarification: &PersonaDetalle{
			ID:        p.ID,
			Nombre:    p.DisplayName(),
			Unidad:    p.Unidad,
			Residente: p.Residente,
		}}, nil
	}

	entry, err := s.logs.Append(ctx, &logentity.Entry{
		TargetID:    ent.ID(),
		TargetType:  ent.Kind,
		Accion:      accion,
		Nombre:      ent.DisplayName(),
		Mensaje:     mensaje,
		PuntoAcceso: req.PuntoAcceso,
	})
	if err != nil {
		return nil, err
	}
	return &ScanResult{Entry: entry}, nil
}

// Clarify finalizes a pending personnel entrance with a validated reason.
// There is no toggle re-evaluation here: the outcome is always a single
// entrada at the checkpoint the reason maps to. The protocol is stateless —
// the terminal carries the person id between the two calls, the server
// keeps no pending record.
func (s *Service) Clarify(ctx context.Context, req ClarifyRequest) (*ScanResult, error) {
	if !req.Motivo.Valid() {
		return nil, reject(CategoryInvalidClarification, MsgMotivoInvalido)
	}
	detalles := strings.TrimSpace(req.Detalles)
	if req.Motivo == MotivoOtros && detalles == "" {
		return nil, reject(CategoryInvalidClarification, MsgDetallesFaltan)
	}

	p, err := s.resolver.ResolvePersonalByID(ctx, req.PersonID)
	if err != nil {
		if errors.Is(err, registry.ErrNoMatch) {
			return nil, reject(CategoryNotFound, MsgPersonaRequerida)
		}
		return nil, fmt.Errorf("resolve person %d: %w", req.PersonID, err)
	}

	punto, mensaje := clarificationTarget(req.Motivo, detalles)
	entry, err := s.logs.Append(ctx, &logentity.Entry{
		TargetID:    p.ID,
		TargetType:  registryentity.KindPersonal,
		Accion:      logentity.AccionEntrada,
		Nombre:      p.DisplayName(),
		Mensaje:     mensaje,
		PuntoAcceso: punto,
	})
	if err != nil {
		return nil, err
	}
	return &ScanResult{Entry: entry}, nil
}
