package accesslog

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/sgacceso/service-acceso-go/internal/accesslog/entity"
	registry "github.com/sgacceso/service-acceso-go/internal/registry/entity"
)

// ErrNotFound reports a cancel against an id that does not exist or is
// already cancelled. Cancellation is not idempotent-silent: the caller is
// told, but no state is corrupted.
var ErrNotFound = errors.New("log entry not found or already cancelled")

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Store is the persistence boundary for log entries.
type Store interface {
	Insert(ctx context.Context, e *entity.Entry) error
	LastActive(ctx context.Context, targetID int64, targetType registry.Kind) (*entity.Entry, error)
	Cancel(ctx context.Context, id int64) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Entry, error)
}

// Service is the audit log writer: the only component allowed to create
// or transition log entries.
type Service struct {
	store  Store
	ids    *snowflake.Node
	clock  clockwork.Clock
	logger *zap.SugaredLogger
}

func NewService(store Store, ids *snowflake.Node, clock clockwork.Clock, logger *zap.SugaredLogger) *Service {
	return &Service{store: store, ids: ids, clock: clock, logger: logger}
}

// Append stamps the entry with a fresh id, estado activo and the current
// instant, then persists it. A store rejection is fatal for the request and
// surfaced as-is.
func (s *Service) Append(ctx context.Context, e *entity.Entry) (*entity.Entry, error) {
	e.ID = s.ids.Generate().Int64()
	e.Estado = entity.EstadoActivo
	e.RegistradoEn = s.clock.Now()
	if err := s.store.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("append log entry: %w", err)
	}
	s.logger.Infow("access event recorded",
		"id", e.ID,
		"target_type", e.TargetType,
		"target_id", e.TargetID,
		"accion", e.Accion,
		"punto_acceso", e.PuntoAcceso,
	)
	return e, nil
}

// LastActive exposes the toggle lookup to the gate engine.
func (s *Service) LastActive(ctx context.Context, targetID int64, targetType registry.Kind) (*entity.Entry, error) {
	return s.store.LastActive(ctx, targetID, targetType)
}

// Cancel soft-cancels an active entry. Cancelling a missing or already
// cancelled entry returns ErrNotFound.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	rows, err := s.store.Cancel(ctx, id)
	if err != nil {
		return fmt.Errorf("cancel log entry %d: %w", id, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.logger.Infow("access event cancelled", "id", id)
	return nil
}

// ListRecent returns the newest entries, clamped to a bounded page size.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*entity.Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.store.ListRecent(ctx, limit)
}
