package gate

import (
	"context"

	logentity "github.com/sgacceso/service-acceso-go/internal/accesslog/entity"
	registry "github.com/sgacceso/service-acceso-go/internal/registry/entity"
)

// nextAction decides whether this scan is an entrance or an exit by
// inspecting the target's most recent active log entry: the actions simply
// alternate, starting with entrada. Cancelled entries were forgotten by the
// lookup, so a cancelled entrada leaves the next action at entrada.
//
// Note the read and the eventual insert are not atomic: two concurrent
// scans of the same credential can observe the same last action and record
// it twice. That matches the behavior of the system this replaces; a
// stricter guarantee would need an atomic read-then-insert in the store.
func (s *Service) nextAction(ctx context.Context, targetID int64, targetType registry.Kind) (logentity.Accion, error) {
	last, err := s.logs.LastActive(ctx, targetID, targetType)
	if err != nil {
		return "", err
	}
	if last == nil {
		return logentity.AccionEntrada, nil
	}
	return last.Accion.Opposite(), nil
}
