package terminal

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sgacceso/service-acceso-go/internal/terminal/entity"
)

var ErrBadSecret = errors.New("unknown terminal or bad secret")

// Store is the persistence the service needs.
type Store interface {
	GetByID(ctx context.Context, id string) (*entity.Terminal, error)
	Upsert(ctx context.Context, t *entity.Terminal) error
}

// Service manages gate terminal registrations and secret verification.
type Service struct {
	store Store
	cost  int
}

func NewService(store Store) *Service {
	return &Service{store: store, cost: bcrypt.DefaultCost}
}

// Register stores (or replaces) a terminal with a bcrypt-hashed secret.
func (s *Service) Register(ctx context.Context, id, nombre, puntoAcceso, secret string) error {
	if id == "" || secret == "" {
		return errors.New("terminal id and secret are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return fmt.Errorf("hash terminal secret: %w", err)
	}
	return s.store.Upsert(ctx, &entity.Terminal{
		ID:          id,
		Nombre:      nombre,
		SecretHash:  string(hash),
		PuntoAcceso: puntoAcceso,
		Activo:      true,
	})
}

// Verify checks a terminal's shared secret. Unknown ids, deactivated
// terminals and wrong secrets all collapse into ErrBadSecret so callers
// cannot enumerate terminals.
func (s *Service) Verify(ctx context.Context, id, secret string) (*entity.Terminal, error) {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || !t.Activo {
		return nil, ErrBadSecret
	}
	if bcrypt.CompareHashAndPassword([]byte(t.SecretHash), []byte(secret)) != nil {
		return nil, ErrBadSecret
	}
	return t, nil
}
