package repository

import (
	"context"

	"github.com/jhoicas/registro-empresas/internal/domain/entity"
)

//go:generate mockgen -source=registration_repository.go -destination=../../../mocks/registration_repository_mock.go -package=mocks RegistrationRepository

// RegistrationRepository define el puerto de persistencia de registros, con unicidad
// sobre NormalizedIdentifier. La implementación concreta se elige al arrancar.
type RegistrationRepository interface {
	// FindByNormalizedIdentifier devuelve nil, nil si no existe.
	FindByNormalizedIdentifier(ctx context.Context, key string) (*entity.RegisteredEntity, error)
	// InsertIfAbsent comprueba unicidad e inserta de forma atómica. Si la clave ya existe
	// devuelve el registro existente junto con domain.ErrAlreadyRegistered.
	// Los fallos de E/S envuelven domain.ErrStorageUnavailable.
	InsertIfAbsent(ctx context.Context, e *entity.RegisteredEntity) (*entity.RegisteredEntity, error)
	// Seed fusiona registros por clave normalizada (el último gana). Solo para aprovisionamiento.
	Seed(ctx context.Context, list []*entity.RegisteredEntity) (int, error)
	// List devuelve registros en orden de registro.
	List(ctx context.Context, limit, offset int) ([]*entity.RegisteredEntity, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
