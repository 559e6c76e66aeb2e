package repository

import (
	"context"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para ApplicationUser (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay coincidencia.
type UserRepository interface {
	Create(ctx context.Context, user *entity.ApplicationUser) error
	GetByID(ctx context.Context, id string) (*entity.ApplicationUser, error)
	FindByNormalizedUserName(ctx context.Context, normalized string) (*entity.ApplicationUser, error)
}
