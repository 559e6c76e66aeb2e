package repository

import (
	"context"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
	Count(ctx context.Context) (int, error)
}
